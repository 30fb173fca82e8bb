package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/config"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/handler"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/logger"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/repository"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/seed"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/service"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "activities",
		Short:         "Mergington High School extracurricular activities API",
		Long:          `Serves the activity list and lets students sign up for and unregister from activities.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./config.yaml or ./configs/config.yaml)")
	cmd.Flags().IntP("port", "p", 8000, "HTTP listen port")
	cmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().String("seed", "", "YAML seed file replacing the built-in activities")
	bindFlags(v, cmd)

	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	_ = v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("logging.level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("seed.path", cmd.Flags().Lookup("seed"))
}

// app is the wired service, ready to serve.
type app struct {
	log     *zap.Logger
	server  *http.Server
	tracing *telemetry.Provider
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Environment))

	// ── 1. Seed the registry ──────────────────────────────────────────────
	entries, err := seed.Load(cfg.Seed.Path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	log.Info("registry seeded", zap.Int("activities", len(entries)), zap.String("seed_path", cfg.Seed.Path))

	tracing, err := telemetry.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	activityRepo := repository.NewActivityRepository(entries)
	activitySvc := service.NewActivityService(activityRepo, log, tracing.Tracer())
	activitySvc.SyncParticipantGauges(ctx)
	activityHandler := handler.NewActivityHandler(activitySvc, log)

	// ── 3. Build the router ───────────────────────────────────────────────
	router := handler.NewRouter(activityHandler, log, handler.RouterOptions{
		StaticDir:     cfg.Static.Dir,
		EnableMetrics: cfg.Metrics.Enabled,
	})

	return &app{
		log: log,
		server: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		tracing: tracing,
	}, nil
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	// ── 4. Start server with graceful shutdown ────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := a.tracing.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("tracer shutdown failed", zap.Error(err))
	}
	a.log.Info("server stopped")
	return nil
}
