// Package service implements the business operations on the activity
// registry: input checks, confirmation messages, metrics, tracing and logging.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/metrics"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/model"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// ErrEmailRequired is returned when the email parameter is missing.
var ErrEmailRequired = errors.New("email is required")

// ActivityService orchestrates roster operations.
type ActivityService struct {
	activities *repository.ActivityRepository
	log        *zap.Logger
	tracer     trace.Tracer
}

// NewActivityService constructs an ActivityService. A nil logger or tracer
// is replaced by a no-op.
func NewActivityService(activities *repository.ActivityRepository, log *zap.Logger, tracer trace.Tracer) *ActivityService {
	if log == nil {
		log = zap.NewNop()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &ActivityService{activities: activities, log: log, tracer: tracer}
}

// ListActivities returns every activity with its roster.
func (s *ActivityService) ListActivities(ctx context.Context) model.Catalog {
	_, span := s.tracer.Start(ctx, "activities.list")
	defer span.End()

	catalog := s.activities.List(ctx)
	span.SetAttributes(attribute.Int("activities.count", len(catalog)))
	return catalog
}

// Signup adds email to the named activity and returns the confirmation message.
// The email is taken verbatim; only its presence is checked.
func (s *ActivityService) Signup(ctx context.Context, activityName, email string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "activities.signup",
		trace.WithAttributes(attribute.String("activity.name", activityName)))
	defer span.End()

	if email == "" {
		s.reject(span, "signup", activityName, ErrEmailRequired)
		return "", ErrEmailRequired
	}

	reg, err := s.activities.Signup(ctx, activityName, email)
	if err != nil {
		s.reject(span, "signup", activityName, err)
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("sign up for activity: %w", err)
	}

	metrics.Signups.WithLabelValues(activityName).Inc()
	spotsLeft := s.refreshParticipants(ctx, activityName)
	span.SetAttributes(attribute.String("registration.id", reg.ID))
	s.log.Info("student signed up",
		zap.String("activity", activityName),
		zap.String("email", email),
		zap.String("registration_id", reg.ID),
		zap.Int("spots_left", spotsLeft),
	)

	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

// Unregister removes email from the named activity and returns the confirmation message.
func (s *ActivityService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "activities.unregister",
		trace.WithAttributes(attribute.String("activity.name", activityName)))
	defer span.End()

	if email == "" {
		s.reject(span, "unregister", activityName, ErrEmailRequired)
		return "", ErrEmailRequired
	}

	if err := s.activities.Unregister(ctx, activityName, email); err != nil {
		s.reject(span, "unregister", activityName, err)
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("unregister from activity: %w", err)
	}

	metrics.Unregistrations.WithLabelValues(activityName).Inc()
	spotsLeft := s.refreshParticipants(ctx, activityName)
	s.log.Info("student unregistered",
		zap.String("activity", activityName),
		zap.String("email", email),
		zap.Int("spots_left", spotsLeft),
	)

	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

// SyncParticipantGauges sets the participants gauge for every activity.
func (s *ActivityService) SyncParticipantGauges(ctx context.Context) {
	for _, e := range s.activities.List(ctx) {
		metrics.Participants.WithLabelValues(e.Name).Set(float64(len(e.Activity.Participants)))
	}
}

func (s *ActivityService) refreshParticipants(ctx context.Context, activityName string) int {
	a, err := s.activities.Get(ctx, activityName)
	if err != nil {
		return 0
	}
	metrics.Participants.WithLabelValues(activityName).Set(float64(len(a.Participants)))
	return a.SpotsLeft()
}

func (s *ActivityService) reject(span trace.Span, operation, activityName string, err error) {
	reason := failureReason(err)
	metrics.OperationFailures.WithLabelValues(operation, reason).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	s.log.Debug("roster operation rejected",
		zap.String("operation", operation),
		zap.String("activity", activityName),
		zap.String("reason", reason),
	)
}

func isDomainError(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrAlreadyRegistered) ||
		errors.Is(err, repository.ErrNotRegistered)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, repository.ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, ErrEmailRequired):
		return "email_required"
	default:
		return "internal"
	}
}
