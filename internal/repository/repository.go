// Package repository implements the in-memory activity registry.
// Each ActivityRepository is an independently owned instance; nothing is
// shared at package level.
package repository

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/model"
	"github.com/elikennie/skills-getting-started-with-github-copilot/internal/seed"
	"github.com/google/uuid"
)

// ErrNotFound is returned when the named activity does not exist.
var ErrNotFound = errors.New("activity not found")

// ErrAlreadyRegistered is returned when the email is already on the roster.
var ErrAlreadyRegistered = errors.New("student is already signed up")

// ErrNotRegistered is returned when unregistering an email that is not on the roster.
var ErrNotRegistered = errors.New("student is not registered for this activity")

// ActivityRepository holds every activity keyed by name, remembering the
// order in which they were seeded.
type ActivityRepository struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]*model.Activity
}

// NewActivityRepository builds a registry from seed entries. Entries are
// copied, so the caller may reuse the slice.
func NewActivityRepository(entries []seed.Activity) *ActivityRepository {
	r := &ActivityRepository{
		order:      make([]string, 0, len(entries)),
		activities: make(map[string]*model.Activity, len(entries)),
	}
	for _, e := range entries {
		if _, exists := r.activities[e.Name]; exists {
			continue
		}
		a := model.Activity{
			Description:     e.Description,
			Schedule:        e.Schedule,
			MaxParticipants: e.MaxParticipants,
			Participants:    e.Participants,
		}.Clone()
		r.order = append(r.order, e.Name)
		r.activities[e.Name] = &a
	}
	return r
}

// List returns a snapshot of all activities in seed order.
func (r *ActivityRepository) List(ctx context.Context) model.Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	catalog := make(model.Catalog, 0, len(r.order))
	for _, name := range r.order {
		catalog = append(catalog, model.CatalogEntry{
			Name:     name,
			Activity: r.activities[name].Clone(),
		})
	}
	return catalog
}

// Get returns a copy of a single activity or ErrNotFound.
func (r *ActivityRepository) Get(ctx context.Context, name string) (*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return nil, ErrNotFound
	}
	cp := a.Clone()
	return &cp, nil
}

// Signup appends email to the activity's roster.
// Capacity is not checked: max_participants is advertised only.
func (r *ActivityRepository) Signup(ctx context.Context, name, email string) (*model.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return nil, ErrNotFound
	}
	if slices.Contains(a.Participants, email) {
		return nil, ErrAlreadyRegistered
	}
	a.Participants = append(a.Participants, email)

	return &model.Registration{
		ID:        uuid.New().String(),
		Activity:  name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Unregister removes email from the activity's roster, keeping the order of
// the remaining participants.
func (r *ActivityRepository) Unregister(ctx context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return ErrNotFound
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return ErrNotRegistered
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return nil
}
