// Package model defines the core domain types for the activities service.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Activity represents one extracurricular offering. Its name is the registry
// key and is not part of the value.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns the advertised capacity minus the current roster size.
// Capacity is informational, so the result can be negative.
func (a *Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Clone returns a deep copy whose participant slice is never nil.
func (a Activity) Clone() Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	a.Participants = participants
	return a
}

// CatalogEntry pairs an activity with its registry key.
type CatalogEntry struct {
	Name     string
	Activity Activity
}

// Catalog is an ordered snapshot of the registry. It encodes as a JSON object
// whose keys keep the snapshot's order.
type Catalog []CatalogEntry

// Get looks up an entry by name.
func (c Catalog) Get(name string) (Activity, bool) {
	for _, e := range c {
		if e.Name == name {
			return e.Activity, true
		}
	}
	return Activity{}, false
}

// Names returns the activity names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, e := range c {
		names = append(names, e.Name)
	}
	return names
}

// MarshalJSON implements json.Marshaler.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, fmt.Errorf("encode activity name: %w", err)
		}
		val, err := json.Marshal(e.Activity)
		if err != nil {
			return nil, fmt.Errorf("encode activity %q: %w", e.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Registration records a successful signup.
type Registration struct {
	ID        string    `json:"id"`
	Activity  string    `json:"activity"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse is the JSON envelope for successful mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
