// Package seed provides the activity dataset the registry starts from.
// The default dataset is embedded; an alternative YAML file of the same
// shape can be loaded from disk.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed activities.yaml
var defaultYAML []byte

// Activity is one seed entry.
type Activity struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

type document struct {
	Activities []Activity `yaml:"activities"`
}

// Default returns the embedded seed dataset.
func Default() ([]Activity, error) {
	return Parse(defaultYAML)
}

// Load reads a seed file from path. An empty path selects the embedded dataset.
func Load(path string) ([]Activity, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	activities, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return activities, nil
}

// Parse decodes and validates a seed document.
func Parse(data []byte) ([]Activity, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if err := Validate(doc.Activities); err != nil {
		return nil, err
	}
	return doc.Activities, nil
}

// Validate checks the registry invariants a seed must satisfy before use.
func Validate(activities []Activity) error {
	if len(activities) == 0 {
		return errors.New("seed contains no activities")
	}

	names := make(map[string]struct{}, len(activities))
	for i, a := range activities {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("activity #%d: name is required", i+1)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("activity %q: duplicate name", a.Name)
		}
		names[a.Name] = struct{}{}

		if a.Description == "" {
			return fmt.Errorf("activity %q: description is required", a.Name)
		}
		if a.Schedule == "" {
			return fmt.Errorf("activity %q: schedule is required", a.Name)
		}
		if a.MaxParticipants <= 0 {
			return fmt.Errorf("activity %q: max_participants must be a positive integer", a.Name)
		}

		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if email == "" {
				return fmt.Errorf("activity %q: empty participant email", a.Name)
			}
			if _, dup := seen[email]; dup {
				return fmt.Errorf("activity %q: participant %q listed twice", a.Name, email)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}
