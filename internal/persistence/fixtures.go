// Package persistence loads seed data for the user store.
package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	internalErrors "github.com/sajidahmed21/LearnR/internal/errors"
)

// UserFixture describes one user to seed. Username is optional; users
// without one can only be found by display name.
type UserFixture struct {
	Name     string `yaml:"name"`
	Username string `yaml:"username,omitempty"`
}

// Fixtures is the top-level layout of a seed file.
type Fixtures struct {
	Users []UserFixture `yaml:"users"`
}

// LoadFixtures reads and validates a YAML seed file.
// If the file does not exist, it returns os.ErrNotExist.
func LoadFixtures(filePath string) (*Fixtures, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath comes from operator configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read fixtures file %s: %w", filePath, err)
	}

	fixtures, err := ParseFixtures(data)
	if err != nil {
		return nil, fmt.Errorf("invalid fixtures file %s: %w", filePath, err)
	}
	return fixtures, nil
}

// ParseFixtures decodes YAML seed data. Unknown keys are rejected.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var fixtures Fixtures

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixtures); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	if err := fixtures.Validate(); err != nil {
		return nil, err
	}
	return &fixtures, nil
}

// Validate checks that every user can be found by at least one field and
// that usernames are unique.
func (f *Fixtures) Validate() error {
	usernames := make(map[string]int, len(f.Users))
	var problems []string

	for i, u := range f.Users {
		name := strings.TrimSpace(u.Name)
		username := strings.TrimSpace(u.Username)

		if name == "" && username == "" {
			problems = append(problems, fmt.Sprintf("users[%d]: name or username is required", i))
			continue
		}
		if username == "" {
			continue
		}
		if first, dup := usernames[username]; dup {
			problems = append(problems, fmt.Sprintf("users[%d]: username '%s' already used by users[%d]", i, username, first))
			continue
		}
		usernames[username] = i
	}

	if len(problems) > 0 {
		return internalErrors.NewValidationError("users", strings.Join(problems, "; "))
	}
	return nil
}
