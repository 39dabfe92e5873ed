// Package testing provides utilities and helpers for testing the search service.
package testing

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sajidahmed21/LearnR/internal/persistence"
	"github.com/sajidahmed21/LearnR/model"
	"github.com/sajidahmed21/LearnR/services"
	"github.com/sajidahmed21/LearnR/store"
)

// StubSource is an in-memory CandidateSource.
// It filters its configured records by case-insensitive substring, like the
// real store, and records every call.
type StubSource struct {
	ByName   []model.Candidate
	ByHandle []model.Candidate

	// NameErr and HandleErr are returned by fetches for that field when set
	NameErr   error
	HandleErr error

	// Delay is slept (or interrupted by ctx) before each fetch
	Delay time.Duration

	mu    sync.Mutex
	calls []model.SearchField
}

var _ services.CandidateSource = (*StubSource)(nil)

// FetchCandidates implements services.CandidateSource
func (s *StubSource) FetchCandidates(ctx context.Context, substring string, field model.SearchField) ([]model.Candidate, error) {
	s.mu.Lock()
	s.calls = append(s.calls, field)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	records, err := s.ByName, s.NameErr
	if field == model.FieldHandle {
		records, err = s.ByHandle, s.HandleErr
	}
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(substring)
	matches := make([]model.Candidate, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.MatchingString), needle) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// Calls returns the fields fetched so far, in call order
func (s *StubSource) Calls() []model.SearchField {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SearchField(nil), s.calls...)
}

// DefaultUsers is a small population shared by integration tests
func DefaultUsers() []persistence.UserFixture {
	return []persistence.UserFixture{
		{Name: "John Smith", Username: "jsmith"},
		{Name: "Joanna Doe"},
		{Name: "Alice Jones", Username: "ajo"},
		{Username: "jo"},
		{Name: "Bob Brown", Username: "bobby"},
	}
}

// CreateTestStore opens a temp-dir SQLite store seeded with users and
// closes it when the test ends.
func CreateTestStore(t *testing.T, users ...persistence.UserFixture) *store.UserStore {
	t.Helper()

	s, err := store.NewUserStore(filepath.Join(t.TempDir(), "users.db"), time.Second)
	require.NoError(t, err, "Failed to create test store")
	t.Cleanup(func() { _ = s.Close() })

	if len(users) > 0 {
		_, err = s.Seed(context.Background(), users)
		require.NoError(t, err, "Failed to seed test store")
	}
	return s
}

// IntPtr returns a pointer to v, for optional limits
func IntPtr(v int) *int {
	return &v
}
