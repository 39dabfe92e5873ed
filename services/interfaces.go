package services

import (
	"context"
	"time"

	"github.com/sajidahmed21/LearnR/model"
)

// SearchType selects which candidate pipelines a search runs.
type SearchType string

const (
	// SearchByDisplayName matches the query against display names only.
	SearchByDisplayName SearchType = "by-display-name"
	// SearchByHandle matches the query against login handles only.
	SearchByHandle SearchType = "by-handle"
	// SearchCombined runs both pipelines and merges their results.
	SearchCombined SearchType = "combined"
)

// legacySearchTypes maps the type names used by older autocomplete widgets.
var legacySearchTypes = map[string]SearchType{
	"usersbyname":     SearchByDisplayName,
	"usersbyusername": SearchByHandle,
	"users":           SearchCombined,
}

// ParseSearchType resolves a raw type value, accepting the legacy aliases.
func ParseSearchType(raw string) (SearchType, bool) {
	switch st := SearchType(raw); st {
	case SearchByDisplayName, SearchByHandle, SearchCombined:
		return st, true
	}
	if st, ok := legacySearchTypes[raw]; ok {
		return st, true
	}
	return "", false
}

// SearchRequest is one autocomplete search. A nil Limit means unlimited.
type SearchRequest struct {
	Query string
	Type  string
	Limit *int
}

// SearchResult is the payload returned to the autocomplete widget.
// Only Suggestions is serialized; the remaining fields feed logs and analytics.
type SearchResult struct {
	Suggestions []model.Suggestion `json:"suggestions"`

	QueryID        string        `json:"-"` // unique UUID for this search
	Type           SearchType    `json:"-"`
	CandidateCount int           `json:"-"` // candidates fetched across all pipelines
	TieDuplicates  int           `json:"-"` // same-identity copies kept by a merge on equal scores
	Took           time.Duration `json:"-"`
}

// CandidateSource returns the raw records whose field contains substring.
// Matching is done by the source; callers only re-score.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, substring string, field model.SearchField) ([]model.Candidate, error)
}

// Searcher runs autocomplete searches
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}
