package model

// SearchField identifies the user field a candidate fetch is matched against.
type SearchField int

const (
	// FieldDisplayName matches against the user's display name.
	FieldDisplayName SearchField = iota
	// FieldHandle matches against the user's login handle.
	FieldHandle
)

// String returns the label used for the field in logs and metrics.
func (f SearchField) String() string {
	switch f {
	case FieldDisplayName:
		return "display_name"
	case FieldHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Candidate is a record returned by a data source as a possible match for a query.
// MatchingString is the text the query is scored against; it never leaves the server.
type Candidate struct {
	ID             int64  `json:"id"`
	DisplayValue   string `json:"display_value"`
	MatchingString string `json:"-"`
}

// ScoredCandidate is a Candidate with its relevance score attached.
type ScoredCandidate struct {
	Candidate
	Score int `json:"score"`
}

// Suggestion is the projection of a ranked result handed to autocomplete widgets.
// The JSON names "data" and "value" are what the widget expects.
type Suggestion struct {
	ID           int64  `json:"data"`
	DisplayValue string `json:"value"`
	Score        int    `json:"-"`
}
