package model

import "time"

// SearchEvent represents a single search request for analytics tracking
type SearchEvent struct {
	ID           string        `json:"id"`
	QueryID      string        `json:"query_id,omitempty"`
	Query        string        `json:"query"`
	SearchType   string        `json:"search_type"` // "by-display-name", "by-handle", "combined" or the raw invalid value
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Failed       bool          `json:"failed"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int64  `json:"search_count"`
}

// SearchTypeStats counts searches per search type
type SearchTypeStats struct {
	ByDisplayName int `json:"by_display_name"`
	ByHandle      int `json:"by_handle"`
	Combined      int `json:"combined"`
	Invalid       int `json:"invalid"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalSearches      int             `json:"total_searches"`
	FailedSearches     int             `json:"failed_searches"`
	ZeroResultSearches int             `json:"zero_result_searches"`
	AvgResponseTime    int64           `json:"avg_response_time"` // in milliseconds
	SearchTypes        SearchTypeStats `json:"search_types"`
	PopularSearches    []PopularSearch `json:"popular_searches"`
	RecentSearches     []SearchEvent   `json:"recent_searches"`
}
