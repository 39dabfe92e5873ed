// Package analytics keeps in-memory statistics about served searches.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sajidahmed21/LearnR/internal/logger"
	"github.com/sajidahmed21/LearnR/model"
	"github.com/sajidahmed21/LearnR/services"
)

const (
	defaultMaxEvents  = 10000 // Keep last 10k events for performance
	defaultTopQueries = 1000
	popularToReport   = 10
	recentToReport    = 10
)

// Options tunes a Service. Non-positive sizes fall back to the defaults.
type Options struct {
	MaxEvents  int // events retained for averages and the recent list
	TopQueries int // distinct queries tracked for popularity
	Logger     logger.Logger
}

// Service implements analytics tracking and reporting
type Service struct {
	mutex     sync.RWMutex
	events    []model.SearchEvent
	maxEvents int

	// popular counts searches per normalized query; rarely repeated
	// queries are evicted first once the cache is full
	popular *lru.Cache[string, int64]

	total       int
	failed      int
	zeroResults int
	types       model.SearchTypeStats

	log logger.Logger
}

// NewService creates a new analytics service
func NewService(opts Options) (*Service, error) {
	if opts.MaxEvents <= 0 {
		opts.MaxEvents = defaultMaxEvents
	}
	if opts.TopQueries <= 0 {
		opts.TopQueries = defaultTopQueries
	}

	popular, err := lru.New[string, int64](opts.TopQueries)
	if err != nil {
		return nil, fmt.Errorf("failed to create popular query cache: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Service{
		events:    make([]model.SearchEvent, 0),
		maxEvents: opts.MaxEvents,
		popular:   popular,
		log:       log.Named("analytics"),
	}, nil
}

// TrackSearchEvent records a new search event
func (s *Service) TrackSearchEvent(event model.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.events = append(s.events, event)
	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > s.maxEvents {
		s.events = s.events[len(s.events)-s.maxEvents:]
	}

	s.total++
	switch {
	case event.Failed:
		s.failed++
	case event.ResultCount == 0:
		s.zeroResults++
	}
	s.countType(event.SearchType)

	if key := normalizeQuery(event.Query); key != "" {
		count, _ := s.popular.Get(key)
		s.popular.Add(key, count+1)
	}

	s.log.Debug(context.Background(), "search event tracked",
		logger.String("event_id", event.ID),
		logger.String("query_id", event.QueryID),
		logger.Int("result_count", event.ResultCount),
	)
	return nil
}

func (s *Service) countType(raw string) {
	searchType, ok := services.ParseSearchType(raw)
	if !ok {
		s.types.Invalid++
		return
	}
	switch searchType {
	case services.SearchByDisplayName:
		s.types.ByDisplayName++
	case services.SearchByHandle:
		s.types.ByHandle++
	case services.SearchCombined:
		s.types.Combined++
	}
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return model.AnalyticsDashboard{
		TotalSearches:      s.total,
		FailedSearches:     s.failed,
		ZeroResultSearches: s.zeroResults,
		AvgResponseTime:    s.calculateAvgResponseTime(),
		SearchTypes:        s.types,
		PopularSearches:    s.getPopularSearches(popularToReport),
		RecentSearches:     s.getRecentSearches(recentToReport),
	}, nil
}

// calculateAvgResponseTime averages the retained events in milliseconds
func (s *Service) calculateAvgResponseTime() int64 {
	if len(s.events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range s.events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(s.events))).Milliseconds()
}

// getPopularSearches returns the n most searched queries
func (s *Service) getPopularSearches(n int) []model.PopularSearch {
	keys := s.popular.Keys()
	popular := make([]model.PopularSearch, 0, len(keys))
	for _, query := range keys {
		if count, ok := s.popular.Peek(query); ok {
			popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
		}
	}

	// Sort by count descending, then alphabetically
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > n {
		popular = popular[:n]
	}
	return popular
}

// getRecentSearches returns up to n events, newest first
func (s *Service) getRecentSearches(n int) []model.SearchEvent {
	if n > len(s.events) {
		n = len(s.events)
	}
	recent := make([]model.SearchEvent, 0, n)
	for i := len(s.events) - 1; i >= len(s.events)-n; i-- {
		recent = append(recent, s.events[i])
	}
	return recent
}

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
