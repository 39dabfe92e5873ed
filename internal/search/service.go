package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	internalErrors "github.com/sajidahmed21/LearnR/internal/errors"
	"github.com/sajidahmed21/LearnR/internal/logger"
	"github.com/sajidahmed21/LearnR/internal/metrics"
	"github.com/sajidahmed21/LearnR/model"
	"github.com/sajidahmed21/LearnR/services"
)

// Options tunes a Service. The zero value is usable.
type Options struct {
	// MaxLimit caps every search, including unlimited ones. Zero disables the cap.
	MaxLimit int
	// DeterministicTies breaks equal scores by display value, then ID.
	DeterministicTies bool

	Logger  logger.Logger
	Metrics *metrics.Manager
}

// Service runs autocomplete searches over a CandidateSource.
// It keeps no per-request state and is safe for concurrent use.
type Service struct {
	source  services.CandidateSource
	opts    Options
	log     logger.Logger
	metrics *metrics.Manager
}

var _ services.Searcher = (*Service)(nil)

// NewService creates a new search service
func NewService(source services.CandidateSource, opts Options) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("candidate source cannot be nil")
	}
	if opts.MaxLimit < 0 {
		return nil, fmt.Errorf("max limit cannot be negative, got %d", opts.MaxLimit)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Service{
		source:  source,
		opts:    opts,
		log:     log.Named("search"),
		metrics: opts.Metrics,
	}, nil
}

// Search fetches, scores and ranks candidates for req.
//
// by-display-name and by-handle run a single pipeline. combined fetches both
// sets concurrently without a limit, merges them and only then applies the
// limit, so a strong match can never lose to a pre-merge cutoff.
func (s *Service) Search(ctx context.Context, req services.SearchRequest) (*services.SearchResult, error) {
	startTime := time.Now()

	searchType, ok := services.ParseSearchType(req.Type)
	typeLabel := string(searchType)
	if !ok {
		typeLabel = "invalid"
	}

	// A missing query is reported ahead of an unknown type
	if strings.TrimSpace(req.Query) == "" {
		s.metrics.RecordSearch(typeLabel, metrics.OutcomeMissingQuery, time.Since(startTime))
		return nil, internalErrors.ErrMissingQuery
	}
	if !ok {
		s.metrics.RecordSearch(typeLabel, metrics.OutcomeInvalidSearchType, time.Since(startTime))
		return nil, internalErrors.NewInvalidSearchTypeError(req.Type)
	}

	var (
		results        []model.ScoredCandidate
		candidateCount int
		tieDuplicates  int
		err            error
	)
	switch searchType {
	case services.SearchByDisplayName:
		results, err = s.fetchAndScore(ctx, req.Query, model.FieldDisplayName)
		candidateCount = len(results)
	case services.SearchByHandle:
		results, err = s.fetchAndScore(ctx, req.Query, model.FieldHandle)
		candidateCount = len(results)
	case services.SearchCombined:
		results, candidateCount, err = s.searchCombined(ctx, req.Query)
		tieDuplicates = countDuplicateIDs(results)
	}
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, internalErrors.ErrDataSourceFailure) {
			outcome = metrics.OutcomeDataSourceFailure
		}
		s.metrics.RecordSearch(string(searchType), outcome, time.Since(startTime))
		s.log.Error(ctx, "search failed",
			logger.String("query", req.Query),
			logger.String("type", string(searchType)),
			logger.Error(err),
		)
		return nil, err
	}

	limit := s.effectiveLimit(req.Limit)
	ranked := s.rank(results, limit)

	took := time.Since(startTime)
	result := &services.SearchResult{
		Suggestions:    toSuggestions(ranked),
		QueryID:        uuid.New().String(),
		Type:           searchType,
		CandidateCount: candidateCount,
		TieDuplicates:  tieDuplicates,
		Took:           took,
	}

	s.metrics.RecordSearch(string(searchType), metrics.OutcomeSuccess, took)
	s.metrics.RecordSuggestions(len(result.Suggestions))
	s.metrics.AddTieDuplicates(tieDuplicates)
	s.log.Debug(ctx, "search completed",
		logger.String("query_id", result.QueryID),
		logger.String("query", req.Query),
		logger.String("type", string(searchType)),
		logger.String("limit", formatLimit(limit)),
		logger.Int("candidates", candidateCount),
		logger.Int("suggestions", len(result.Suggestions)),
		logger.Duration("took", took),
	)

	return result, nil
}

// searchCombined runs both pipelines concurrently and merges their output.
func (s *Service) searchCombined(ctx context.Context, query string) ([]model.ScoredCandidate, int, error) {
	g, gctx := errgroup.WithContext(ctx)

	var byName, byHandle []model.ScoredCandidate
	g.Go(func() error {
		var err error
		byName, err = s.fetchAndScore(gctx, query, model.FieldDisplayName)
		return err
	})
	g.Go(func() error {
		var err error
		byHandle, err = s.fetchAndScore(gctx, query, model.FieldHandle)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return Merge(byName, byHandle), len(byName) + len(byHandle), nil
}

// fetchAndScore fetches the unlimited candidate set for field and scores it.
func (s *Service) fetchAndScore(ctx context.Context, query string, field model.SearchField) ([]model.ScoredCandidate, error) {
	candidates, err := s.source.FetchCandidates(ctx, query, field)
	if err != nil {
		return nil, internalErrors.NewDataSourceError(field.String(), err)
	}
	s.metrics.RecordCandidates(field.String(), len(candidates))
	return ScoreResults(query, candidates), nil
}

func (s *Service) rank(results []model.ScoredCandidate, limit *int) []model.ScoredCandidate {
	if s.opts.DeterministicTies {
		return RankDeterministic(results, limit)
	}
	return Rank(results, limit)
}

// effectiveLimit applies MaxLimit to the requested limit.
func (s *Service) effectiveLimit(requested *int) *int {
	if requested != nil && *requested < 0 {
		requested = nil
	}
	if s.opts.MaxLimit == 0 {
		return requested
	}
	if requested == nil || *requested > s.opts.MaxLimit {
		capped := s.opts.MaxLimit
		return &capped
	}
	return requested
}

func formatLimit(limit *int) string {
	if limit == nil {
		return "unlimited"
	}
	return strconv.Itoa(*limit)
}

// toSuggestions strips everything but the identity, display value and score.
func toSuggestions(ranked []model.ScoredCandidate) []model.Suggestion {
	suggestions := make([]model.Suggestion, len(ranked))
	for i, r := range ranked {
		suggestions[i] = model.Suggestion{
			ID:           r.ID,
			DisplayValue: r.DisplayValue,
			Score:        r.Score,
		}
	}
	return suggestions
}
