package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/sajidahmed21/LearnR/internal/errors"
	"github.com/sajidahmed21/LearnR/internal/metrics"
	testutils "github.com/sajidahmed21/LearnR/internal/testing"
	"github.com/sajidahmed21/LearnR/model"
	"github.com/sajidahmed21/LearnR/services"
)

func candidate(id int64, display, matching string) model.Candidate {
	return model.Candidate{ID: id, DisplayValue: display, MatchingString: matching}
}

func newTestSource() *testutils.StubSource {
	return &testutils.StubSource{
		ByName: []model.Candidate{
			candidate(1, "John Smith (jsmith)", "John Smith"),
			candidate(2, "Joanna Doe", "Joanna Doe"),
			candidate(3, "Alice Jones (ajo)", "Alice Jones"),
		},
		ByHandle: []model.Candidate{
			candidate(1, "John Smith (jsmith)", "jsmith"),
			candidate(3, "Alice Jones (ajo)", "ajo"),
			candidate(4, "jo", "jo"),
		},
	}
}

func newTestService(t *testing.T, source services.CandidateSource, opts Options) *Service {
	t.Helper()
	svc, err := NewService(source, opts)
	require.NoError(t, err)
	return svc
}

func suggestionIDs(result *services.SearchResult) []int64 {
	out := make([]int64, len(result.Suggestions))
	for i, s := range result.Suggestions {
		out[i] = s.ID
	}
	return out
}

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(nil, Options{})
	assert.Error(t, err)

	_, err = NewService(newTestSource(), Options{MaxLimit: -1})
	assert.Error(t, err)

	svc, err := NewService(newTestSource(), Options{})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestSearch_ByDisplayNameWithLimit(t *testing.T) {
	source := &testutils.StubSource{
		ByName: []model.Candidate{
			candidate(1, "John", "John"),
			candidate(2, "Joanna", "Joanna"),
		},
	}
	svc := newTestService(t, source, Options{})

	result, err := svc.Search(context.Background(), services.SearchRequest{
		Query: "jo",
		Type:  "by-display-name",
		Limit: testutils.IntPtr(1),
	})
	require.NoError(t, err)

	// "john" scores 13 and beats "joanna" at 11
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, model.Suggestion{ID: 1, DisplayValue: "John", Score: 13}, result.Suggestions[0])
	assert.Equal(t, services.SearchByDisplayName, result.Type)
	assert.Equal(t, 2, result.CandidateCount)
	assert.NotEmpty(t, result.QueryID)
	assert.Equal(t, []model.SearchField{model.FieldDisplayName}, source.Calls())
}

func TestSearch_ByHandle(t *testing.T) {
	source := newTestSource()
	svc := newTestService(t, source, Options{})

	result, err := svc.Search(context.Background(), services.SearchRequest{Query: "jo", Type: "by-handle"})
	require.NoError(t, err)

	// "jo" exact 25, "ajo" 10 - 1 = 9; jsmith does not contain "jo"
	assert.Equal(t, []int64{4, 3}, suggestionIDs(result))
	assert.Equal(t, []model.SearchField{model.FieldHandle}, source.Calls())
}

func TestSearch_CombinedMergesBeforeLimit(t *testing.T) {
	source := newTestSource()
	svc := newTestService(t, source, Options{})

	result, err := svc.Search(context.Background(), services.SearchRequest{
		Query: "jo",
		Type:  "combined",
		Limit: testutils.IntPtr(3),
	})
	require.NoError(t, err)

	// by name: John 13, Joanna 11, Alice Jones 10 + 5 - 3 = 12
	// by handle: jo 25, ajo 9 (shadowed by Alice's name score)
	assert.Equal(t, []int64{4, 1, 3}, suggestionIDs(result))
	assert.Equal(t, 5, result.CandidateCount)
	assert.Equal(t, 0, result.TieDuplicates)
	assert.ElementsMatch(t, []model.SearchField{model.FieldDisplayName, model.FieldHandle}, source.Calls())
}

func TestSearch_CombinedShadowsLowerCopy(t *testing.T) {
	svc := newTestService(t, newTestSource(), Options{})

	result, err := svc.Search(context.Background(), services.SearchRequest{Query: "smith", Type: "combined"})
	require.NoError(t, err)

	// The name copy (25) shadows the handle copy ("jsmith": 10 - 1 = 9)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, model.Suggestion{ID: 1, DisplayValue: "John Smith (jsmith)", Score: 25}, result.Suggestions[0])
}

func TestSearch_CombinedTieKeepsBothCopies(t *testing.T) {
	source := &testutils.StubSource{
		ByName:   []model.Candidate{candidate(7, "Jo (jo)", "Jo")},
		ByHandle: []model.Candidate{candidate(7, "Jo (jo)", "jo")},
	}
	m := metrics.NewManager()
	svc := newTestService(t, source, Options{Metrics: m})

	result, err := svc.Search(context.Background(), services.SearchRequest{Query: "jo", Type: "combined"})
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 7}, suggestionIDs(result))
	assert.Equal(t, 1, result.TieDuplicates)

	expected := `
# HELP learnr_search_merge_tie_duplicates_total Same-identity records kept twice because both copies had equal scores.
# TYPE learnr_search_merge_tie_duplicates_total counter
learnr_search_merge_tie_duplicates_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "learnr_search_merge_tie_duplicates_total"))
}

func TestSearch_CombinedFetchesConcurrently(t *testing.T) {
	source := newTestSource()
	source.Delay = 200 * time.Millisecond
	svc := newTestService(t, source, Options{})

	start := time.Now()
	_, err := svc.Search(context.Background(), services.SearchRequest{Query: "jo", Type: "combined"})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 390*time.Millisecond)
	assert.Len(t, source.Calls(), 2)
}

func TestSearch_LegacyTypeAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  services.SearchType
	}{
		{"usersbyname", services.SearchByDisplayName},
		{"usersbyusername", services.SearchByHandle},
		{"users", services.SearchCombined},
	}

	svc := newTestService(t, newTestSource(), Options{})
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			result, err := svc.Search(context.Background(), services.SearchRequest{Query: "jo", Type: tt.alias})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Type)
		})
	}
}

func TestSearch_Limits(t *testing.T) {
	tests := []struct {
		name     string
		maxLimit int
		limit    *int
		want     int
	}{
		{"unlimited", 0, nil, 4},
		{"explicit limit", 0, testutils.IntPtr(2), 2},
		{"zero limit", 0, testutils.IntPtr(0), 0},
		{"negative limit is unlimited", 0, testutils.IntPtr(-5), 4},
		{"max limit caps unlimited", 3, nil, 3},
		{"max limit caps larger limit", 3, testutils.IntPtr(10), 3},
		{"smaller limit under max", 3, testutils.IntPtr(1), 1},
		{"max limit caps negative limit", 2, testutils.IntPtr(-1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, newTestSource(), Options{MaxLimit: tt.maxLimit})
			result, err := svc.Search(context.Background(), services.SearchRequest{
				Query: "jo",
				Type:  "combined",
				Limit: tt.limit,
			})
			require.NoError(t, err)
			assert.Len(t, result.Suggestions, tt.want)
		})
	}
}

func TestSearch_DeterministicTies(t *testing.T) {
	source := &testutils.StubSource{
		ByName: []model.Candidate{
			candidate(3, "Jon C", "Jon C"),
			candidate(1, "Jon A", "Jon A"),
			candidate(2, "Jon B", "Jon B"),
		},
	}

	stable := newTestService(t, source, Options{})
	result, err := stable.Search(context.Background(), services.SearchRequest{Query: "jon", Type: "by-display-name"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, suggestionIDs(result))

	deterministic := newTestService(t, source, Options{DeterministicTies: true})
	result, err = deterministic.Search(context.Background(), services.SearchRequest{Query: "jon", Type: "by-display-name"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, suggestionIDs(result))
}

func TestSearch_Errors(t *testing.T) {
	svc := newTestService(t, newTestSource(), Options{})

	tests := []struct {
		name    string
		req     services.SearchRequest
		wantErr error
	}{
		{"empty query", services.SearchRequest{Query: "", Type: "by-display-name"}, internalErrors.ErrMissingQuery},
		{"whitespace query", services.SearchRequest{Query: "  \t", Type: "combined"}, internalErrors.ErrMissingQuery},
		{"missing query beats bad type", services.SearchRequest{Query: "", Type: "bogus"}, internalErrors.ErrMissingQuery},
		{"unknown type", services.SearchRequest{Query: "jo", Type: "bogus"}, internalErrors.ErrInvalidSearchType},
		{"empty type", services.SearchRequest{Query: "jo"}, internalErrors.ErrInvalidSearchType},
		{"type is case sensitive", services.SearchRequest{Query: "jo", Type: "Combined"}, internalErrors.ErrInvalidSearchType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Search(context.Background(), tt.req)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSearch_DataSourceFailure(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name      string
		source    *testutils.StubSource
		searchTyp string
		wantField string
	}{
		{"by display name", &testutils.StubSource{NameErr: boom}, "by-display-name", "display_name"},
		{"by handle", &testutils.StubSource{HandleErr: boom}, "by-handle", "handle"},
		{"combined handle side", &testutils.StubSource{HandleErr: boom}, "combined", "handle"},
		{"combined name side", &testutils.StubSource{NameErr: boom}, "combined", "display_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.NewManager()
			svc := newTestService(t, tt.source, Options{Metrics: m})

			result, err := svc.Search(context.Background(), services.SearchRequest{Query: "jo", Type: tt.searchTyp})
			assert.Nil(t, result)
			require.ErrorIs(t, err, internalErrors.ErrDataSourceFailure)
			assert.ErrorIs(t, err, boom)

			var dsErr *internalErrors.DataSourceError
			require.ErrorAs(t, err, &dsErr)
			assert.Equal(t, tt.wantField, dsErr.Field)

			count, gatherErr := testutil.GatherAndCount(m.Registry(), "learnr_search_requests_total")
			require.NoError(t, gatherErr)
			assert.Equal(t, 1, count)
		})
	}
}

func TestSearch_ConcurrentCallsDoNotInterfere(t *testing.T) {
	svc := newTestService(t, newTestSource(), Options{})

	done := make(chan []int64, 20)
	for i := 0; i < cap(done); i++ {
		go func() {
			result, err := svc.Search(context.Background(), services.SearchRequest{Query: "jo", Type: "combined"})
			if err != nil {
				done <- nil
				return
			}
			done <- suggestionIDs(result)
		}()
	}

	for i := 0; i < cap(done); i++ {
		assert.Equal(t, []int64{4, 1, 3, 2}, <-done)
	}
}

func TestSearch_AgainstUserStore(t *testing.T) {
	userStore := testutils.CreateTestStore(t, testutils.DefaultUsers()...)
	svc := newTestService(t, userStore, Options{})

	result, err := svc.Search(context.Background(), services.SearchRequest{Query: "jo", Type: "combined"})
	require.NoError(t, err)

	// Alice's handle copy ("ajo": 9) is shadowed by her name copy ("jones": 12)
	assert.Equal(t, []model.Suggestion{
		{ID: 4, DisplayValue: "jo", Score: 25},
		{ID: 1, DisplayValue: "John Smith (jsmith)", Score: 13},
		{ID: 3, DisplayValue: "Alice Jones (ajo)", Score: 12},
		{ID: 2, DisplayValue: "Joanna Doe", Score: 11},
	}, result.Suggestions)
	assert.Equal(t, 5, result.CandidateCount)
}
