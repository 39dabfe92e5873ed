package search

import (
	"cmp"
	"slices"

	"github.com/sajidahmed21/LearnR/model"
)

// Rank returns results sorted by descending score, truncated to limit.
// A nil or negative limit means unlimited. Equal scores keep their input
// order, which is the data source's fetch order and therefore not guaranteed
// to be stable across calls; use RankDeterministic when that matters.
func Rank(results []model.ScoredCandidate, limit *int) []model.ScoredCandidate {
	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, compareScores)
	return truncate(ranked, limit)
}

// RankDeterministic ranks like Rank but breaks score ties by display value
// and then by identity.
func RankDeterministic(results []model.ScoredCandidate, limit *int) []model.ScoredCandidate {
	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, func(a, b model.ScoredCandidate) int {
		if c := compareScores(a, b); c != 0 {
			return c
		}
		if c := cmp.Compare(a.DisplayValue, b.DisplayValue); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return truncate(ranked, limit)
}

func compareScores(a, b model.ScoredCandidate) int {
	return cmp.Compare(b.Score, a.Score)
}

func truncate(ranked []model.ScoredCandidate, limit *int) []model.ScoredCandidate {
	if limit != nil && *limit >= 0 && len(ranked) > *limit {
		return ranked[:*limit]
	}
	return ranked
}
