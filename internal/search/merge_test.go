package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sajidahmed21/LearnR/model"
)

func TestMerge_HigherScoreShadows(t *testing.T) {
	a := []model.ScoredCandidate{scored(1, "", 10)}
	b := []model.ScoredCandidate{scored(1, "", 20), scored(2, "", 5)}

	merged := Merge(a, b)

	assert.Equal(t, []model.ScoredCandidate{scored(1, "", 20), scored(2, "", 5)}, merged)
}

func TestMerge_EqualScoresKeepBothCopies(t *testing.T) {
	a := []model.ScoredCandidate{scored(1, "by name", 15)}
	b := []model.ScoredCandidate{scored(1, "by handle", 15)}

	merged := Merge(a, b)

	assert.Equal(t, []model.ScoredCandidate{scored(1, "by name", 15), scored(1, "by handle", 15)}, merged)
	assert.Equal(t, 1, countDuplicateIDs(merged))
}

func TestMerge_EqualScoreIsNotShadowed(t *testing.T) {
	one := []model.ScoredCandidate{scored(1, "", 10)}

	assert.Equal(t, one, Merge(one, one))
	assert.Equal(t, one, Merge(one, []model.ScoredCandidate{scored(1, "", 10)}))
}

func TestMerge_SelfMergeReturnsSet(t *testing.T) {
	a := []model.ScoredCandidate{scored(1, "", 10), scored(2, "", 3)}

	assert.Equal(t, a, Merge(a, a))
	assert.Equal(t, a, Merge(a, nil))
	assert.Equal(t, a, Merge(nil, a))
}

func TestMerge_TieBetweenPipelinesKeepsBothMatchingStrings(t *testing.T) {
	byName := scored(7, "John Smith (jsmith)", 13)
	byName.MatchingString = "John Smith"
	byHandle := scored(7, "John Smith (jsmith)", 13)
	byHandle.MatchingString = "jsmith"

	merged := Merge([]model.ScoredCandidate{byName}, []model.ScoredCandidate{byHandle})

	assert.Equal(t, []model.ScoredCandidate{byName, byHandle}, merged)
}

func TestMerge_DisjointSetsConcatenate(t *testing.T) {
	a := []model.ScoredCandidate{scored(1, "", 1), scored(2, "", 2)}
	b := []model.ScoredCandidate{scored(3, "", 3)}

	assert.Equal(t, []int64{1, 2, 3}, ids(Merge(a, b)))
}

func TestMerge_NegativeScores(t *testing.T) {
	a := []model.ScoredCandidate{scored(1, "", -8)}
	b := []model.ScoredCandidate{scored(1, "", -3)}

	assert.Equal(t, []model.ScoredCandidate{scored(1, "", -3)}, Merge(a, b))
}

func TestMerge_SurvivorSetIsOrderIndependent(t *testing.T) {
	a := []model.ScoredCandidate{scored(1, "", 10), scored(2, "", 7), scored(3, "", 4)}
	b := []model.ScoredCandidate{scored(2, "", 9), scored(3, "", 4), scored(4, "", 1)}

	ab := Merge(a, b)
	ba := Merge(b, a)

	assert.ElementsMatch(t, ab, ba)
	// 2 keeps b's higher copy; 3 ties with an exact copy and collapses
	assert.ElementsMatch(t, []model.ScoredCandidate{
		scored(1, "", 10), scored(2, "", 9), scored(3, "", 4), scored(4, "", 1),
	}, ab)
}

func TestMerge_ThenRankAppliesLimitAfterMerge(t *testing.T) {
	byName := []model.ScoredCandidate{scored(1, "", 5), scored(2, "", 4), scored(3, "", 3)}
	byHandle := []model.ScoredCandidate{scored(9, "", 40)}

	ranked := Rank(Merge(byName, byHandle), intPtr(2))

	assert.Equal(t, []int64{9, 1}, ids(ranked))
}

func TestCountDuplicateIDs(t *testing.T) {
	assert.Equal(t, 0, countDuplicateIDs(nil))
	assert.Equal(t, 0, countDuplicateIDs([]model.ScoredCandidate{scored(1, "", 1), scored(2, "", 1)}))
	assert.Equal(t, 2, countDuplicateIDs([]model.ScoredCandidate{scored(1, "", 1), scored(1, "", 1), scored(1, "", 1)}))
}
