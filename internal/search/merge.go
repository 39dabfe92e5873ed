package search

import "github.com/sajidahmed21/LearnR/model"

// Merge combines two scored result sets that may share identities.
//
// A record is dropped only when the other set holds a record with the same ID
// and a strictly higher score. When both copies have equal scores neither
// shadows the other, so both survive and the merged set carries the identity
// twice. Records of b that are exact copies of a surviving record of a are
// collapsed into it, so merging a set with itself returns the set.
// Survivors of a come first, then survivors of b, each in input order.
func Merge(a, b []model.ScoredCandidate) []model.ScoredCandidate {
	merged := make([]model.ScoredCandidate, 0, len(a)+len(b))
	merged = appendUnshadowed(merged, a, indexByID(b))

	kept := make(map[model.ScoredCandidate]struct{}, len(merged))
	for _, r := range merged {
		kept[r] = struct{}{}
	}

	for _, r := range appendUnshadowed(nil, b, indexByID(a)) {
		if _, dup := kept[r]; !dup {
			merged = append(merged, r)
		}
	}
	return merged
}

// indexByID maps each identity to the score of its first record in set.
func indexByID(set []model.ScoredCandidate) map[int64]int {
	index := make(map[int64]int, len(set))
	for _, r := range set {
		if _, seen := index[r.ID]; !seen {
			index[r.ID] = r.Score
		}
	}
	return index
}

func appendUnshadowed(dst, set []model.ScoredCandidate, other map[int64]int) []model.ScoredCandidate {
	for _, r := range set {
		if otherScore, ok := other[r.ID]; !ok || otherScore <= r.Score {
			dst = append(dst, r)
		}
	}
	return dst
}

// countDuplicateIDs reports how many records share an identity with an
// earlier record in set.
func countDuplicateIDs(set []model.ScoredCandidate) int {
	seen := make(map[int64]struct{}, len(set))
	dups := 0
	for _, r := range set {
		if _, ok := seen[r.ID]; ok {
			dups++
			continue
		}
		seen[r.ID] = struct{}{}
	}
	return dups
}
