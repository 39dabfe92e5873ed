package search

import (
	"strings"

	"github.com/sajidahmed21/LearnR/internal/tokenizer"
	"github.com/sajidahmed21/LearnR/model"
)

// Scoring weights
const (
	matchWeight = 10 // per word containing the term
	prefixBonus = 5  // word starts with the term
	exactBonus  = 10 // word equals the term
)

// ScoreTerm scores how well one query term matches text.
// Both arguments must already be normalized to the same case.
//
// Every word of text containing term adds matchWeight, plus prefixBonus when
// the word starts with term. An exact word match adds exactBonus; a longer
// word loses one point per extra character.
func ScoreTerm(term, text string) int {
	if term == "" {
		return 0
	}

	termLen := tokenizer.Length(term)
	score := 0
	for _, word := range tokenizer.Words(text) {
		if !strings.Contains(word, term) {
			continue
		}

		score += matchWeight
		if strings.HasPrefix(word, term) {
			score += prefixBonus
		}

		if diff := tokenizer.Length(word) - termLen; diff == 0 {
			score += exactBonus
		} else {
			score -= diff
		}
	}
	return score
}

// ScoreString sums ScoreTerm over every whitespace separated term of query.
// Repeated terms count every time they appear.
func ScoreString(query, text string) int {
	score := 0
	for _, term := range tokenizer.Words(query) {
		score += ScoreTerm(term, text)
	}
	return score
}

// ScoreResults normalizes query and each candidate's MatchingString and
// attaches the resulting score. The input slice is not modified.
func ScoreResults(query string, candidates []model.Candidate) []model.ScoredCandidate {
	normalizedQuery := tokenizer.Normalize(query)

	scored := make([]model.ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = model.ScoredCandidate{
			Candidate: c,
			Score:     ScoreString(normalizedQuery, tokenizer.Normalize(c.MatchingString)),
		}
	}
	return scored
}
