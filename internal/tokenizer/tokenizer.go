package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Normalize case-folds text before it enters the scorer.
// Queries and matching strings must both go through it exactly once.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// Words splits text on runs of whitespace.
// Leading, trailing and repeated whitespace never produce empty words.
func Words(text string) []string {
	return strings.Fields(text)
}

// Length returns the number of characters in a word.
func Length(word string) int {
	return utf8.RuneCountInString(word)
}
