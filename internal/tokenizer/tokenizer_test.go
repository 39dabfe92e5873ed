package tokenizer

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"already lowercase", "john smith", "john smith"},
		{"mixed case", "John SMITH", "john smith"},
		{"digits untouched", "User42", "user42"},
		{"non ascii", "ÉMILE Zoë", "émile zoë"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"single word", "john", []string{"john"}},
		{"two words", "john smith", []string{"john", "smith"}},
		{"leading/trailing spaces", "  john smith  ", []string{"john", "smith"}},
		{"multiple spaces between words", "john   smith", []string{"john", "smith"}},
		{"tabs and newlines", "john\tsmith\ndoe", []string{"john", "smith", "doe"}},
		{"only whitespace", " \t ", []string{}},
		{"punctuation kept", "o'brien (ob)", []string{"o'brien", "(ob)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"cat", 3},
		{"zoë", 3},
		{"émile", 5},
	}

	for _, tt := range tests {
		if got := Length(tt.word); got != tt.want {
			t.Errorf("Length(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}
