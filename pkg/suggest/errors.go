package suggest

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordserve/pkg/term"
)

var (
	// ErrMissingArgument is returned when words or weights are nil, or a word is empty.
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidValue is returned for a negative, NaN or infinite weight.
	ErrInvalidValue = errors.New("invalid value")

	// ErrSizeMismatch is returned when words and weights differ in length.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrUnknownBackend is returned by ParseBackend and New for unsupported names.
	ErrUnknownBackend = errors.New("unknown backend")
)

// buildTerms validates the whole corpus before anything is built.
func buildTerms(words []string, weights []float64) ([]term.Term, error) {
	if words == nil || weights == nil {
		return nil, fmt.Errorf("%w: words and weights are required", ErrMissingArgument)
	}
	if len(words) != len(weights) {
		return nil, fmt.Errorf("%w: %d words, %d weights", ErrSizeMismatch, len(words), len(weights))
	}

	terms := make([]term.Term, len(words))
	for i := range words {
		t, err := term.New(words[i], weights[i])
		if err != nil {
			if errors.Is(err, term.ErrMissingWord) {
				return nil, fmt.Errorf("%w: entry %d: %w", ErrMissingArgument, i, err)
			}
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidValue, i, err)
		}
		terms[i] = t
	}
	return terms, nil
}

func wordsOf(terms []term.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Word()
	}
	return out
}

func suggestionsOf(terms []term.Term) []Suggestion {
	out := make([]Suggestion, len(terms))
	for i, t := range terms {
		out[i] = Suggestion{Word: t.Word(), Weight: t.Weight()}
	}
	return out
}
