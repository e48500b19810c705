// Package term holds the weighted vocabulary entry shared by every suggest backend
// and the orderings used to sort, search and rank them.
package term

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrMissingWord is returned when a term is built from an empty word.
	ErrMissingWord = errors.New("missing word")

	// ErrNegativeWeight is returned for weights below zero (or NaN).
	ErrNegativeWeight = errors.New("negative weight")

	// ErrInfiniteWeight is returned for +Inf, which has no integer form for stats or the wire.
	ErrInfiniteWeight = errors.New("infinite weight")
)

// Term is an immutable (word, weight) pair.
type Term struct {
	word   string
	weight float64
}

// New validates and builds a Term.
func New(word string, weight float64) (Term, error) {
	if word == "" {
		return Term{}, ErrMissingWord
	}
	if weight < 0 || math.IsNaN(weight) {
		return Term{}, fmt.Errorf("%w: %q has weight %v", ErrNegativeWeight, word, weight)
	}
	if math.IsInf(weight, 1) {
		return Term{}, fmt.Errorf("%w: %q", ErrInfiniteWeight, word)
	}
	return Term{word: word, weight: weight}, nil
}

// Key builds an unvalidated term used only as a search key.
// The empty prefix is a legal key.
func Key(prefix string) Term {
	return Term{word: prefix}
}

// Word returns the vocabulary word.
func (t Term) Word() string { return t.word }

// Weight returns the term weight.
func (t Term) Weight() float64 { return t.weight }

func (t Term) String() string {
	return fmt.Sprintf("%s (%g)", t.word, t.weight)
}

// Comparator orders two terms: negative if a sorts first, zero if equal, positive otherwise.
type Comparator func(a, b Term) int

// LexicalOrder compares words byte by byte.
func LexicalOrder(a, b Term) int {
	return strings.Compare(a.word, b.word)
}

// PrefixOrder compares only the first r bytes of each word.
// A word shorter than r compares with its whole content, so "boy" sorts
// before (and is never equal to) the key "boys".
func PrefixOrder(r int) Comparator {
	if r < 0 {
		r = 0
	}
	return func(a, b Term) int {
		return strings.Compare(head(a.word, r), head(b.word, r))
	}
}

func head(s string, r int) string {
	if len(s) > r {
		return s[:r]
	}
	return s
}

// WeightOrder sorts by ascending weight.
func WeightOrder(a, b Term) int {
	switch {
	case a.weight < b.weight:
		return -1
	case a.weight > b.weight:
		return 1
	}
	return 0
}

// ReverseWeightOrder sorts by descending weight.
func ReverseWeightOrder(a, b Term) int {
	return WeightOrder(b, a)
}

// RankOrder is the ranking used by all top-k selection: descending weight,
// ties broken by ascending word so results are deterministic.
func RankOrder(a, b Term) int {
	if c := ReverseWeightOrder(a, b); c != 0 {
		return c
	}
	return LexicalOrder(a, b)
}
