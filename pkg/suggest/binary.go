package suggest

import (
	"math"
	"slices"
	"strings"

	"github.com/bastiangx/wordserve/pkg/term"
	"github.com/charmbracelet/log"
)

// BinarySearch answers queries from a lexicographically sorted term array.
// Build is O(n log n); a query costs O(log n + m) for m words in the prefix range.
type BinarySearch struct {
	terms     []term.Term
	maxWeight float64
}

// NewBinarySearch sorts the corpus. When a word appears more than once the
// last pair wins, matching re-insertion in the trie.
func NewBinarySearch(words []string, weights []float64) (*BinarySearch, error) {
	terms, err := buildTerms(words, weights)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(terms, term.LexicalOrder)
	terms = keepLast(terms)

	b := &BinarySearch{terms: terms}
	for _, t := range terms {
		b.maxWeight = math.Max(b.maxWeight, t.Weight())
	}
	log.Debugf("Built binary search index: %d terms", len(terms))
	return b, nil
}

// keepLast drops all but the last of each run of equal words.
func keepLast(sorted []term.Term) []term.Term {
	out := sorted[:0]
	for i, t := range sorted {
		if i+1 < len(sorted) && sorted[i+1].Word() == t.Word() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchRange returns the inclusive index range of terms starting with prefix.
func (b *BinarySearch) matchRange(prefix string) (first, last int, ok bool) {
	key := term.Key(prefix)
	cmp := term.PrefixOrder(len(prefix))

	first = FirstIndexOf(b.terms, key, cmp)
	if first == NotFound {
		return NotFound, NotFound, false
	}
	last = LastIndexOf(b.terms, key, cmp)
	return first, last, last >= first
}

func (b *BinarySearch) topK(prefix string, k int) []term.Term {
	if k <= 0 {
		return nil
	}
	first, last, ok := b.matchRange(prefix)
	if !ok {
		return nil
	}

	best := newTopK(k)
	for _, t := range b.terms[first : last+1] {
		best.offer(t)
	}
	return best.drain()
}

// TopKMatches returns up to k words starting with prefix, heaviest first.
func (b *BinarySearch) TopKMatches(prefix string, k int) []string {
	return wordsOf(b.topK(prefix, k))
}

// Complete returns up to limit suggestions starting with prefix, heaviest first.
func (b *BinarySearch) Complete(prefix string, limit int) []Suggestion {
	return suggestionsOf(b.topK(prefix, limit))
}

// TopMatch scans the prefix range for the heaviest word. Each candidate is
// re-checked with strings.HasPrefix so a comparator edge case cannot leak a
// non-matching word into the answer.
func (b *BinarySearch) TopMatch(prefix string) string {
	first, last, ok := b.matchRange(prefix)
	if !ok {
		return ""
	}

	best, bestWeight := "", math.Inf(-1)
	for _, t := range b.terms[first : last+1] {
		if t.Weight() > bestWeight && strings.HasPrefix(t.Word(), prefix) {
			best, bestWeight = t.Word(), t.Weight()
		}
	}
	return best
}

// Len returns the number of distinct words.
func (b *BinarySearch) Len() int {
	return len(b.terms)
}

// Stats returns statistics about the loaded corpus
func (b *BinarySearch) Stats() map[string]int {
	return map[string]int{
		"totalWords": len(b.terms),
		"maxWeight":  int(b.maxWeight),
	}
}
