// Package suggest is the core, answering weighted prefix queries over a fixed corpus.
//
// Three interchangeable backends implement Autocompleter:
//
//   - BinarySearch keeps a lexicographically sorted array and binary-searches the
//     range of words sharing the prefix, then selects the top k from that range.
//   - Trie keeps a byte trie whose nodes cache the heaviest weight below them and
//     answers with a best-first search that prunes subtrees which cannot enter the top k.
//   - Patricia stores the corpus in a go-patricia tree and scans the whole prefix subtree.
//
// All backends are built once and only read afterwards, so a built backend may be
// shared by concurrent readers.
package suggest

import (
	"fmt"
	"strings"
)

// Autocompleter defines the query contract shared by every backend.
type Autocompleter interface {
	// TopKMatches returns up to k words starting with prefix, heaviest first.
	TopKMatches(prefix string, k int) []string

	// TopMatch returns the heaviest word starting with prefix, or "".
	TopMatch(prefix string) string

	// Complete is TopKMatches with the weights attached.
	Complete(prefix string, limit int) []Suggestion

	// Len returns the number of distinct words.
	Len() int

	// Stats returns statistics about the loaded corpus
	Stats() map[string]int
}

// Suggestion is a single ranked completion.
type Suggestion struct {
	Word   string
	Weight float64
}

// Backend names an Autocompleter implementation.
type Backend string

const (
	BackendTrie     Backend = "trie"
	BackendBinary   Backend = "binary"
	BackendPatricia Backend = "patricia"
)

// Backends lists the accepted backend names.
var Backends = []Backend{BackendTrie, BackendBinary, BackendPatricia}

// ParseBackend maps a config or flag value to a Backend.
func ParseBackend(name string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Backends {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// New builds the named backend from parallel word and weight slices.
func New(kind Backend, words []string, weights []float64) (Autocompleter, error) {
	switch kind {
	case BackendTrie:
		return NewTrie(words, weights)
	case BackendBinary:
		return NewBinarySearch(words, weights)
	case BackendPatricia:
		return NewPatricia(words, weights)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}
