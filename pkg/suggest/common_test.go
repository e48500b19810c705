package suggest

import (
	"testing"

	"github.com/bastiangx/wordserve/pkg/term"
	"github.com/stretchr/testify/require"
)

// sample is the corpus used throughout: {air:3, bat:2, bell:4, boy:1}.
var (
	sampleWords   = []string{"air", "bat", "bell", "boy"}
	sampleWeights = []float64{3, 2, 4, 1}
)

type backendCase struct {
	Name string
	Kind Backend
}

var allBackends = []backendCase{
	{"trie", BackendTrie},
	{"binary", BackendBinary},
	{"patricia", BackendPatricia},
}

func build(t testing.TB, kind Backend, words []string, weights []float64) Autocompleter {
	t.Helper()
	ac, err := New(kind, words, weights)
	require.NoError(t, err)
	return ac
}

func mustTerm(t testing.TB, word string, weight float64) term.Term {
	t.Helper()
	tm, err := term.New(word, weight)
	require.NoError(t, err)
	return tm
}

// countingOrder wraps cmp and counts its invocations.
func countingOrder(cmp term.Comparator) (term.Comparator, *int) {
	calls := new(int)
	return func(a, b term.Term) int {
		*calls++
		return cmp(a, b)
	}, calls
}
