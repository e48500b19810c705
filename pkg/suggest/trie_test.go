package suggest

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrie(t *testing.T, words []string, weights []float64) *Trie {
	tr, err := NewTrie(words, weights)
	require.NoError(t, err)
	return tr
}

// checkAggregate walks the trie and verifies subtreeMax and parent links everywhere.
func checkAggregate(t *testing.T, n *node) {
	t.Helper()

	exp := math.Inf(-1)
	if n.terminal {
		exp = n.weight
	}
	for c, child := range n.children {
		assert.Same(t, n, child.parent)
		assert.Equal(t, c, child.char)
		checkAggregate(t, child)
		exp = math.Max(exp, child.subtreeMax)
	}
	assert.Equal(t, exp, n.subtreeMax, "node %q", n.word)
}

// sameAggregates walks two tries with the same word set in lockstep.
func sameAggregates(t *testing.T, a, b *node, path string) {
	t.Helper()

	require.Equal(t, len(a.children), len(b.children), "children at %q", path)
	assert.Equal(t, a.terminal, b.terminal, "terminal at %q", path)
	assert.Equal(t, a.weight, b.weight, "weight at %q", path)
	assert.Equal(t, a.subtreeMax, b.subtreeMax, "subtreeMax at %q", path)
	for c, ca := range a.children {
		cb, ok := b.children[c]
		require.True(t, ok, "missing %q", path+string(c))
		sameAggregates(t, ca, cb, path+string(c))
	}
}

func TestTrieAggregate(t *testing.T) {
	tr := newTestTrie(t, sampleWords, sampleWeights)

	checkAggregate(t, tr.root)
	assert.Equal(t, 4.0, tr.root.subtreeMax)
	assert.Equal(t, 4.0, tr.find("b").subtreeMax)
	assert.Equal(t, 2.0, tr.find("ba").subtreeMax)
	assert.Equal(t, 3.0, tr.find("a").subtreeMax)
	assert.Nil(t, tr.find("boys"))
	assert.Same(t, tr.root, tr.find(""))
}

func TestTrieReinsertMatchesRebuild(t *testing.T) {
	for _, tcase := range []struct {
		Name    string
		Words   []string
		Weights []float64
	}{
		{
			"decrease max leaf",
			[]string{"bell", "bat", "bell"},
			[]float64{9, 2, 1},
		},
		{
			"decrease inner word",
			[]string{"be", "bell", "bet", "be"},
			[]float64{10, 4, 3, 0},
		},
		{
			"increase",
			[]string{"air", "airy", "air"},
			[]float64{1, 5, 8},
		},
		{
			"decrease below sibling",
			[]string{"ab", "ac", "ab", "ad"},
			[]float64{7, 5, 2, 6},
		},
		{
			"same weight",
			[]string{"x", "x"},
			[]float64{3, 3},
		},
	} {
		t.Run(tcase.Name, func(t *testing.T) {
			tr := newTestTrie(t, tcase.Words, tcase.Weights)
			checkAggregate(t, tr.root)

			final := map[string]float64{}
			var order []string
			for i, w := range tcase.Words {
				if _, seen := final[w]; !seen {
					order = append(order, w)
				}
				final[w] = tcase.Weights[i]
			}
			var words []string
			var weights []float64
			for _, w := range order {
				words = append(words, w)
				weights = append(weights, final[w])
			}
			fresh := newTestTrie(t, words, weights)

			sameAggregates(t, tr.root, fresh.root, "")
			assert.Equal(t, fresh.Len(), tr.Len())
			assert.Equal(t, fresh.nodes, tr.nodes)
		})
	}
}

func TestTrieInsertDecreaseRecomputesAncestors(t *testing.T) {
	tr := newTestTrie(t, []string{"abc", "abd", "x"}, []float64{10, 4, 6})
	tr.insert(mustTerm(t, "abc", 1))

	checkAggregate(t, tr.root)
	assert.Equal(t, 4.0, tr.find("ab").subtreeMax)
	assert.Equal(t, 6.0, tr.root.subtreeMax)
	assert.Equal(t, "x", tr.TopMatch(""))
	assert.Equal(t, "abd", tr.TopMatch("a"))
}

func TestTrieRejectsBadInsertBeforeBuilding(t *testing.T) {
	tr, err := NewTrie([]string{"ok", "bad"}, []float64{1, -2})

	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Nil(t, tr)
}

func TestTriePrunes(t *testing.T) {
	var words []string
	var weights []float64
	for i := 0; i < 1000; i++ {
		words = append(words, fmt.Sprintf("ab%04d", i))
		weights = append(weights, float64(i))
	}
	words = append(words, "az")
	weights = append(weights, 1e6)

	tr := newTestTrie(t, words, weights)

	got, visited := tr.search("a", 1)
	assert.Equal(t, []string{"az"}, wordsOf(got))
	assert.LessOrEqual(t, visited, 3)

	got, visited = tr.search("ab", 2)
	assert.Equal(t, []string{"ab0999", "ab0998"}, wordsOf(got))
	assert.Less(t, visited, 30)

	_, visited = tr.search("", 1000)
	assert.Greater(t, visited, 1000)
}

func TestTrieTiesAreStable(t *testing.T) {
	words := []string{"mix", "max", "mux", "mox"}
	weights := []float64{7, 7, 7, 1}

	// Children live in a map, so rebuilding reshuffles the frontier order.
	for i := 0; i < 200; i++ {
		tr := newTestTrie(t, words, weights)

		require.Equal(t, []string{"max"}, tr.TopKMatches("m", 1))
		require.Equal(t, []string{"max", "mix"}, tr.TopKMatches("m", 2))
		require.Equal(t, []string{"max", "mix", "mux", "mox"}, tr.TopKMatches("m", 4))
		require.Equal(t, "max", tr.TopMatch("m"))
	}
}

func TestTrieStats(t *testing.T) {
	tr := newTestTrie(t, []string{"a", "ab", "b"}, []float64{1, 2, 3})

	stats := tr.Stats()
	assert.Equal(t, 3, stats["totalWords"])
	assert.Equal(t, 4, stats["nodes"])
	assert.Equal(t, 3, stats["maxWeight"])
}
