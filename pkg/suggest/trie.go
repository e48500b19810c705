package suggest

import (
	"container/heap"
	"math"

	"github.com/bastiangx/wordserve/pkg/term"
	"github.com/charmbracelet/log"
)

// Trie answers queries from a byte trie augmented with per-node subtree maxima.
// Build is O(total bytes); a query only visits subtrees that can still reach the top k.
type Trie struct {
	root  *node
	words int
	nodes int
}

// NewTrie inserts the corpus in order. A repeated word takes its latest weight.
func NewTrie(words []string, weights []float64) (*Trie, error) {
	terms, err := buildTerms(words, weights)
	if err != nil {
		return nil, err
	}

	t := &Trie{root: newNode(0, nil), nodes: 1}
	for _, tm := range terms {
		t.insert(tm)
	}
	log.Debugf("Built trie: %d words, %d nodes", t.words, t.nodes)
	return t, nil
}

// insert adds tm, keeping every subtreeMax on the path consistent.
func (t *Trie) insert(tm term.Term) {
	word, weight := tm.Word(), tm.Weight()

	cur := t.root
	for i := 0; i < len(word); i++ {
		if cur.subtreeMax < weight {
			cur.subtreeMax = weight
		}
		next, created := cur.child(word[i], true)
		if created {
			t.nodes++
		}
		cur = next
	}

	wasTerminal, oldWeight := cur.terminal, cur.weight
	cur.terminal, cur.word, cur.weight = true, word, weight
	if !wasTerminal {
		t.words++
	}

	if wasTerminal && oldWeight > weight {
		// A lowered weight can only lower the aggregates above it, and only a
		// rebuild from the children can tell by how much.
		for n := cur; n != nil; n = n.parent {
			n.recompute()
		}
		return
	}
	if cur.subtreeMax < weight {
		cur.subtreeMax = weight
	}
}

// find returns the landing node for prefix, or nil.
func (t *Trie) find(prefix string) *node {
	cur := t.root
	for i := 0; i < len(prefix); i++ {
		next, _ := cur.child(prefix[i], false)
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// search runs the best-first pruned traversal below the landing node.
// It also reports how many nodes were expanded.
func (t *Trie) search(prefix string, k int) ([]term.Term, int) {
	if k <= 0 {
		return nil, 0
	}
	land := t.find(prefix)
	if land == nil || math.IsInf(land.subtreeMax, -1) {
		return nil, 0
	}

	best := newTopK(k)
	pending := &frontier{land}
	visited := 0
	for pending.Len() > 0 {
		n := heap.Pop(pending).(*node)
		// subtreeMax bounds everything still pending. A subtree tied with the
		// k-th weight is still expanded: a smaller word there outranks it.
		if best.full() && best.weakest().Weight() > n.subtreeMax {
			break
		}
		visited++
		for _, c := range n.children {
			heap.Push(pending, c)
		}
		if n.terminal {
			best.offer(n.term())
		}
	}
	return best.drain(), visited
}

// TopKMatches returns up to k words starting with prefix, heaviest first.
func (t *Trie) TopKMatches(prefix string, k int) []string {
	terms, _ := t.search(prefix, k)
	return wordsOf(terms)
}

// Complete returns up to limit suggestions starting with prefix, heaviest first.
func (t *Trie) Complete(prefix string, limit int) []Suggestion {
	terms, _ := t.search(prefix, limit)
	return suggestionsOf(terms)
}

// TopMatch follows the single path of nodes carrying the landing node's
// subtreeMax down to the word that owns it. O(depth), not O(subtree).
func (t *Trie) TopMatch(prefix string) string {
	n := t.find(prefix)
	if n == nil || math.IsInf(n.subtreeMax, -1) {
		return ""
	}
	for !(n.terminal && n.weight == n.subtreeMax) {
		next := n.heaviestChild()
		if next == nil {
			log.Errorf("Trie aggregate broken below %q", prefix)
			return ""
		}
		n = next
	}
	return n.word
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.words
}

// Stats returns statistics about the loaded corpus
func (t *Trie) Stats() map[string]int {
	maxWeight := 0
	if t.words > 0 {
		maxWeight = int(t.root.subtreeMax)
	}
	return map[string]int{
		"totalWords": t.words,
		"maxWeight":  maxWeight,
		"nodes":      t.nodes,
	}
}
