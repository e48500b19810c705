package suggest

import (
	"math"

	"github.com/bastiangx/wordserve/pkg/term"
)

// node is one byte position in the trie. Children are owned by their node;
// parent is a back-reference used only to repair subtreeMax after a weight decrease.
type node struct {
	char     byte
	parent   *node
	children map[byte]*node

	terminal bool
	word     string
	weight   float64

	// subtreeMax is max(weight if terminal, children's subtreeMax),
	// or -Inf when nothing below the node is a word.
	subtreeMax float64
}

func newNode(char byte, parent *node) *node {
	return &node{char: char, parent: parent, subtreeMax: math.Inf(-1)}
}

// child returns the child for c, creating it when create is set.
func (n *node) child(c byte, create bool) (*node, bool) {
	if next, ok := n.children[c]; ok {
		return next, false
	}
	if !create {
		return nil, false
	}
	if n.children == nil {
		n.children = make(map[byte]*node, 1)
	}
	next := newNode(c, n)
	n.children[c] = next
	return next, true
}

// recompute rebuilds subtreeMax from the node's own weight and its children.
func (n *node) recompute() {
	m := math.Inf(-1)
	if n.terminal {
		m = n.weight
	}
	for _, c := range n.children {
		m = math.Max(m, c.subtreeMax)
	}
	n.subtreeMax = m
}

// heaviestChild returns the child carrying this node's subtreeMax.
// Among equal children the smallest byte wins, keeping the descent deterministic.
func (n *node) heaviestChild() *node {
	var best *node
	for c, next := range n.children {
		if next.subtreeMax != n.subtreeMax {
			continue
		}
		if best == nil || c < best.char {
			best = next
		}
	}
	return best
}

func (n *node) term() term.Term {
	t, _ := term.New(n.word, n.weight)
	return t
}

// frontier is a max-heap of nodes keyed by subtreeMax.
type frontier []*node

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].subtreeMax > f[j].subtreeMax }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*node))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
