package suggest

import (
	"math"

	"github.com/bastiangx/wordserve/pkg/term"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Patricia stores the corpus in a go-patricia tree and visits the full prefix
// subtree on every query. It has no pruning, which makes it the reference the
// other backends are checked against.
type Patricia struct {
	trie      *patricia.Trie
	words     int
	maxWeight float64
}

// NewPatricia inserts the corpus in order. A repeated word takes its latest weight.
func NewPatricia(words []string, weights []float64) (*Patricia, error) {
	terms, err := buildTerms(words, weights)
	if err != nil {
		return nil, err
	}

	p := &Patricia{trie: patricia.NewTrie()}
	for _, t := range terms {
		key := patricia.Prefix(t.Word())
		if p.trie.Insert(key, t) {
			p.words++
		} else {
			p.trie.Set(key, t)
		}
		p.maxWeight = math.Max(p.maxWeight, t.Weight())
	}
	log.Debugf("Built patricia trie: %d words", p.words)
	return p, nil
}

func (p *Patricia) topK(prefix string, k int) []term.Term {
	if k <= 0 {
		return nil
	}

	// VisitSubtree panics on a nil prefix; the empty prefix must stay non-nil.
	key := patricia.Prefix(prefix)
	if key == nil {
		key = patricia.Prefix{}
	}

	best := newTopK(k)
	err := p.trie.VisitSubtree(key, func(word patricia.Prefix, item patricia.Item) error {
		t, ok := item.(term.Term)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, word)
			return nil
		}
		best.offer(t)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}
	return best.drain()
}

// TopKMatches returns up to k words starting with prefix, heaviest first.
func (p *Patricia) TopKMatches(prefix string, k int) []string {
	return wordsOf(p.topK(prefix, k))
}

// Complete returns up to limit suggestions starting with prefix, heaviest first.
func (p *Patricia) Complete(prefix string, limit int) []Suggestion {
	return suggestionsOf(p.topK(prefix, limit))
}

// TopMatch returns the heaviest word starting with prefix, or "".
func (p *Patricia) TopMatch(prefix string) string {
	if best := p.topK(prefix, 1); len(best) > 0 {
		return best[0].Word()
	}
	return ""
}

// Len returns the number of distinct words.
func (p *Patricia) Len() int {
	return p.words
}

// Stats returns statistics about the loaded corpus
func (p *Patricia) Stats() map[string]int {
	return map[string]int{
		"totalWords": p.words,
		"maxWeight":  int(p.maxWeight),
	}
}
