package suggest

import (
	"container/heap"

	"github.com/bastiangx/wordserve/pkg/term"
)

// topK retains the k best-ranked terms offered so far.
// The root of the heap is the weakest retained term.
type topK struct {
	terms []term.Term
	k     int
}

func newTopK(k int) *topK {
	return &topK{terms: make([]term.Term, 0, max(0, min(k, 64))), k: k}
}

func (h *topK) Len() int           { return len(h.terms) }
func (h *topK) Less(i, j int) bool { return term.RankOrder(h.terms[i], h.terms[j]) > 0 }
func (h *topK) Swap(i, j int)      { h.terms[i], h.terms[j] = h.terms[j], h.terms[i] }

func (h *topK) Push(x any) {
	h.terms = append(h.terms, x.(term.Term))
}

func (h *topK) Pop() any {
	n := len(h.terms)
	t := h.terms[n-1]
	h.terms = h.terms[:n-1]
	return t
}

func (h *topK) full() bool {
	return len(h.terms) >= h.k
}

// weakest must only be called on a non-empty heap.
func (h *topK) weakest() term.Term {
	return h.terms[0]
}

// offer inserts t if there is room, or replaces the weakest term if t outranks it.
func (h *topK) offer(t term.Term) {
	if h.k <= 0 {
		return
	}
	if !h.full() {
		heap.Push(h, t)
		return
	}
	if term.RankOrder(t, h.terms[0]) < 0 {
		h.terms[0] = t
		heap.Fix(h, 0)
	}
}

// drain empties the heap, best-ranked first.
func (h *topK) drain() []term.Term {
	out := make([]term.Term, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(term.Term)
	}
	return out
}
