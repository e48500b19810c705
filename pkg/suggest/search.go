package suggest

import "github.com/bastiangx/wordserve/pkg/term"

// NotFound is returned by FirstIndexOf and LastIndexOf when nothing matches.
const NotFound = -1

// FirstIndexOf returns the lowest index i with cmp(a[i], key) == 0, or NotFound.
// a must be sorted consistently with cmp. The search keeps the open interval
// (low, high) with a[low] < key <= a[high] and calls cmp once per halving;
// the outcome recorded for high doubles as the final check, so at most
// 1 + ceil(log2 len(a)) comparisons are made.
func FirstIndexOf(a []term.Term, key term.Term, cmp term.Comparator) int {
	low, high := -1, len(a)
	highEqual := false
	for high-low > 1 {
		mid := low + (high-low)/2
		c := cmp(a[mid], key)
		if c < 0 {
			low = mid
		} else {
			high = mid
			highEqual = c == 0
		}
	}
	if high < len(a) && highEqual {
		return high
	}
	return NotFound
}

// LastIndexOf returns the highest index i with cmp(a[i], key) == 0, or NotFound.
// It mirrors FirstIndexOf with the interval a[low] <= key < a[high].
func LastIndexOf(a []term.Term, key term.Term, cmp term.Comparator) int {
	low, high := -1, len(a)
	lowEqual := false
	for high-low > 1 {
		mid := low + (high-low)/2
		c := cmp(a[mid], key)
		if c > 0 {
			high = mid
		} else {
			low = mid
			lowEqual = c == 0
		}
	}
	if low >= 0 && lowEqual {
		return low
	}
	return NotFound
}
