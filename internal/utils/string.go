package utils

import (
	"strings"
)

// Capitals records where the ASCII capitals of a string were.
type Capitals struct {
	positions []int
	chars     []byte
}

// Empty reports whether no capitals were found.
func (c Capitals) Empty() bool {
	return len(c.positions) == 0
}

// ProcessCapitals returns the lowercase form of s and the capitals it lost.
func ProcessCapitals(s string) (string, Capitals) {
	var info Capitals
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			info.positions = append(info.positions, i)
			info.chars = append(info.chars, c)
		}
	}
	if info.Empty() {
		return s, info
	}
	return strings.ToLower(s), info
}

// ApplyCapitals puts recorded capitals back onto word.
// Positions beyond the end of word are skipped.
func ApplyCapitals(word string, info Capitals) string {
	if info.Empty() {
		return word
	}
	b := []byte(word)
	for i, pos := range info.positions {
		if pos < len(b) && b[pos] == info.chars[i]+('a'-'A') {
			b[pos] = info.chars[i]
		}
	}
	return string(b)
}
