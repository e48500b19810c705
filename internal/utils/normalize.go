package utils

import (
	"math"
	"strconv"
)

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and increments for subsequent items.
// Useful for ranking items that are already sorted.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		ranks[i] = uint16(min(i+1, math.MaxUint16))
	}
	return ranks
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := strconv.Itoa(n)
	if n < 1000 {
		return str
	}
	out := make([]byte, 0, len(str)+len(str)/3)
	for i := 0; i < len(str); i++ {
		if i > 0 && (len(str)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, str[i])
	}
	return string(out)
}

// FormatWeight prints whole weights with separators and keeps fractions short.
func FormatWeight(w float64) string {
	if w == math.Trunc(w) && math.Abs(w) < math.MaxInt64/2 {
		return FormatWithCommas(int(w))
	}
	return strconv.FormatFloat(w, 'g', 6, 64)
}

// ClampWeight converts a weight for the wire: negatives become 0 and values
// beyond uint32 saturate.
func ClampWeight(w float64) uint32 {
	switch {
	case w <= 0 || math.IsNaN(w):
		return 0
	case w >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(w)
}
