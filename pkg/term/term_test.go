package term

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tm, err := New("bell", 4)
	require.NoError(t, err)
	assert.Equal(t, "bell", tm.Word())
	assert.Equal(t, 4.0, tm.Weight())
	assert.Equal(t, "bell (4)", tm.String())

	_, err = New("", 1)
	assert.ErrorIs(t, err, ErrMissingWord)

	_, err = New("bat", -0.5)
	assert.True(t, errors.Is(err, ErrNegativeWeight))

	_, err = New("bat", math.NaN())
	assert.ErrorIs(t, err, ErrNegativeWeight)

	_, err = New("bat", math.Inf(1))
	assert.ErrorIs(t, err, ErrInfiniteWeight)

	_, err = New("bat", math.Inf(-1))
	assert.ErrorIs(t, err, ErrNegativeWeight)

	tm, err = New("zero", 0)
	require.NoError(t, err)
	assert.Zero(t, tm.Weight())
}

func TestPrefixOrder(t *testing.T) {
	for _, tcase := range []struct {
		Word   string
		Prefix string
		Exp    int
	}{
		{"bell", "b", 0},
		{"bell", "be", 0},
		{"bell", "bell", 0},
		{"bat", "be", -1},
		{"boy", "be", 1},
		{"boy", "boys", -1},
		{"b", "bo", -1},
		{"air", "", 0},
		{"", "", 0},
		{"bellow", "bell", 0},
	} {
		t.Run(tcase.Word+"/"+tcase.Prefix, func(t *testing.T) {
			cmp := PrefixOrder(len(tcase.Prefix))
			got := cmp(Term{word: tcase.Word}, Key(tcase.Prefix))

			assert.Equal(t, tcase.Exp, sign(got))
		})
	}
}

func TestPrefixOrderShorterWordNeverEqual(t *testing.T) {
	cmp := PrefixOrder(4)

	assert.NotZero(t, cmp(Term{word: "boy"}, Key("boys")))
	assert.NotZero(t, cmp(Key("boys"), Term{word: "boy"}))
	assert.NotZero(t, cmp(Term{word: ""}, Key("boys")))
}

func TestOrderings(t *testing.T) {
	terms := []Term{
		{"boy", 1}, {"bell", 4}, {"air", 3}, {"bat", 2},
	}

	lex := slices.Clone(terms)
	slices.SortFunc(lex, LexicalOrder)
	assert.Equal(t, []string{"air", "bat", "bell", "boy"}, words(lex))

	asc := slices.Clone(terms)
	slices.SortFunc(asc, WeightOrder)
	assert.Equal(t, []string{"boy", "bat", "air", "bell"}, words(asc))

	desc := slices.Clone(terms)
	slices.SortFunc(desc, ReverseWeightOrder)
	assert.Equal(t, []string{"bell", "air", "bat", "boy"}, words(desc))
}

func TestRankOrderBreaksTiesByWord(t *testing.T) {
	terms := []Term{{"cab", 2}, {"abc", 2}, {"zed", 5}, {"bcd", 2}}
	slices.SortFunc(terms, RankOrder)

	assert.Equal(t, []string{"zed", "abc", "bcd", "cab"}, words(terms))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func words(terms []Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Word()
	}
	return out
}
