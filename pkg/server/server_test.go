package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/wordserve/pkg/config"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newCompleter(t *testing.T) suggest.Autocompleter {
	t.Helper()
	c, err := suggest.NewTrie(
		[]string{"air", "bat", "bell", "boy", "new", "newton", "news"},
		[]float64{3, 2, 4, 1, 7, 5, 6},
	)
	require.NoError(t, err)
	return c
}

// roundTrip feeds every request to a fresh server and returns a decoder over
// its output, positioned after the ready message.
func roundTrip(t *testing.T, requests ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}

	srv := NewServer(newCompleter(t), config.DefaultConfig().Server, &in, &out)
	require.NoError(t, srv.Start())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
	assert.Equal(t, 7, ready.Words)
	return dec
}

func TestComplete(t *testing.T) {
	dec := roundTrip(t, Request{ID: "1", Prefix: "b", Limit: 2})

	var resp CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []CompletionSuggestion{
		{Word: "bell", Rank: 1, Weight: 4},
		{Word: "bat", Rank: 2, Weight: 2},
	}, resp.Suggestions)
	assert.GreaterOrEqual(t, resp.TimeTaken, int64(0))
}

func TestCompleteLimits(t *testing.T) {
	dec := roundTrip(t,
		Request{ID: "default", Prefix: "n"},
		Request{ID: "clamped", Prefix: "n", Limit: 1000},
		Request{ID: "negative", Prefix: "n", Limit: -1},
	)

	var resp CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 3, resp.Count)

	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "clamped", resp.ID)
	assert.Equal(t, 3, resp.Count)

	var cerr CompletionError
	require.NoError(t, dec.Decode(&cerr))
	assert.Equal(t, "negative", cerr.ID)
	assert.Equal(t, CodeBadRequest, cerr.Code)
}

func TestCompleteNoMatchIsEmpty(t *testing.T) {
	dec := roundTrip(t, Request{ID: "z", Prefix: "zz"})

	var resp CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Zero(t, resp.Count)
	assert.Empty(t, resp.Suggestions)
}

func TestPrefixLengthChecks(t *testing.T) {
	long := string(bytes.Repeat([]byte("a"), 61))
	dec := roundTrip(t,
		Request{ID: "short", Prefix: ""},
		Request{ID: "long", Prefix: long},
	)

	for _, id := range []string{"short", "long"} {
		var cerr CompletionError
		require.NoError(t, dec.Decode(&cerr))
		assert.Equal(t, id, cerr.ID)
		assert.Equal(t, CodeBadRequest, cerr.Code)
		assert.NotEmpty(t, cerr.Error)
	}
}

func TestCapitalFallback(t *testing.T) {
	dec := roundTrip(t,
		Request{ID: "c", Prefix: "New", Limit: 2},
		Request{ID: "t", Action: ActionTop, Prefix: "NEWT"},
	)

	var resp CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "New", resp.Suggestions[0].Word)
	assert.Equal(t, "News", resp.Suggestions[1].Word)

	var top TopMatchResponse
	require.NoError(t, dec.Decode(&top))
	assert.Equal(t, "NEWTon", top.Word)
}

func TestOtherActions(t *testing.T) {
	dec := roundTrip(t,
		Request{ID: "t", Action: ActionTop, Prefix: "a"},
		Request{ID: "none", Action: ActionTop, Prefix: "q"},
		Request{ID: "s", Action: ActionStats},
		Request{ID: "h", Action: "HEALTH"},
		Request{ID: "x", Action: "reload"},
	)

	var top TopMatchResponse
	require.NoError(t, dec.Decode(&top))
	assert.Equal(t, "air", top.Word)

	require.NoError(t, dec.Decode(&top))
	assert.Equal(t, "none", top.ID)
	assert.Empty(t, top.Word)

	var stats StatsResponse
	require.NoError(t, dec.Decode(&stats))
	assert.Equal(t, 7, stats.Stats["totalWords"])
	assert.Equal(t, 7, stats.Stats["maxWeight"])
	assert.Equal(t, 3, stats.Stats["requests"])

	var health StatusResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, "h", health.ID)
	assert.Equal(t, "ok", health.Status)

	var cerr CompletionError
	require.NoError(t, dec.Decode(&cerr))
	assert.Equal(t, CodeUnknownAction, cerr.Code)
}

func TestMalformedRequestKeepsServing(t *testing.T) {
	dec := roundTrip(t, 42, Request{ID: "after", Prefix: "ai"})

	var cerr CompletionError
	require.NoError(t, dec.Decode(&cerr))
	assert.Equal(t, CodeBadRequest, cerr.Code)

	var resp CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "after", resp.ID)
	assert.Equal(t, 1, resp.Count)
}

func TestUnencodableResponseBecomesInternalError(t *testing.T) {
	var out bytes.Buffer
	srv := NewServer(newCompleter(t), config.DefaultConfig().Server, bytes.NewReader(nil), &out)

	require.NoError(t, srv.send(make(chan int)))
	require.NoError(t, srv.send(StatusResponse{ID: "next", Status: "ok"}))

	dec := msgpack.NewDecoder(&out)
	var cerr CompletionError
	require.NoError(t, dec.Decode(&cerr))
	assert.Equal(t, CodeInternal, cerr.Code)
	assert.NotEmpty(t, cerr.Error)

	var next StatusResponse
	require.NoError(t, dec.Decode(&next))
	assert.Equal(t, "next", next.ID)
}
