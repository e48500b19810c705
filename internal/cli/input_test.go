package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, noFilter bool, lines ...string) string {
	t.Helper()
	completer, err := suggest.NewBinarySearch(
		[]string{"air", "bat", "bell", "boy", "b3ll"},
		[]float64{3, 2, 4000, 1, 9},
	)
	require.NoError(t, err)

	var out bytes.Buffer
	h := NewInputHandler(completer, 1, 5, 3, noFilter).
		WithIO(strings.NewReader(strings.Join(lines, "\n")), &out)
	require.NoError(t, h.Start())
	assert.Equal(t, len(lines), h.requestCount)
	return out.String()
}

func TestCompleteLine(t *testing.T) {
	out := run(t, false, "b")

	assert.Contains(t, out, "Found 3 suggestions for prefix 'b'")
	assert.Contains(t, out, "b3ll")
	assert.Contains(t, out, "bell")
	assert.Contains(t, out, "4,000")
	assert.NotContains(t, out, "boy")
	assert.Less(t, strings.Index(out, "b3ll"), strings.Index(out, "bat"))
}

func TestTopMatchLine(t *testing.T) {
	out := run(t, false, "?bo", "?zz")

	assert.Contains(t, out, "Top match for 'bo': ")
	assert.Contains(t, out, "boy")
	assert.Contains(t, out, "No match for prefix: 'zz'")
}

func TestRejectedInput(t *testing.T) {
	out := run(t, false, "toolong", "b$")

	assert.Contains(t, out, "Prefix too long: toolong")
	assert.Contains(t, out, "Filtered input: 'b$'")
	assert.NotContains(t, out, "Found")
}

func TestNoFilter(t *testing.T) {
	out := run(t, true, "b3")

	assert.Contains(t, out, "Found 1 suggestions for prefix 'b3'")
}
