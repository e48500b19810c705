// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordserve/internal/logger"
	"github.com/bastiangx/wordserve/internal/utils"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// topPrefix marks a line asking only for the single heaviest completion.
const topPrefix = "?"

// InputHandler processes user input line by line, printing
// suggestions. Flags control the accepted prefix length, the
// suggestion limit and whether input filtering applies.
type InputHandler struct {
	completer       suggest.Autocompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
	noFilter        bool

	in        io.Reader
	logger    *log.Logger
	wordStyle lipgloss.Style
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.Autocompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
		in:              os.Stdin,
		logger:          logger.NewTo(os.Stderr, ""),
		wordStyle: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
	}
}

// WithIO swaps stdin and stderr for the given reader and writer.
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in = in
	h.logger = logger.NewTo(out, "")
	h.logger.SetReportTimestamp(false)
	return h
}

// Start begins the interface loop.
// It reads a line at a time and passes the trimmed input to handleInput.
// The loop ends cleanly at EOF and returns any other read error.
func (h *InputHandler) Start() error {
	h.logger.Print("WordServe CLI [BETA]")
	h.logger.Print("type a prefix and press Enter, or ?prefix for the top match (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleInput validates one prefix and prints its suggestions.
func (h *InputHandler) handleInput(input string) {
	h.requestCount++

	prefix, topOnly := strings.CutPrefix(input, topPrefix)
	if len(prefix) < h.minPrefixLength {
		h.logger.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		h.logger.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter {
		if !utils.IsValidInput(prefix) {
			h.logger.Infof("Filtered input: '%s'", prefix)
			return
		}
	} else {
		h.logger.Debug("Input filtering disabled")
	}

	start := time.Now()
	if topOnly {
		word := h.completer.TopMatch(prefix)
		h.logger.Debugf("Took [ %v ] for top match of '%s'", time.Since(start), prefix)
		if word == "" {
			h.logger.Warnf("No match for prefix: '%s'", prefix)
			return
		}
		h.logger.Printf("Top match for '%s': %s", prefix, h.wordStyle.Render(word))
		return
	}

	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	h.logger.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.logger.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	h.logger.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		h.logger.Printf("%2d. %-40s (weight: %8s)", i+1, h.wordStyle.Render(s.Word), utils.FormatWeight(s.Weight))
	}
}
