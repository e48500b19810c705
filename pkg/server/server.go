package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordserve/internal/logger"
	"github.com/bastiangx/wordserve/internal/utils"
	"github.com/bastiangx/wordserve/pkg/config"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word completions
type Server struct {
	completer suggest.Autocompleter
	config    config.ServerConfig
	decoder   *msgpack.Decoder
	writer    *bufio.Writer
	logger    *log.Logger

	requestCount int
}

// NewServer creates a completion server reading requests from r and writing responses to w.
func NewServer(completer suggest.Autocompleter, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    bufio.NewWriter(w),
		logger:    logger.New("server"),
	}
}

// Start sends the ready message and serves requests until the input ends.
// A clean EOF returns nil; a broken stream returns the read error.
func (s *Server) Start() error {
	s.logger.Debug("Starting server", "words", s.completer.Len())
	if err := s.send(StatusResponse{Status: "ready", Words: s.completer.Len()}); err != nil {
		return err
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}
		s.requestCount++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "invalid msgpack request", CodeBadRequest); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the action. Only write errors are returned.
func (s *Server) handleRequest(req Request) error {
	switch strings.ToLower(req.Action) {
	case "", ActionComplete:
		return s.handleComplete(req)
	case ActionTop:
		return s.handleTop(req)
	case ActionStats:
		stats := s.completer.Stats()
		stats["requests"] = s.requestCount
		return s.send(StatsResponse{ID: req.ID, Stats: stats})
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	}
	return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), CodeUnknownAction)
}

// checkPrefix returns a client error message, or "" when the prefix is usable.
func (s *Server) checkPrefix(prefix string) string {
	if len(prefix) < s.config.MinPrefix {
		return fmt.Sprintf("prefix must be at least %d characters", s.config.MinPrefix)
	}
	if len(prefix) > s.config.MaxPrefix {
		return fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.MaxPrefix)
	}
	return ""
}

// limitFor applies default_limit to a missing limit and caps it at max_limit.
func (s *Server) limitFor(requested int) (int, error) {
	switch {
	case requested < 0:
		return 0, fmt.Errorf("limit must not be negative, got %d", requested)
	case requested == 0:
		return s.config.DefaultLimit, nil
	}
	return min(requested, s.config.MaxLimit), nil
}

func (s *Server) handleComplete(req Request) error {
	if msg := s.checkPrefix(req.Prefix); msg != "" {
		s.logger.Debug("Rejected prefix", "id", req.ID, "reason", msg)
		return s.sendError(req.ID, msg, CodeBadRequest)
	}
	limit, err := s.limitFor(req.Limit)
	if err != nil {
		return s.sendError(req.ID, err.Error(), CodeBadRequest)
	}

	start := time.Now()
	suggestions := s.complete(req.Prefix, limit)
	elapsed := time.Since(start)
	s.logger.Debugf("Took [ %v ] for prefix '%s', %d results", elapsed, req.Prefix, len(suggestions))

	ranks := utils.CreateRankList(len(suggestions))
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{
			Word:   sg.Word,
			Rank:   ranks[i],
			Weight: utils.ClampWeight(sg.Weight),
		}
	}
	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// complete queries the exact prefix and falls back to its lowercase form.
func (s *Server) complete(prefix string, limit int) []suggest.Suggestion {
	suggestions := s.completer.Complete(prefix, limit)
	if len(suggestions) > 0 {
		return suggestions
	}
	lower, caps := utils.ProcessCapitals(prefix)
	if caps.Empty() {
		return suggestions
	}
	suggestions = s.completer.Complete(lower, limit)
	for i := range suggestions {
		suggestions[i].Word = utils.ApplyCapitals(suggestions[i].Word, caps)
	}
	return suggestions
}

func (s *Server) handleTop(req Request) error {
	if msg := s.checkPrefix(req.Prefix); msg != "" {
		return s.sendError(req.ID, msg, CodeBadRequest)
	}
	word := s.completer.TopMatch(req.Prefix)
	if word == "" {
		if lower, caps := utils.ProcessCapitals(req.Prefix); !caps.Empty() {
			word = utils.ApplyCapitals(s.completer.TopMatch(lower), caps)
		}
	}
	return s.send(TopMatchResponse{ID: req.ID, Word: word})
}

// send encodes one response and flushes it so the client sees it immediately.
// A response that cannot be encoded is replaced by a CodeInternal error.
func (s *Server) send(response any) error {
	data, err := msgpack.Marshal(response)
	if err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		if data, err = msgpack.Marshal(CompletionError{Error: "internal server error", Code: CodeInternal}); err != nil {
			return err
		}
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
