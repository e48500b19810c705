/*
Package server implements msgpack IPC for word completion services.

The server reads a stream of msgpack maps from stdin and writes one msgpack map per request to stdout.
There is no framing: every value is self-delimiting, so requests can be pipelined.

# IPC

Each request carries an ID that is echoed back, an action and the action's arguments.
A request without an action is a completion request:

	{"id": "req_001", "p": "ame", "l": 24}

The server responds with suggestions ranked by weight:

	{"id": "req_001", "s": [{"w": "america", "r": 1, "f": 5120}, {"w": "amenity", "r": 2, "f": 88}], "c": 2, "t": 145}

"t" is the lookup time in microseconds. Other actions:

	{"id": "q2", "a": "top", "p": "ame"}    -> {"id": "q2", "w": "america"}
	{"id": "q3", "a": "stats"}              -> {"id": "q3", "s": {"totalWords": 10000, ...}}
	{"id": "q4", "a": "health"}             -> {"id": "q4", "status": "ok"}

Failures are reported as CompletionError with an HTTP-like code and never end the stream.
When a prefix with capitals has no exact matches, the lowercase prefix is tried and
its matches are returned with the capitals put back.

On start the server writes {"status": "ready", "words": N} before reading anything.
*/
package server

// Request actions.
const (
	ActionComplete = "complete"
	ActionTop      = "top"
	ActionStats    = "stats"
	ActionHealth   = "health"
)

// Error codes, borrowed from HTTP.
const (
	CodeBadRequest    = 400
	CodeUnknownAction = 404
	CodeInternal      = 500
)

// Request is the single incoming message shape.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word   string `msgpack:"w"`
	Rank   uint16 `msgpack:"r"`
	Weight uint32 `msgpack:"f"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// TopMatchResponse holds the single heaviest completion; Word is empty when nothing matched.
type TopMatchResponse struct {
	ID   string `msgpack:"id"`
	Word string `msgpack:"w"`
}

// StatsResponse reports corpus statistics.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"s"`
}

// StatusResponse is sent for health checks and once on startup.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
	Words  int    `msgpack:"words,omitempty"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
