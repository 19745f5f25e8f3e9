package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/career-compass/internal/pipeline"
)

// Event names on the submission stream
const (
	EventProgress = "progress"
	EventResult   = "result"
	EventComplete = "complete"
	EventError    = "error"
)

// CompleteEvent closes a successful stream.
type CompleteEvent struct {
	SubmissionID string `json:"submission_id,omitempty"`
	Matches      int    `json:"matches"`
	Status       string `json:"status"`
}

// StreamError is the data of an error event.
type StreamError struct {
	Status int `json:"status"`
	ErrorResponse
}

// SSEWriter writes numbered server-sent events. Progress callbacks may run
// on other goroutines, so writes are serialized.
type SSEWriter struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

// NewSSEWriter sets the stream headers. It fails when w cannot flush.
func NewSSEWriter(w http.ResponseWriter, origin string) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Access-Control-Allow-Origin", origin)

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one event with the next sequence id.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteProgress forwards a pipeline step.
func (s *SSEWriter) WriteProgress(e pipeline.ProgressEvent) error {
	return s.WriteEvent(EventProgress, e)
}

// WriteResult sends the submission and the closing complete event.
func (s *SSEWriter) WriteResult(result *pipeline.SubmissionResult) error {
	if err := s.WriteEvent(EventResult, result); err != nil {
		return err
	}
	return s.WriteEvent(EventComplete, CompleteEvent{
		SubmissionID: result.SubmissionID,
		Matches:      len(result.Matches),
		Status:       "completed",
	})
}

// WriteError sends a failure with the status a plain request would get.
func (s *SSEWriter) WriteError(status int, body ErrorResponse) {
	s.WriteEvent(EventError, StreamError{Status: status, ErrorResponse: body}) //nolint:errcheck
}
