package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Scouting stream stages, in the order they are emitted.
const (
	StageReceived  = "received"
	StageExtracted = "extracted"
	StageScoring   = "scoring"
)

// ProgressEvent is the payload of a "progress" event
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer. origin is echoed as the CORS allow-origin.
func NewSSEWriter(w http.ResponseWriter, origin string) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteProgress sends a progress event
func (s *SSEWriter) WriteProgress(stage, message string) error {
	return s.WriteEvent("progress", ProgressEvent{Stage: stage, Message: message})
}

// WriteError sends an error event with the status the same failure would get as a plain response
func (s *SSEWriter) WriteError(err error) {
	s.WriteEvent("error", map[string]any{ //nolint:errcheck
		"error":  err.Error(),
		"status": HTTPStatus(err),
	})
}

// WriteComplete sends the final event carrying the scouted candidate
func (s *SSEWriter) WriteComplete(candidate any) {
	s.WriteEvent("complete", candidate) //nolint:errcheck
}
