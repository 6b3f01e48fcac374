package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/uuid"
)

// RequestLogger implements core.Logger by tagging every message with the ID
// of the request it belongs to
type RequestLogger struct {
	requestID string
	base      core.Logger
}

// NewRequestLogger creates a logger for a single request
func NewRequestLogger(requestID string, base core.Logger) *RequestLogger {
	return &RequestLogger{
		requestID: requestID,
		base:      base,
	}
}

// Printf implements core.Logger interface
func (rl *RequestLogger) Printf(format string, args ...interface{}) {
	rl.base.Printf("[%s] %s", rl.requestID, fmt.Sprintf(format, args...))
}

// RequestID returns the ID the logger tags messages with
func (rl *RequestLogger) RequestID() string {
	return rl.requestID
}

// requestLogger assigns a new request ID and echoes it in the response headers
func (s *Server) requestLogger(w http.ResponseWriter) *RequestLogger {
	id := uuid.NewString()
	w.Header().Set("X-Request-ID", id)
	return NewRequestLogger(id, s.logger)
}
