// Package api exposes the question-answering system over a JSON HTTP API.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/elee1766/coursechat/src/rag"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	System      *rag.System // Required
	CORSOrigins []string    // Allowed origins for CORS
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.System == nil {
		return nil, errors.New("rag system is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &queryHandler{
		system:   cfg.System,
		validate: validator.New(),
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/query", h.query)
	mux.HandleFunc("GET /api/courses", h.courses)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.deleteSession)

	// Middleware stack, outermost first: Recovery -> Logging -> CORS -> Routes
	var handler http.Handler = mux
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Top-level mux keeps health probes out of the middleware stack.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
