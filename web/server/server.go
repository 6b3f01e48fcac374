package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits
const (
	maxImageDim   = 2000
	maxSubsamples = 16
	maxBounces    = 50
)

// Config contains configuration for the render service
type Config struct {
	Address    string           // Listen address, e.g. ":8080"
	ScenesDir  string           // Directory scanned for scene documents
	NumWorkers int              // Render workers per request (0 = use CPU count)
	Publisher  output.Publisher // Optional destination for finished renders
	Logger     core.Logger
}

// Server handles web requests for the raytracer
type Server struct {
	config Config
	logger core.Logger
}

// NewServer creates a new web server
func NewServer(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}
	return &Server{config: config, logger: logger}
}

// Handler returns the HTTP routes of the service
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /scenes", s.handleScenes)
	mux.HandleFunc("POST /render", s.handleRenderDocument)
	mux.HandleFunc("GET /render/{name}", s.handleRenderBuiltin)
	mux.HandleFunc("GET /inspect/{name}", s.handleInspect)
	return mux
}

// Start starts the web server and blocks until it fails
func (s *Server) Start() error {
	s.logger.Printf("Starting raytracer web server on %s\n", s.config.Address)
	if s.config.Publisher != nil {
		s.logger.Printf("Finished renders will be published\n")
	}
	return http.ListenAndServe(s.config.Address, s.Handler())
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and the documents in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
