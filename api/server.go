// Package api provides the HTTP REST API server for the well-test engine.
//
// It exposes endpoints for single and batch rate calculations and for
// listing the registered PVT correlation methods.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ramware/welltest/internal/config"
	"github.com/ramware/welltest/internal/engine"
	"github.com/ramware/welltest/internal/pvt"
	"github.com/ramware/welltest/pkg/models"
)

// maxBatchSize caps one batch request; larger jobs should be split by
// the caller.
const maxBatchSize = 500

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	eng     *engine.Engine
	version string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, version string) *Server {
	srv := &Server{
		cfg:     cfg,
		eng:     engine.New(cfg.Selection(), cfg.Engine.BatchWorkers),
		version: version,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if lg := s.requestLogger(); lg != nil {
		r.Use(lg)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Correlation method catalog
		r.Get("/methods", s.handleMethods)

		// Calculations
		r.Post("/calculate", s.handleCalculate)
		r.Post("/calculate/batch", s.handleCalculateBatch)
	})

	return r
}

// requestLogger builds the per-request logging middleware from the
// logging config. Levels above info silence request logging entirely;
// the json format emits one object per request instead of chi's
// colored text line.
func (s *Server) requestLogger() func(http.Handler) http.Handler {
	switch strings.ToLower(s.cfg.Logging.Level) {
	case "warn", "error":
		return nil
	}
	if strings.EqualFold(s.cfg.Logging.Format, "json") {
		return middleware.RequestLogger(&jsonLogFormatter{logger: log.New(os.Stdout, "", 0)})
	}
	return middleware.Logger
}

// jsonLogFormatter is a chi LogFormatter that writes one JSON object
// per completed request.
type jsonLogFormatter struct {
	logger *log.Logger
}

func (f *jsonLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &jsonLogEntry{formatter: f, method: r.Method, path: r.URL.Path, requestID: middleware.GetReqID(r.Context())}
}

type jsonLogEntry struct {
	formatter *jsonLogFormatter
	method    string
	path      string
	requestID string
}

func (e *jsonLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	line, _ := json.Marshal(map[string]interface{}{
		"request_id": e.requestID,
		"method":     e.method,
		"path":       e.path,
		"status":     status,
		"bytes":      bytes,
		"elapsed_ms": float64(elapsed.Microseconds()) / 1000,
	})
	e.formatter.logger.Println(string(line))
}

func (e *jsonLogEntry) Panic(v interface{}, stack []byte) {
	line, _ := json.Marshal(map[string]interface{}{
		"request_id": e.requestID,
		"method":     e.method,
		"path":       e.path,
		"panic":      fmt.Sprint(v),
	})
	e.formatter.logger.Println(string(line))
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CalculateRequest is the body for POST /api/v1/calculate.
type CalculateRequest struct {
	Reading   models.TestReading          `json:"reading"`
	Selection models.CorrelationSelection `json:"selection,omitempty"`
}

// BatchRequest is the body for POST /api/v1/calculate/batch.
type BatchRequest struct {
	Readings  []models.TestReading        `json:"readings"`
	Selection models.CorrelationSelection `json:"selection,omitempty"`
}

// MethodEntry describes one registered correlation method.
type MethodEntry struct {
	Property    models.Property `json:"property"`
	Method      models.Method   `json:"method"`
	Description string          `json:"description"`
	Default     bool            `json:"default"`
}

// ValidationDetail carries the per-field violations of a rejected reading.
type ValidationDetail struct {
	ReadingIndex *int                    `json:"reading_index,omitempty"` // set for batch requests
	Violations   []models.FieldViolation `json:"violations"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": s.version,
		},
	})
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	var entries []MethodEntry

	prop := models.Property(r.URL.Query().Get("property"))
	for _, m := range pvt.Methods() {
		if prop != "" && m.Property != prop {
			continue
		}
		entries = append(entries, MethodEntry{
			Property:    m.Property,
			Method:      m.Method,
			Description: m.Description,
			Default:     m.Default,
		})
	}
	if prop != "" && entries == nil {
		writeError(w, http.StatusNotFound, "unknown property: "+string(prop))
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    entries,
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.eng.Run(req.Reading, req.Selection)
	if err != nil {
		writeEngineError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
	})
}

func (s *Server) handleCalculateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Readings) == 0 {
		writeError(w, http.StatusBadRequest, "readings are required")
		return
	}
	if len(req.Readings) > maxBatchSize {
		writeError(w, http.StatusBadRequest, "batch too large")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	results, err := s.eng.RunBatch(ctx, req.Readings, req.Selection)
	if err != nil {
		// Re-run sequentially to locate the failing reading for the
		// error detail. Calculations are cheap relative to a batch
		// round trip.
		for i, reading := range req.Readings {
			if _, runErr := s.eng.Run(reading, req.Selection); runErr != nil {
				idx := i
				writeEngineError(w, runErr, &idx)
				return
			}
		}
		writeEngineError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    results,
	})
}

// ============================================================
// Helpers
// ============================================================

// writeEngineError maps the engine's error taxonomy onto HTTP statuses:
// a rejected reading or a correlation failure is the client's data
// (422), anything else is the server's fault (500).
func writeEngineError(w http.ResponseWriter, err error, readingIndex *int) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error:   verr.Error(),
			Data: ValidationDetail{
				ReadingIndex: readingIndex,
				Violations:   verr.Violations,
			},
		})
		return
	}

	var derr *models.CorrelationDomainError
	var rerr *models.RateComputationError
	if errors.As(err, &derr) || errors.As(err, &rerr) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
