// Package api provides the HTTP server for the heliowatch telemetry
// pipeline: upload ingestion, KPI summaries, advisories, and proxying to
// the SOC prediction endpoint.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"heliowatch/internal/advisor"
	"heliowatch/internal/kpi"
	"heliowatch/internal/predict"
	"heliowatch/internal/session"
)

// Config holds server configuration.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string

	// DefaultLanguage is the advisory locale used when a request does
	// not pick one.
	DefaultLanguage advisor.Language
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		MaxRequestSize:  10 * 1024 * 1024,
		CORSOrigins:     []string{"*"},
		DefaultLanguage: advisor.LangEnglish,
	}
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	sessions   session.Store
	aggregator kpi.Aggregator
	predictor  *predict.Client
	config     *Config
	log        zerolog.Logger
}

// NewServer wires the pipeline behind the HTTP surface. predictor may be
// nil when no prediction endpoint is configured; the predict routes then
// answer 503.
func NewServer(sessions session.Store, aggregator kpi.Aggregator, predictor *predict.Client, config *Config, log zerolog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		sessions:   sessions,
		aggregator: aggregator,
		predictor:  predictor,
		config:     config,
		log:        log,
	}
}

// Router builds the route table. Exposed separately so tests can drive
// the handlers without a listening socket.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	r.Path("/metrics").Handler(promhttp.Handler())

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)
	v1.HandleFunc("/sessions/{id}/kpis", s.handleSessionKpis).Methods(http.MethodGet)
	v1.HandleFunc("/recommend", s.handleRecommend).Methods(http.MethodPost)
	v1.HandleFunc("/advisory", s.handleAdvisory).Methods(http.MethodGet)
	v1.HandleFunc("/predict", s.handlePredict).Methods(http.MethodPost)
	v1.HandleFunc("/predict_csv", s.handlePredictCsv).Methods(http.MethodPost)

	return s.corsMiddleware(s.loggingMiddleware(r))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.log.Info().Int("port", s.config.Port).Msg("heliowatch API server starting")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts the server and drains it on SIGINT or
// SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.log.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.sessions.Ping(ctx); err != nil {
		s.jsonError(w, http.StatusServiceUnavailable, "session store not ready")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) language(raw string) advisor.Language {
	if raw == "" {
		return s.config.DefaultLanguage
	}
	return advisor.Language(raw)
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
