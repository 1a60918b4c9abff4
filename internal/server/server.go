// Package server exposes the shipping service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cast"
	"github.com/tournevent/aramexbridge/internal/service"
	"github.com/tournevent/aramexbridge/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	maxBodyBytes    = 1 << 20
	requestIDHeader = "X-Request-ID"
)

// Server is the HTTP server for the shipping service.
type Server struct {
	port    int
	service *service.Service
	logger  *otelzap.Logger
	metrics http.Handler
}

// Config holds server configuration.
type Config struct {
	Port int

	// MetricsHandler serves /metrics. Defaults to the global Prometheus registry.
	MetricsHandler http.Handler
}

// New creates a new server instance.
func New(cfg Config, svc *service.Service, logger *otelzap.Logger) *Server {
	metrics := cfg.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	return &Server{
		port:    cfg.Port,
		service: svc,
		logger:  logger,
		metrics: metrics,
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("GET /metrics", s.metrics)

	mux.HandleFunc("POST /v1/rates", s.handleQuote)
	mux.HandleFunc("POST /v1/shipments", s.handleCreate)
	mux.HandleFunc("GET /v1/shipments", s.handleHistory)
	mux.HandleFunc("POST /v1/shipments/{id}/label", s.handleLabel)
	mux.HandleFunc("GET /v1/shipments/{id}/tracking", s.handleTrack)
	mux.HandleFunc("GET /v1/configuration", s.handleConfiguration)

	return s.withRequestID(mux)
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		s.logger.Ctx(r.Context()).Debug("HTTP request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	res := s.service.QuoteJSON(r.Context(), body)
	s.writeResult(w, res.Err, res)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	res := s.service.CreateJSON(r.Context(), body)
	s.writeResult(w, res.Err, res)
}

func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	res := s.service.Label(r.Context(), r.PathValue("id"))
	s.writeResult(w, res.Err, res)
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	res := s.service.Track(r.Context(), r.PathValue("id"))
	s.writeResult(w, res.Err, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 0 {
			s.writeJSON(w, http.StatusBadRequest, service.Result[any]{Message: "limit must be a non-negative number"})
			return
		}
		limit = n
	}
	res := s.service.History(r.Context(), limit)
	s.writeResult(w, res.Err, res)
}

func (s *Server) handleConfiguration(w http.ResponseWriter, r *http.Request) {
	res := s.service.Configuration(r.Context())
	s.writeResult(w, res.Err, res)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, service.Result[any]{Message: "Failed to read request body"})
		return nil, false
	}
	return body, true
}

// writeResult answers handled outcomes with 200 and input problems with 400.
func (s *Server) writeResult(w http.ResponseWriter, err error, res any) {
	status := http.StatusOK
	if errors.Is(err, shipper.ErrInvalidInput) || errors.Is(err, shipper.ErrValidation) {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, res)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
