package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/henvic/geostore"
	"github.com/prometheus/client_golang/prometheus"
)

// NewServer creates a new API server.
func NewServer(address string, service *geostore.Service, log *slog.Logger) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		address:  address,
		service:  service,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		registry: registry,
		metrics:  newMetrics(registry),
	}
}

// Server for the API.
type Server struct {
	address  string
	service  *geostore.Service
	log      *slog.Logger
	validate *validator.Validate
	registry *prometheus.Registry
	metrics  *metrics
	http     *http.Server
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "POST /geolocation", "create", s.createHandler)
	s.handle(mux, "GET /geolocation", "get", s.getHandler)
	s.handle(mux, "DELETE /geolocation/{id}", "delete", s.deleteHandler)
	s.handle(mux, "GET /health", "health", s.healthHandler)
	s.handle(mux, "GET /ready", "ready", s.readyHandler)
	mux.Handle("GET /metrics", metricsHandler(s.registry))
	return s.accessLog(mux)
}

func (s *Server) handle(mux *http.ServeMux, pattern, name string, h http.HandlerFunc) {
	mux.Handle(pattern, s.metrics.instrument(name, h))
}

// Run starts the HTTP server.
func (s *Server) Run(ctx context.Context) (err error) {
	s.http = &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),

		ReadHeaderTimeout: 5 * time.Second, // mitigate risk of Slowloris Attack
	}
	s.log.Info("HTTP server listening", slog.Any("address", s.address))
	if err := s.http.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown HTTP server.
func (s *Server) Shutdown(ctx context.Context) {
	s.log.Info("shutting down HTTP server gracefully")
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.log.Error("graceful shutdown of HTTP server failed", slog.Any("error", err))
		}
	}
}
