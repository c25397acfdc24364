// Package httpapi exposes the forecast query endpoint plus the operational
// health, readiness, and metrics routes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
	"github.com/couchcryptid/port-disruption-forecaster/internal/forecast"
	"github.com/couchcryptid/port-disruption-forecaster/internal/observability"
)

// apiKeyHeader carries the out-of-band credential for the forecast endpoint.
const apiKeyHeader = "X-API-Key"

// Forecaster computes batch forecasts.
type Forecaster interface {
	Forecast(ctx context.Context, req domain.ForecastRequest) domain.ForecastResponse
}

// Pinger reports store reachability for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server hosts the forecast API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and wraps it in an http.Server.
func NewServer(addr, apiKey string, forecaster Forecaster, store Pinger, logger *slog.Logger, metrics *observability.Metrics) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(15 * time.Second))

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	router.Get("/readyz", handleReady(store))
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1/port-disruption", func(r chi.Router) {
		r.Use(requireAPIKey(apiKey, metrics))
		r.Post("/forecast", handleForecast(forecaster, metrics))
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// requireAPIKey rejects requests whose credential is absent or mismatched
// before any forecast work happens.
func requireAPIKey(apiKey string, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || r.Header.Get(apiKeyHeader) != apiKey {
				metrics.ForecastRequests.WithLabelValues("unauthorized").Inc()
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid API key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleForecast(forecaster Forecaster, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var req domain.ForecastRequest
		if err := decodeJSON(r, &req); err != nil {
			metrics.ForecastRequests.WithLabelValues("bad_request").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if len(req.Ports) == 0 {
			metrics.ForecastRequests.WithLabelValues("bad_request").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ports is required"})
			return
		}
		if req.HorizonDays <= 0 {
			req.HorizonDays = forecast.DefaultHorizonDays
		}

		resp := forecaster.Forecast(r.Context(), req)

		metrics.ForecastRequests.WithLabelValues("ok").Inc()
		metrics.PortsScored.Add(float64(len(resp.Forecasts)))
		metrics.ForecastDuration.Observe(time.Since(start).Seconds())
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleReady(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
