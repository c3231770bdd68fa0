package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/nyc-restroom-finder/pkg/middleware"
	"github.com/FACorreiaa/nyc-restroom-finder/pkg/observability"
)

// SetupRouter configures all routes and returns the HTTP handler.
func SetupRouter(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	registerAPIRoutes(mux, deps)
	registerUtilityRoutes(mux, deps)

	var handler http.Handler = mux
	handler = observability.NewMetricsMiddleware()(handler)
	handler = middleware.NewLoggingMiddleware(deps.Logger)(handler)
	handler = middleware.NewRecoveryMiddleware(deps.Logger)(handler)

	if deps.Config.Server.RateLimitPerSecond > 0 && deps.Config.Server.RateLimitBurst > 0 {
		limiter := rate.NewLimiter(
			rate.Limit(float64(deps.Config.Server.RateLimitPerSecond)),
			deps.Config.Server.RateLimitBurst,
		)
		handler = middleware.NewRateLimitMiddleware(limiter)(handler)
	}

	handler = middleware.NewRequestIDMiddleware("X-Request-ID")(handler)

	// Enable CORS for browser clients (the map frontend)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept-Encoding", "Content-Type", "X-Request-ID"},
	})

	return corsHandler.Handler(handler)
}

// registerAPIRoutes registers the map state and activation routes.
func registerAPIRoutes(mux *http.ServeMux, deps *Dependencies) {
	h := deps.APIHandler

	mux.HandleFunc("GET /v1/locations", h.GetLocations)
	mux.HandleFunc("GET /v1/markers", h.GetMarkers)
	mux.HandleFunc("GET /v1/markers/visible", h.GetVisibleMarkers)
	mux.HandleFunc("GET /v1/filters", h.GetFilters)
	mux.HandleFunc("POST /v1/filters/apply", h.ApplyFilter)
	mux.HandleFunc("POST /v1/search", h.Search)
	mux.HandleFunc("POST /v1/markers/{id}/activate", h.ActivateMarker)
	mux.HandleFunc("GET /v1/panel", h.GetPanel)

	deps.Logger.Info("API routes configured")
}

// registerUtilityRoutes registers health check, metrics, and other utility routes
func registerUtilityRoutes(mux *http.ServeMux, deps *Dependencies) {
	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.DB != nil {
			if err := deps.DB.Health(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("database unhealthy"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	deps.Logger.Info("registered health check", "path", "/health")

	// Readiness waits for the map state behind the fixed load guard.
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		guard := time.NewTimer(deps.Config.Server.MapLoadTimeout)
		defer guard.Stop()
		select {
		case <-deps.MapReady():
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
		case <-guard.C:
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("map load timed out"))
		}
	})
	deps.Logger.Info("registered readiness check", "path", "/ready")

	// Metrics endpoint (Prometheus)
	if deps.Config.Observability.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		deps.Logger.Info("registered metrics endpoint", "path", "/metrics")
	}
}
