package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bundleguard/bundleguard/internal/api/handlers"
	"github.com/bundleguard/bundleguard/internal/api/middleware"
	"github.com/bundleguard/bundleguard/internal/config"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/metrics"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Alert  *handlers.AlertHandler
	Usage  *handlers.UsageHandler
	Device *handlers.DeviceHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Health checks and metrics
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	// Alerts
	r.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/", h.Alert.List)
		r.Get("/summary", h.Alert.GetSummary)
		r.Get("/spikes", h.Alert.Spikes)
		r.Post("/analyze", h.Alert.Analyze)
		r.Get("/{id}", h.Alert.Get)
		r.Delete("/{id}", h.Alert.Delete)
	})

	// Usage
	r.Route("/api/v1/usage", func(r chi.Router) {
		r.Post("/", h.Usage.IngestBatch)
		r.Get("/summary", h.Usage.Summary)
	})

	// Devices
	r.Route("/api/v1/devices", func(r chi.Router) {
		r.Get("/", h.Device.List)
		r.Post("/", h.Device.Register)
		r.Get("/{id}", h.Device.Get)
	})

	return r
}
