package routers

import (
	"interviewai/internal/handlers"
	"interviewai/internal/metrics"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/is-live", healthHandler.LiveHandler)
	router.Get("/health", healthHandler.HealthHandler)
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
	router.Method("GET", "/metrics", metrics.Handler())
}
