package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/a11y-scraper/internal/delivery/http/handler"
	"github.com/user/a11y-scraper/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Post("/scrape", h.HandleSubmitScrape)
		r.Get("/status", h.HandleGetStatus)
		r.Get("/report", h.HandleReport)
		r.Get("/health", h.HandleHealthCheck)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
