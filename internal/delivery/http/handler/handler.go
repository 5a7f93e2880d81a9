package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/user/a11y-scraper/internal/delivery/http/request"
	"github.com/user/a11y-scraper/internal/delivery/http/response"
	"github.com/user/a11y-scraper/internal/entity"
	"github.com/user/a11y-scraper/internal/repository"
	"github.com/user/a11y-scraper/internal/usecase"
)

// HealthCheck probes a single backing dependency.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	urlManager usecase.URLManager
	catalog    usecase.Catalog
	checks     map[string]HealthCheck
}

func NewHandler(urlManager usecase.URLManager, catalog usecase.Catalog, checks map[string]HealthCheck) *Handler {
	return &Handler{
		urlManager: urlManager,
		catalog:    catalog,
		checks:     checks,
	}
}

func (h *Handler) HandleSubmitScrape(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := url.ParseRequestURI(req.URL); err != nil {
		h.writeJSONError(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	scrapeID, err := h.urlManager.Submit(r.Context(), req.URL, req.Force)
	if err != nil {
		if errors.Is(err, usecase.ErrURLRecentlyScraped) {
			h.writeJSONError(w, err.Error(), http.StatusConflict)
			return
		}
		slog.Error("Failed to submit URL", "url", req.URL, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := response.SubmitScrapeResponse{
		Status:          "success",
		Message:         "URL submitted for scraping",
		ScrapeRequestID: scrapeID,
	}
	h.writeJSON(w, http.StatusAccepted, resp)
}

// HandleGetStatus serves GET /api/status. Exactly one of the url and
// product query parameters selects the lookup.
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	productName := r.URL.Query().Get("product")

	switch {
	case rawURL != "" && productName != "":
		h.writeJSONError(w, "Provide either the url or the product query parameter, not both", http.StatusBadRequest)
	case rawURL != "":
		h.statusByURL(w, r, rawURL)
	case productName != "":
		h.statusByProduct(w, r, productName)
	default:
		h.writeJSONError(w, "Either the url or the product query parameter is required", http.StatusBadRequest)
	}
}

func (h *Handler) statusByURL(w http.ResponseWriter, r *http.Request, rawURL string) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		h.writeJSONError(w, "Invalid URL format in query parameter", http.StatusBadRequest)
		return
	}

	products, err := h.urlManager.StatusByURL(r.Context(), rawURL)
	if err != nil {
		slog.Error("Failed to get scrape status", "url", rawURL, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if len(products) == 0 {
		h.writeJSONError(w, "No products reference the given URL", http.StatusNotFound)
		return
	}

	resp := response.StatusByURLResponse{URL: rawURL}
	for _, p := range products {
		resp.Products = append(resp.Products, productStatus(p))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) statusByProduct(w http.ResponseWriter, r *http.Request, name string) {
	product, err := h.urlManager.StatusByProduct(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.writeJSONError(w, "Product not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to get product status", "product", name, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, productStatus(product))
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.catalog.Report(r.Context())
	if err != nil {
		slog.Error("Failed to build scrape report", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := response.HealthResponse{
		Status:       "ok",
		Dependencies: make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			slog.Warn("Health check failed", "dependency", name, "error", err)
			resp.Dependencies[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = "ok"
	}
	h.writeJSON(w, status, resp)
}

func productStatus(p *entity.Product) response.ProductStatus {
	return response.ProductStatus{
		ProductName:     p.Name,
		Portfolio:       p.Portfolio,
		URL:             p.URL,
		Status:          p.Status,
		FetchedAt:       p.FetchedAt,
		LastReview:      p.LastReview,
		WCAG:            p.WCAG,
		ComplianceLevel: p.ComplianceLevel,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
