package response

import "time"

type SubmitScrapeResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	ScrapeRequestID string `json:"scrape_request_id"`
}

// ProductStatus is the per-product view returned by GET /api/status.
type ProductStatus struct {
	ProductName     string     `json:"product_name"`
	Portfolio       string     `json:"portfolio,omitempty"`
	URL             string     `json:"url,omitempty"`
	Status          string     `json:"status"`
	FetchedAt       *time.Time `json:"fetched_at,omitempty"`
	LastReview      string     `json:"last_review,omitempty"`
	WCAG            string     `json:"wcag,omitempty"`
	ComplianceLevel string     `json:"compliance_level,omitempty"`
}

// StatusByURLResponse groups every product that shares a statement URL.
type StatusByURLResponse struct {
	URL      string          `json:"url"`
	Products []ProductStatus `json:"products"`
}

// HealthResponse reports overall service health plus each backing
// dependency.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
