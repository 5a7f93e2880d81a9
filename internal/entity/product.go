package entity

import "time"

// Scrape lifecycle statuses recorded on a product row.
const (
	StatusPending   = "pending"
	StatusNoURL     = "no_url"
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusNoContent = "no_content"
)

// Product mirrors the `products` PostgreSQL table schema. ProductName is the
// unique key; several products may point at the same statement URL, in which
// case the page is fetched once and the result written to every one of them.
type Product struct {
	ID        int64      `json:"-"`
	Name      string     `json:"product_name"`
	Portfolio string     `json:"portfolio"`
	URL       string     `json:"url"`
	Status    string     `json:"status"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	StatementFields
}
