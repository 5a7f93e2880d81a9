package repository

import (
	"context"
	"time"

	"github.com/user/a11y-scraper/internal/entity"
)

// ProductRepository defines the interface for the product catalogue, keyed
// by unique product name.
type ProductRepository interface {
	// Init creates the products table if it does not exist.
	Init(ctx context.Context) error
	// Upsert inserts or overwrites the catalogue row (portfolio, URL,
	// status) for a product name.
	Upsert(ctx context.Context, product *entity.Product) error
	// SaveScrape overwrites the scraped statement fields, status and fetch
	// time for a product name. Catalogue columns are left untouched.
	SaveScrape(ctx context.Context, productName string, fields entity.StatementFields, status string, fetchedAt time.Time) error
	// SetStatus records a scrape attempt that produced no fields (fetch
	// failure), updating only status and fetch time.
	SetStatus(ctx context.Context, productName string, status string, fetchedAt time.Time) error
	// FindByName retrieves a single product. Returns pgx.ErrNoRows-wrapping
	// errors when absent.
	FindByName(ctx context.Context, name string) (*entity.Product, error)
	// FindByURL retrieves every product sharing a statement URL.
	FindByURL(ctx context.Context, url string) ([]*entity.Product, error)
	// ListAll retrieves the whole catalogue.
	ListAll(ctx context.Context) ([]*entity.Product, error)
	// ListInvalid retrieves rows with a missing or blank product name.
	ListInvalid(ctx context.Context) ([]*entity.Product, error)
	// Count returns the number of catalogue rows.
	Count(ctx context.Context) (int64, error)
	// Report aggregates completion stats for the key scraped fields.
	Report(ctx context.Context) (*entity.ScrapeReport, error)
}
