package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/a11y-scraper/internal/entity"
	"github.com/user/a11y-scraper/internal/repository"
)

// ProductRepoImpl provides a concrete implementation for the
// ProductRepository interface using PostgreSQL.
type ProductRepoImpl struct {
	db *pgxpool.Pool
}

// NewProductRepo creates a new instance of ProductRepoImpl.
func NewProductRepo(db *pgxpool.Pool) *ProductRepoImpl {
	return &ProductRepoImpl{db: db}
}

// Init creates the products table if it does not exist.
func (r *ProductRepoImpl) Init(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			product_name TEXT UNIQUE NOT NULL,
			portfolio TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			fetched_at TIMESTAMPTZ,
			feedback TEXT NOT NULL DEFAULT '',
			enforcement TEXT NOT NULL DEFAULT '',
			compliance_status TEXT NOT NULL DEFAULT '',
			preparation TEXT NOT NULL DEFAULT '',
			non_accessible TEXT NOT NULL DEFAULT '',
			feedback_present TEXT NOT NULL DEFAULT '',
			enforcement_present TEXT NOT NULL DEFAULT '',
			last_review TEXT NOT NULL DEFAULT '',
			wcag TEXT NOT NULL DEFAULT '',
			compliance_level TEXT NOT NULL DEFAULT '',
			issue_text TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_products_url ON products (url);
	`)
	return err
}

// Upsert inserts or overwrites the catalogue row for a product name.
func (r *ProductRepoImpl) Upsert(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (product_name, portfolio, url, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_name) DO UPDATE SET
			portfolio = EXCLUDED.portfolio,
			url = EXCLUDED.url,
			status = EXCLUDED.status;
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.Portfolio, product.URL, product.Status)
	return err
}

// SaveScrape overwrites the scraped statement fields, status and fetch time
// for a product name.
func (r *ProductRepoImpl) SaveScrape(ctx context.Context, productName string, fields entity.StatementFields, status string, fetchedAt time.Time) error {
	query := `
		INSERT INTO products (
			product_name, feedback, enforcement, compliance_status,
			preparation, non_accessible, feedback_present,
			enforcement_present, last_review, wcag, compliance_level,
			issue_text, status, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (product_name) DO UPDATE SET
			feedback = EXCLUDED.feedback,
			enforcement = EXCLUDED.enforcement,
			compliance_status = EXCLUDED.compliance_status,
			preparation = EXCLUDED.preparation,
			non_accessible = EXCLUDED.non_accessible,
			feedback_present = EXCLUDED.feedback_present,
			enforcement_present = EXCLUDED.enforcement_present,
			last_review = EXCLUDED.last_review,
			wcag = EXCLUDED.wcag,
			compliance_level = EXCLUDED.compliance_level,
			issue_text = EXCLUDED.issue_text,
			status = EXCLUDED.status,
			fetched_at = EXCLUDED.fetched_at;
	`
	_, err := r.db.Exec(ctx, query,
		productName,
		fields.Feedback,
		fields.Enforcement,
		fields.ComplianceStatus,
		fields.Preparation,
		fields.NonAccessible,
		fields.FeedbackPresent,
		fields.EnforcementPresent,
		fields.LastReview,
		fields.WCAG,
		fields.ComplianceLevel,
		fields.IssueText,
		status,
		fetchedAt,
	)
	return err
}

// SetStatus records a scrape attempt that produced no fields, touching only
// status and fetch time. Previously scraped fields are kept.
func (r *ProductRepoImpl) SetStatus(ctx context.Context, productName string, status string, fetchedAt time.Time) error {
	query := `
		INSERT INTO products (product_name, status, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_name) DO UPDATE SET
			status = EXCLUDED.status,
			fetched_at = EXCLUDED.fetched_at;
	`
	_, err := r.db.Exec(ctx, query, productName, status, fetchedAt)
	return err
}

const productColumns = `
	id, product_name, portfolio, url, status, fetched_at,
	feedback, enforcement, compliance_status, preparation, non_accessible,
	feedback_present, enforcement_present, last_review, wcag,
	compliance_level, issue_text`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Portfolio, &p.URL, &p.Status, &p.FetchedAt,
		&p.Feedback, &p.Enforcement, &p.ComplianceStatus, &p.Preparation,
		&p.NonAccessible, &p.FeedbackPresent, &p.EnforcementPresent,
		&p.LastReview, &p.WCAG, &p.ComplianceLevel, &p.IssueText,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepoImpl) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// FindByName retrieves a single product by its unique name.
func (r *ProductRepoImpl) FindByName(ctx context.Context, name string) (*entity.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_name = $1;`, name)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", repository.ErrProductNotFound, name)
	}
	return p, err
}

// FindByURL retrieves every product sharing a statement URL.
func (r *ProductRepoImpl) FindByURL(ctx context.Context, url string) ([]*entity.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE url = $1 ORDER BY product_name;`, url)
}

// ListAll retrieves the whole catalogue.
func (r *ProductRepoImpl) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY product_name;`)
}

// ListInvalid retrieves rows with a missing or blank product name.
func (r *ProductRepoImpl) ListInvalid(ctx context.Context) ([]*entity.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_name IS NULL OR product_name = '';`)
}

// Count returns the number of catalogue rows.
func (r *ProductRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products;`).Scan(&count)
	return count, err
}

// Report aggregates completion stats for the key scraped fields. NULL and
// empty string both count as missing.
func (r *ProductRepoImpl) Report(ctx context.Context) (*entity.ScrapeReport, error) {
	var report entity.ScrapeReport
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE last_review <> ''),
			COUNT(*) FILTER (WHERE wcag <> ''),
			COUNT(*) FILTER (WHERE compliance_level <> ''),
			COUNT(*) FILTER (WHERE status = 'success')
		FROM products;
	`).Scan(
		&report.TotalProducts,
		&report.LastReview,
		&report.WCAG,
		&report.ComplianceLevel,
		&report.SuccessfulScrapes,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
