package usecase

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/user/a11y-scraper/internal/entity"
	"github.com/user/a11y-scraper/internal/repository"
)

// CSV column headers expected by ImportCSV.
const (
	columnProductName = "Product Name"
	columnPortfolio   = "Portfolio"
	columnURL         = "Statement URL"
)

// ImportSummary tallies the outcome of a CSV import.
type ImportSummary struct {
	Imported int
	Skipped  int
}

// Catalog defines the interface for managing the product catalogue around
// the scrape cycle.
type Catalog interface {
	// Init creates the backing schema.
	Init(ctx context.Context) error
	// ImportCSV loads product, portfolio and optional statement-URL rows.
	ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error)
	// Validate returns rows with a missing or blank product name.
	Validate(ctx context.Context) ([]*entity.Product, error)
	// Count returns the number of catalogue rows.
	Count(ctx context.Context) (int64, error)
	// Report aggregates completion stats for the key scraped fields.
	Report(ctx context.Context) (*entity.ScrapeReport, error)
	// ExportJSON writes the whole catalogue as indented JSON.
	ExportJSON(ctx context.Context, w io.Writer) error
}

type catalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalog creates a new Catalog use case.
func NewCatalog(products repository.ProductRepository) Catalog {
	return &catalogUseCase{products: products}
}

func (uc *catalogUseCase) Init(ctx context.Context) error {
	return uc.products.Init(ctx)
}

// ImportCSV reads header-keyed rows. Rows without a product name are
// skipped; rows without a URL are stored with status no_url so batch runs
// can report them.
func (uc *catalogUseCase) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff") // UTF-8 BOM
		}
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns[columnProductName]; !ok {
		return nil, fmt.Errorf("CSV is missing the %q column", columnProductName)
	}

	summary := &ImportSummary{}
	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("failed to read CSV row %d: %w", rowNum, err)
		}

		cell := func(column string) string {
			idx, ok := columns[column]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		name := cell(columnProductName)
		if name == "" {
			slog.Warn("Skipping CSV row with missing product name", "row", rowNum)
			summary.Skipped++
			continue
		}

		url := cell(columnURL)
		status := entity.StatusPending
		if url == "" {
			status = entity.StatusNoURL
		}

		product := &entity.Product{
			Name:      name,
			Portfolio: cell(columnPortfolio),
			URL:       url,
			Status:    status,
		}
		if err := uc.products.Upsert(ctx, product); err != nil {
			return summary, fmt.Errorf("failed to import row %d (%q): %w", rowNum, name, err)
		}
		summary.Imported++
	}

	slog.Info("CSV import complete", "imported", summary.Imported, "skipped", summary.Skipped)
	return summary, nil
}

func (uc *catalogUseCase) Validate(ctx context.Context) ([]*entity.Product, error) {
	return uc.products.ListInvalid(ctx)
}

func (uc *catalogUseCase) Count(ctx context.Context) (int64, error) {
	return uc.products.Count(ctx)
}

func (uc *catalogUseCase) Report(ctx context.Context) (*entity.ScrapeReport, error) {
	return uc.products.Report(ctx)
}

func (uc *catalogUseCase) ExportJSON(ctx context.Context, w io.Writer) error {
	products, err := uc.products.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list catalogue: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(products)
}
