package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/a11y-scraper/internal/entity"
	"github.com/user/a11y-scraper/internal/extract"
	"github.com/user/a11y-scraper/internal/repository"
	"github.com/user/a11y-scraper/pkg/metrics"
	"github.com/user/a11y-scraper/pkg/utils"
)

// ErrUnknownURL is returned when a URL is scraped that no catalogue product
// points at.
var ErrUnknownURL = errors.New("no products reference this URL")

// Scraper defines the interface for the core scraping process.
type Scraper interface {
	// ScrapeURL fetches a statement URL once and writes the result to every
	// product sharing it. Returns the resulting status.
	ScrapeURL(ctx context.Context, url string) (string, error)
	// ProcessQueue pops a single URL from the scrape queue and processes it.
	ProcessQueue(ctx context.Context) error
	// RunBatch scrapes every unique URL in the catalogue sequentially.
	RunBatch(ctx context.Context) (*entity.BatchSummary, error)
}

type scraperUseCase struct {
	fetcher  repository.PageFetcher
	products repository.ProductRepository
	queue    repository.QueueRepository
}

// NewScraper creates a new instance of the scraper use case.
func NewScraper(
	fetcher repository.PageFetcher,
	products repository.ProductRepository,
	queue repository.QueueRepository,
) Scraper {
	return &scraperUseCase{
		fetcher:  fetcher,
		products: products,
		queue:    queue,
	}
}

// ScrapeURL fetches the page once and fans the outcome out to every product
// sharing the URL. A fetch failure only updates status and fetch time, so
// fields from an earlier successful scrape survive.
func (uc *scraperUseCase) ScrapeURL(ctx context.Context, url string) (string, error) {
	products, err := uc.products.FindByURL(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to look up products for %s: %w", url, err)
	}
	if len(products) == 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownURL, url)
	}

	domain := utils.Hostname(url)
	startTime := time.Now()

	htmlContent, fetchErr := uc.fetcher.Fetch(ctx, url)

	duration := time.Since(startTime)
	metrics.ScrapeDuration.WithLabelValues(domain).Observe(duration.Seconds())
	fetchedAt := time.Now()

	if fetchErr != nil {
		slog.Error("Fetch failed for URL", "url", url, "error", fetchErr)
		metrics.ScrapesTotal.WithLabelValues("failure", errorType(fetchErr)).Inc()
		return entity.StatusFailed, uc.fanOutStatus(ctx, products, entity.StatusFailed, fetchedAt)
	}

	fields, extractErr := extract.Extract(htmlContent)
	if extractErr != nil {
		slog.Error("Extraction failed for URL", "url", url, "error", extractErr)
		metrics.ScrapesTotal.WithLabelValues("failure", "extraction").Inc()
		return entity.StatusFailed, uc.fanOutStatus(ctx, products, entity.StatusFailed, fetchedAt)
	}

	status := entity.StatusSuccess
	if fields.Empty() {
		slog.Warn("Scrape yielded no content", "url", url)
		status = entity.StatusNoContent
	} else {
		observeFields(fields)
	}
	metrics.ScrapesTotal.WithLabelValues("success", "").Inc()

	slog.Info("Scraped statement URL",
		"url", url,
		"status", status,
		"products", len(products),
		"duration_ms", duration.Milliseconds(),
	)

	var saveErrs []error
	for _, p := range products {
		if err := uc.products.SaveScrape(ctx, p.Name, fields, status, fetchedAt); err != nil {
			saveErrs = append(saveErrs, fmt.Errorf("failed to save scrape for %q: %w", p.Name, err))
		}
	}
	return status, errors.Join(saveErrs...)
}

// ProcessQueue pops one URL from the queue and scrapes it. An empty queue is
// a normal state, not an error.
func (uc *scraperUseCase) ProcessQueue(ctx context.Context) error {
	urlToScrape, err := uc.queue.Pop(ctx)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to pop URL from queue: %w", err)
	}
	if size, err := uc.queue.Size(ctx); err == nil {
		metrics.URLsInQueue.Set(float64(size))
	}

	slog.Info("Processing URL from queue", "url", urlToScrape)

	if _, err := uc.ScrapeURL(ctx, urlToScrape); err != nil {
		if errors.Is(err, ErrUnknownURL) {
			slog.Warn("Queued URL is not referenced by any product, dropping", "url", urlToScrape)
			return nil
		}
		return err
	}
	return nil
}

// RunBatch walks the whole catalogue, grouping products by URL so each page
// is fetched once, and scrapes the unique URLs sequentially.
func (uc *scraperUseCase) RunBatch(ctx context.Context) (*entity.BatchSummary, error) {
	products, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogue: %w", err)
	}

	summary := &entity.BatchSummary{}
	seen := make(map[string]bool)
	var urls []string
	for _, p := range products {
		if p.URL == "" {
			summary.SkippedNoURL++
			continue
		}
		if !seen[p.URL] {
			seen[p.URL] = true
			urls = append(urls, p.URL)
		}
	}

	for _, url := range urls {
		status, err := uc.ScrapeURL(ctx, url)
		if err != nil {
			return summary, err
		}
		summary.URLsScraped++
		switch status {
		case entity.StatusSuccess:
			summary.Succeeded++
		case entity.StatusNoContent:
			summary.NoContent++
		case entity.StatusFailed:
			summary.Failed++
		}
	}

	return summary, nil
}

func (uc *scraperUseCase) fanOutStatus(ctx context.Context, products []*entity.Product, status string, fetchedAt time.Time) error {
	var errs []error
	for _, p := range products {
		if err := uc.products.SetStatus(ctx, p.Name, status, fetchedAt); err != nil {
			errs = append(errs, fmt.Errorf("failed to set status for %q: %w", p.Name, err))
		}
	}
	return errors.Join(errs...)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, repository.ErrFetchTimeout):
		return "timeout"
	case errors.Is(err, repository.ErrNavigationFailed):
		return "navigation"
	case errors.Is(err, repository.ErrContentRestricted):
		return "restricted"
	default:
		return "unknown"
	}
}

func observeFields(fields entity.StatementFields) {
	for field, value := range map[string]string{
		"feedback":          fields.Feedback,
		"enforcement":       fields.Enforcement,
		"compliance_status": fields.ComplianceStatus,
		"preparation":       fields.Preparation,
		"non_accessible":    fields.NonAccessible,
		"last_review":       fields.LastReview,
		"wcag":              fields.WCAG,
		"compliance_level":  fields.ComplianceLevel,
	} {
		if value != "" {
			metrics.FieldsExtracted.WithLabelValues(field).Inc()
		}
	}
}
