package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/user/a11y-scraper/internal/entity"
	"github.com/user/a11y-scraper/internal/repository"
	"github.com/user/a11y-scraper/pkg/utils"
)

// ErrURLRecentlyScraped is returned when a URL inside the deduplication
// window is submitted without the force flag.
var ErrURLRecentlyScraped = errors.New("URL has been scraped recently and force is false")

// URLManager defines the interface for submitting URLs and checking their
// scrape state.
type URLManager interface {
	Submit(ctx context.Context, url string, force bool) (string, error)
	StatusByURL(ctx context.Context, url string) ([]*entity.Product, error)
	StatusByProduct(ctx context.Context, name string) (*entity.Product, error)
}

type urlManagerUseCase struct {
	visited     repository.VisitedRepository
	queue       repository.QueueRepository
	products    repository.ProductRepository
	dedupWindow time.Duration
}

// NewURLManager creates a new URLManager use case.
func NewURLManager(
	visited repository.VisitedRepository,
	queue repository.QueueRepository,
	products repository.ProductRepository,
	dedupWindow time.Duration,
) URLManager {
	return &urlManagerUseCase{
		visited:     visited,
		queue:       queue,
		products:    products,
		dedupWindow: dedupWindow,
	}
}

// Submit queues a statement URL for scraping. The returned id is the URL
// hash, stable across submissions.
func (uc *urlManagerUseCase) Submit(ctx context.Context, url string, force bool) (string, error) {
	requestID := utils.HashURL(url)

	if force {
		if err := uc.visited.RemoveVisited(ctx, url); err != nil {
			slog.Warn("Failed to remove visited key for forced scrape", "url", url, "error", err)
			// Not a critical failure, continue.
		}
	} else {
		isVisited, err := uc.visited.IsVisited(ctx, url)
		if err != nil {
			return "", err
		}
		if isVisited {
			return requestID, ErrURLRecentlyScraped
		}
	}

	if err := uc.queue.Push(ctx, url); err != nil {
		return "", err
	}

	if err := uc.visited.MarkVisited(ctx, url, uc.dedupWindow); err != nil {
		// The URL is queued either way; at worst it gets queued again
		// before a worker picks it up.
		slog.Error("Failed to mark URL as visited after queueing", "url", url, "error", err)
	}

	return requestID, nil
}

// StatusByURL returns every catalogue product referencing the URL, with
// their current scrape status.
func (uc *urlManagerUseCase) StatusByURL(ctx context.Context, url string) ([]*entity.Product, error) {
	return uc.products.FindByURL(ctx, url)
}

// StatusByProduct returns the catalogue row for a single product name.
func (uc *urlManagerUseCase) StatusByProduct(ctx context.Context, name string) (*entity.Product, error) {
	return uc.products.FindByName(ctx, name)
}
