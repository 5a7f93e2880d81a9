package repository

import (
	"context"
	"time"
)

// VisitedRepository defines the interface for deduplication of recently
// scraped URLs.
type VisitedRepository interface {
	// MarkVisited marks a URL as scraped with a specific expiry time.
	MarkVisited(ctx context.Context, url string, expiry time.Duration) error
	// IsVisited checks if a URL has been scraped recently.
	IsVisited(ctx context.Context, url string) (bool, error)
	// RemoveVisited removes a URL from the visited set, used for forced
	// re-scrapes.
	RemoveVisited(ctx context.Context, url string) error
}
