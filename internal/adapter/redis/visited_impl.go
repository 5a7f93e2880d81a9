package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/a11y-scraper/pkg/utils"
)

const visitedURLPrefix = "scraped:"

// VisitedRepoImpl provides a concrete implementation for the
// VisitedRepository interface using Redis.
type VisitedRepoImpl struct {
	client *redis.Client
}

// NewVisitedRepo creates a new instance of VisitedRepoImpl.
func NewVisitedRepo(client *redis.Client) *VisitedRepoImpl {
	return &VisitedRepoImpl{client: client}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *VisitedRepoImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", visitedURLPrefix, utils.HashURL(url))
}

// MarkVisited marks a URL as scraped by setting a key with an expiry.
func (r *VisitedRepoImpl) MarkVisited(ctx context.Context, url string, expiry time.Duration) error {
	return r.client.SetEx(ctx, r.generateKey(url), "1", expiry).Err()
}

// IsVisited checks if a URL has been scraped within the dedup window.
func (r *VisitedRepoImpl) IsVisited(ctx context.Context, url string) (bool, error) {
	val, err := r.client.Exists(ctx, r.generateKey(url)).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}

// RemoveVisited removes a URL from the visited set, used for forced
// re-scrapes.
func (r *VisitedRepoImpl) RemoveVisited(ctx context.Context, url string) error {
	return r.client.Del(ctx, r.generateKey(url)).Err()
}
