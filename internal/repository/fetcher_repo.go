package repository

import "context"

// PageFetcher defines the contract for the rendered-page fetch mechanism.
// Implementations are expected to execute JavaScript and dismiss
// cookie/consent banners before snapshotting the document.
type PageFetcher interface {
	// Fetch returns the best-effort fully rendered HTML of a URL.
	Fetch(ctx context.Context, url string) (string, error)
}
