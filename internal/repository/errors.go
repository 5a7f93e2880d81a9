package repository

import "errors"

// Sentinel errors returned by PageFetcher implementations. The scrape use
// case matches on these to label failure metrics.
var (
	ErrFetchTimeout      = errors.New("page load timed out")
	ErrNavigationFailed  = errors.New("navigation failed")
	ErrContentRestricted = errors.New("content is restricted or requires authentication")
)

// ErrProductNotFound is returned by ProductRepository lookups for a product
// name that is not in the catalogue.
var ErrProductNotFound = errors.New("product not found")
