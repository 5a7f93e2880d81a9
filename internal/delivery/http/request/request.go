package request

// SubmitScrapeRequest is the body of POST /api/scrape.
type SubmitScrapeRequest struct {
	URL string `json:"url"`
	// Force bypasses the deduplication window and rescrapes the URL even if
	// it was fetched recently.
	Force bool `json:"force"`
}
