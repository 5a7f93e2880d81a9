package entity

// ScrapeReport holds completion stats for the key scraped fields.
type ScrapeReport struct {
	TotalProducts     int64 `json:"total_products"`
	LastReview        int64 `json:"last_review"`
	WCAG              int64 `json:"wcag"`
	ComplianceLevel   int64 `json:"compliance_level"`
	SuccessfulScrapes int64 `json:"successful_scrapes"`
}

// BatchSummary tallies the outcome of one batch run over the catalogue.
type BatchSummary struct {
	URLsScraped  int `json:"urls_scraped"`
	Succeeded    int `json:"succeeded"`
	Failed       int `json:"failed"`
	NoContent    int `json:"no_content"`
	SkippedNoURL int `json:"skipped_no_url"`
}
