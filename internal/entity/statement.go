package entity

// StatementFields is the flat field set extracted from one accessibility
// statement page. An empty string means the field could not be derived from
// the page.
type StatementFields struct {
	Feedback           string `json:"feedback"`
	Enforcement        string `json:"enforcement"`
	ComplianceStatus   string `json:"compliance_status"`
	Preparation        string `json:"preparation"`
	NonAccessible      string `json:"non_accessible"`
	FeedbackPresent    string `json:"feedback_present"`    // "yes" or "no"
	EnforcementPresent string `json:"enforcement_present"` // "yes" or "no"
	LastReview         string `json:"last_review"`         // ISO 8601 (YYYY-MM-DD)
	WCAG               string `json:"wcag"`                // "2.0", "2.1" or "2.2"
	ComplianceLevel    string `json:"compliance_level"`    // e.g. "Partially Compliant"
	IssueText          string `json:"issue_text"`
}

// Empty reports whether nothing at all was carved out of the page. Only the
// five raw sections count; derived flags like feedback_present always carry
// a value.
func (f StatementFields) Empty() bool {
	return f.Feedback == "" &&
		f.Enforcement == "" &&
		f.ComplianceStatus == "" &&
		f.Preparation == "" &&
		f.NonAccessible == ""
}
