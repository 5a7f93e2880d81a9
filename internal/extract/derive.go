package extract

import (
	"strings"

	"github.com/user/a11y-scraper/internal/entity"
)

// DeriveFields turns a SectionMap into the final statement record. Each
// derived field degrades independently: a parser finding nothing leaves its
// field empty without affecting the others.
func DeriveFields(sections SectionMap) entity.StatementFields {
	f := entity.StatementFields{
		Feedback:         sections[SectionFeedback],
		Enforcement:      sections[SectionEnforcement],
		ComplianceStatus: sections[SectionComplianceStatus],
		Preparation:      sections[SectionPreparation],
		NonAccessible:    sections[SectionNonAccessible],
	}

	f.FeedbackPresent = yesNo(strings.TrimSpace(f.Feedback) != "")
	f.EnforcementPresent = yesNo(strings.TrimSpace(f.Enforcement) != "")
	f.LastReview = LastReviewDate(f.Preparation)
	f.WCAG = WCAGVersion(f.ComplianceStatus)
	f.ComplianceLevel = ComplianceLevel(f.ComplianceStatus)
	f.IssueText = strings.TrimSpace(f.NonAccessible)

	return f
}

// Extract runs the full pipeline against raw HTML.
func Extract(htmlContent string) (entity.StatementFields, error) {
	doc, err := ParseDocument(htmlContent)
	if err != nil {
		return entity.StatementFields{}, err
	}
	return DeriveFields(ExtractSections(doc)), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
