package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFieldsEmptyDocument(t *testing.T) {
	fields, err := Extract(`<html><body><p>No headings anywhere.</p></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "no", fields.FeedbackPresent)
	assert.Equal(t, "no", fields.EnforcementPresent)
	assert.Empty(t, fields.LastReview)
	assert.Empty(t, fields.WCAG)
	assert.Empty(t, fields.ComplianceLevel)
	assert.Empty(t, fields.IssueText)
	assert.True(t, fields.Empty())
}

func TestDeriveFieldsPresenceFlags(t *testing.T) {
	fields := DeriveFields(SectionMap{
		SectionFeedback:    "Email us.",
		SectionEnforcement: "   ",
	})

	assert.Equal(t, "yes", fields.FeedbackPresent)
	// whitespace-only text does not count as present
	assert.Equal(t, "no", fields.EnforcementPresent)
}

func TestDeriveFieldsIssueText(t *testing.T) {
	fields := DeriveFields(SectionMap{
		SectionNonAccessible: "  Some PDFs are not tagged.  ",
	})
	assert.Equal(t, "Some PDFs are not tagged.", fields.IssueText)

	fields = DeriveFields(SectionMap{SectionNonAccessible: "   "})
	assert.Empty(t, fields.IssueText)
}

// Each derived field fails independently: an unparsable preparation date
// must not disturb the version and level parsed from compliance status.
func TestDeriveFieldsIndependentFailure(t *testing.T) {
	fields := DeriveFields(SectionMap{
		SectionPreparation:      "This statement was last reviewed on a date we forgot to publish.",
		SectionComplianceStatus: "This service is partially compliant with WCAG 2.1 AA.",
	})

	assert.Empty(t, fields.LastReview)
	assert.Equal(t, "2.1", fields.WCAG)
	assert.Equal(t, PartiallyCompliant, fields.ComplianceLevel)
}

func TestExtractFullStatement(t *testing.T) {
	fields, err := Extract(`<html><body>
		<h1>Accessibility statement for Example Service</h1>
		<h2>Compliance status</h2>
		<p>This website is partially compliant with the Web Content
		Accessibility Guidelines version 2.1 AA standard.</p>
		<h2>Non-accessible content</h2>
		<p>Some images do not have a text alternative.</p>
		<h2>Feedback and contact information</h2>
		<p>If you need information in a different format, email
		access@example.gov.uk.</p>
		<h2>Enforcement procedure</h2>
		<p>The Equality and Human Rights Commission is responsible for
		enforcing the regulations.</p>
		<h2>Preparation of this accessibility statement</h2>
		<p>This statement was prepared on 1 September 2020. It was last
		reviewed on 14 March 2023.</p>
	</body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "yes", fields.FeedbackPresent)
	assert.Equal(t, "yes", fields.EnforcementPresent)
	assert.Equal(t, "2023-03-14", fields.LastReview)
	assert.Equal(t, "2.1", fields.WCAG)
	assert.Equal(t, PartiallyCompliant, fields.ComplianceLevel)
	assert.Contains(t, fields.IssueText, "Some images do not have a text alternative.")
	assert.False(t, fields.Empty())
}
