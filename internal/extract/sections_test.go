package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, html string) *Document {
	t.Helper()
	doc, err := ParseDocument(html)
	require.NoError(t, err)
	return doc
}

func TestExtractSectionsNoHeadings(t *testing.T) {
	doc := mustParse(t, `<html><body><p>Just a paragraph, no headings at all.</p></body></html>`)
	sections := ExtractSections(doc)
	assert.Empty(t, sections)
}

func TestExtractSectionsBasic(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<h1>Accessibility statement</h1>
		<h2>Feedback and contact information</h2>
		<p>Email us at access@example.gov.uk.</p>
		<p>We aim to reply within 5 days.</p>
		<h2>Enforcement procedure</h2>
		<p>The EHRC enforces the regulations.</p>
	</body></html>`)

	sections := ExtractSections(doc)

	assert.Equal(t, "Email us at access@example.gov.uk.\nWe aim to reply within 5 days.", sections[SectionFeedback])
	assert.Equal(t, "The EHRC enforces the regulations.", sections[SectionEnforcement])
	_, hasPrep := sections[SectionPreparation]
	assert.False(t, hasPrep)
}

// Two headings classifying to the same key: the first one's content is
// retained, the second is ignored.
func TestExtractSectionsFirstMatchWins(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<h2>Feedback</h2>
		<p>First feedback block.</p>
		<h2>Contact us</h2>
		<p>Second block that also classifies as feedback.</p>
	</body></html>`)

	sections := ExtractSections(doc)
	assert.Equal(t, "First feedback block.", sections[SectionFeedback])
}

// feedback stops at the very next heading of any level; non_accessible runs
// to the end of the document and so picks up text sitting after later,
// unrelated headings.
func TestExtractSectionsBoundaries(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<h2>Feedback</h2>
		<p>Tell us what you think.</p>
		<h3>Postal address</h3>
		<p>1 High Street.</p>
		<h2>Non-accessible content</h2>
		<p>Some PDFs are not tagged.</p>
		<h3>Disproportionate burden</h3>
		<p>Fixing the archive would cost too much.</p>
	</body></html>`)

	sections := ExtractSections(doc)

	assert.Equal(t, "Tell us what you think.", sections[SectionFeedback])
	assert.NotContains(t, sections[SectionFeedback], "1 High Street.")

	assert.Contains(t, sections[SectionNonAccessible], "Some PDFs are not tagged.")
	assert.Contains(t, sections[SectionNonAccessible], "Disproportionate burden")
	assert.Contains(t, sections[SectionNonAccessible], "Fixing the archive would cost too much.")
}

// A matched heading with nothing before the next heading yields an empty
// string, not absence.
func TestExtractSectionsEmptySection(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<h2>Feedback</h2>
		<h2>Enforcement procedure</h2>
		<p>Contact the ombudsman.</p>
	</body></html>`)

	sections := ExtractSections(doc)

	got, present := sections[SectionFeedback]
	assert.True(t, present)
	assert.Equal(t, "", got)
	assert.Equal(t, "Contact the ombudsman.", sections[SectionEnforcement])
}

func TestExtractSectionsSkipsScriptAndStyleText(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<h2>Feedback</h2>
		<script>var tracking = "not page content";</script>
		<style>.hidden { display: none; }</style>
		<p>Write to us.</p>
	</body></html>`)

	sections := ExtractSections(doc)
	assert.Equal(t, "Write to us.", sections[SectionFeedback])
}

func TestExtractSectionsIdempotent(t *testing.T) {
	const page = `<html><body>
		<h2>Compliance status</h2>
		<p>This website is partially compliant with WCAG 2.1 AA.</p>
		<h2>Feedback</h2>
		<p>Email us.</p>
	</body></html>`

	doc := mustParse(t, page)
	first := ExtractSections(doc)
	second := ExtractSections(doc)
	assert.Equal(t, first, second)

	reparsed := mustParse(t, page)
	assert.Equal(t, first, ExtractSections(reparsed))
}

func TestExtractSectionsNestedMarkup(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<h2>Feedback</h2>
		<div><p>Email <a href="mailto:a@b.gov">our team</a> any time.</p></div>
		<h2>Done</h2>
	</body></html>`)

	sections := ExtractSections(doc)
	assert.Equal(t, "Email\nour team\nany time.", sections[SectionFeedback])
}
