package extract

import "strings"

// Section keys a heading can classify into.
const (
	SectionFeedback         = "feedback"
	SectionEnforcement      = "enforcement"
	SectionComplianceStatus = "compliance_status"
	SectionPreparation      = "preparation"
	SectionNonAccessible    = "non_accessible"
)

// headingRule pairs a section key with the substrings that identify it.
type headingRule struct {
	key      string
	patterns []string
}

// headingRules is evaluated top to bottom and the first matching rule wins.
// The non_accessible patterns overlap with generic compliance wording
// ("not compliant", "partially compliant"), so that rule must stay last.
var headingRules = []headingRule{
	{SectionFeedback, []string{"feedback", "contact", "reporting"}},
	{SectionEnforcement, []string{"enforcement"}},
	{SectionComplianceStatus, []string{"compliance status"}},
	{SectionPreparation, []string{"preparation"}},
	{SectionNonAccessible, []string{
		"non-accessible", "not accessible", "does not fully meet",
		"non compliance", "non-compliance", "content not accessible",
		"not compliant", "partially compliant",
	}},
}

// ClassifyHeading maps heading text to a section key via case-insensitive
// substring matching against headingRules. The second return value is false
// when no rule matches.
func ClassifyHeading(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rule := range headingRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.key, true
			}
		}
	}
	return "", false
}
