package extract

import "strings"

// Canonical compliance levels.
const (
	FullyCompliant     = "Fully Compliant"
	PartiallyCompliant = "Partially Compliant"
	NotCompliant       = "Not Compliant"
)

// levelRule pairs a canonical level with the predicate that detects it in
// lower-cased text.
type levelRule struct {
	level string
	match func(lower string) bool
}

// levelRules is evaluated top to bottom; ordering is part of the contract.
// "fully compliant, though partially reviewed" must resolve to Fully
// Compliant because the first rule runs before the "partial" check.
var levelRules = []levelRule{
	{FullyCompliant, func(t string) bool {
		return strings.Contains(t, "fully") && strings.Contains(t, "compliant")
	}},
	{PartiallyCompliant, func(t string) bool {
		return strings.Contains(t, "partial")
	}},
	{NotCompliant, func(t string) bool {
		return strings.Contains(t, "not compliant")
	}},
}

// ComplianceLevel derives the canonical compliance level from free text,
// or "" when none of the rules match.
func ComplianceLevel(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range levelRules {
		if rule.match(lower) {
			return rule.level
		}
	}
	return ""
}
