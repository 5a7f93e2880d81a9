package extract

import "strings"

// wcagVersions is checked in order, so the newest version wins when a page
// mentions several. Only these literals are recognized; conformance levels
// like "AA" and hypothetical versions like "2.3" are not.
var wcagVersions = []string{"2.2", "2.1", "2.0"}

// WCAGVersion returns the WCAG version mentioned in the text, or "".
func WCAGVersion(text string) string {
	for _, v := range wcagVersions {
		if strings.Contains(text, v) {
			return v
		}
	}
	return ""
}
