package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// reviewPhrase locates "last reviewed [on]", "reviewed [on]", "last updated"
// or "updated [on]" anywhere in the text, with an optional colon or dash
// separator. The remainder of the line is the date candidate; `.` does not
// cross newlines, so the candidate stops at the first line break.
var reviewPhrase = regexp.MustCompile(
	`(?i)(last reviewed(?: on)?|reviewed(?: on)?|last updated|updated(?: on)?)\s*[:\-]?\s*(.*)`)

// maxDateCandidate caps how much trailing prose the fuzzy parser has to chew
// through.
const maxDateCandidate = 200

// LastReviewDate searches free text for a review/update phrase and parses
// whatever follows it as a date, normalized to YYYY-MM-DD. Returns "" if no
// phrase is found or the candidate does not parse. Best-effort by design:
// a date-like token in unrelated prose after the phrase may be picked up.
func LastReviewDate(text string) string {
	m := reviewPhrase.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	candidate := strings.TrimSpace(m[2])
	if len(candidate) > maxDateCandidate {
		candidate = candidate[:maxDateCandidate]
	}

	t, ok := parseFuzzyDate(candidate)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// maxDateTokens bounds the sliding window: no supported date format spans
// more than five whitespace-separated tokens.
const maxDateTokens = 5

// parseFuzzyDate extracts a date from prose the way dateutil's fuzzy mode
// does: it slides a token window over the text, longest window first at each
// offset, and hands every digit-bearing window to dateparse until one
// parses. "reviewed on 14 March 2023 and approved" therefore resolves via
// the "14 March 2023" window.
func parseFuzzyDate(text string) (time.Time, bool) {
	fields := strings.Fields(text)

	for start := range fields {
		limit := len(fields) - start
		if limit > maxDateTokens {
			limit = maxDateTokens
		}
		for n := limit; n >= 1; n-- {
			window := strings.Join(fields[start:start+n], " ")
			window = strings.Trim(window, ".,;:()[]")
			if !containsDigit(window) {
				continue
			}
			if t, err := dateparse.ParseAny(window); err == nil {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
