package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWCAGVersion(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"This service is partially compliant with WCAG 2.1 AA.", "2.1"},
		{"Conforms to WCAG 2.2.", "2.2"},
		{"Built against WCAG 2.0 guidelines.", "2.0"},
		// 2.2 wins when several versions appear
		{"Migrating from WCAG 2.0 to WCAG 2.2.", "2.2"},
		{"Fully compliant with the regulations.", ""},
		// unknown versions and bare conformance levels are not recognized
		{"WCAG 2.3 AA", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WCAGVersion(tt.text), "text %q", tt.text)
	}
}
