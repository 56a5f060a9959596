package validation

import (
	"strings"
	"unicode"
)

// Sanitize normalizes a single-line field: control characters are dropped,
// runs of whitespace (newlines included) collapse to one space and the result
// is trimmed. Single-line values end up in SMTP headers, so no newline may
// survive here.
func Sanitize(s string) string {
	return sanitize(s, false)
}

// SanitizeMultiline is Sanitize with newlines preserved, for fields the
// notifier renders as multi-line body text.
func SanitizeMultiline(s string) string {
	return sanitize(s, true)
}

func sanitize(s string, keepNewlines bool) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch {
		case r == '\n' && keepNewlines:
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '\n':
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
