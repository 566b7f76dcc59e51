package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeIDSegment reduces free-form text to a lowercase package identifier
// segment. Text is NFKC-folded first so fullwidth Latin letters and digits
// survive as ASCII. Whitespace becomes a dot, every other rune that is not an
// ASCII letter or digit is dropped. Runs of dots collapse and dots never lead
// or trail. A segment that would start with a digit is prefixed with "a".
// Returns "" when nothing usable remains; callers pick their own fallback.
func SanitizeIDSegment(value string) string {
	value = norm.NFKC.String(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value))
	pendingDot := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		case unicode.IsSpace(r):
			pendingDot = b.Len() > 0
			continue
		default:
			continue
		}
		if pendingDot {
			b.WriteByte('.')
			pendingDot = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		return ""
	}
	if out[0] < 'a' || out[0] > 'z' {
		out = "a" + out
	}
	return out
}

// SanitizeIDToken keeps only the ASCII letters and digits of value, lowercased,
// after NFKC folding. Dots, separators and every other rune are dropped, so the
// result is always safe as a single path component. Returns "" when nothing
// usable remains.
func SanitizeIDToken(value string) string {
	value = norm.NFKC.String(strings.TrimSpace(value))
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
