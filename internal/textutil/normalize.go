package textutil

import "strings"

// Normalize lower-cases text and drops every character outside [a-z], or
// outside [a-z0-9] when retainDigits is set. The result is idempotent:
// Normalize(Normalize(x, d), d) == Normalize(x, d).
func Normalize(text string, retainDigits bool) string {
	if text == "" {
		return ""
	}
	lowered := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lowered))
	for i := 0; i < len(lowered); i++ {
		c := lowered[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
		case retainDigits && c >= '0' && c <= '9':
			b.WriteByte(c)
		}
	}
	return b.String()
}
