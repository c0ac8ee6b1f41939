package textutil

import (
	"strings"
	"unicode"
)

// SanitizeFileName makes a source name usable as part of an output file name.
// Path separators, colons and asterisks become dashes; quotes, wildcards,
// redirection characters and control characters are dropped.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`/\:*`, r):
			return '-'
		case strings.ContainsRune(`?"<>|`, r), unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, name))
}
