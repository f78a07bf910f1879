package hybrid

import (
	"strings"
	"unicode"
)

// NormalizeText collapses every run of whitespace into a single space and
// trims both ends. Byte order marks count as whitespace.
func NormalizeText(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
