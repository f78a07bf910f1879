package pdfdoc

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// latin1Text prepares text for the core PDF fonts, which only cover ISO-8859-1.
// It counts the words that had to be altered.
type latin1Text struct {
	words    int
	failures int
}

// prepare returns s with every rune outside ISO-8859-1 replaced by '?'.
// The result is still UTF-8 so it can be measured and wrapped.
func (t *latin1Text) prepare(s string) string {
	words := strings.Fields(s)
	t.words += len(words)
	for _, w := range words {
		if !representable(w) {
			t.failures++
		}
	}
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
}

// encode converts prepared UTF-8 text to the ISO-8859-1 bytes fpdf writes out
func (t *latin1Text) encode(s string) string {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	return latin1
}

func representable(word string) bool {
	for _, r := range word {
		if r > 0xFF {
			return false
		}
	}
	return true
}
