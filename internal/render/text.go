// Package render provides text cleanup for status bar output.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (newlines included) and invalid
// UTF-8 bytes. Status bars expect a single line per update.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			// Invalid byte, skip it
			i++
			continue
		}
		if r != '\t' && unicode.IsControl(r) {
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// needsSanitize returns true if the string contains bytes that need sanitizing.
func needsSanitize(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' || b == 0x7f { // ASCII control chars (except tab)
			return true
		}
		if b == 0xc2 && i+1 < len(s) && s[i+1] <= 0x9f { // C1 controls
			return true
		}
	}
	return false
}

// Truncate shortens s to at most maxWidth display cells, ending with an
// ellipsis when cut. A maxWidth of zero or less disables truncation.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 || Width(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// Width returns the display width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}
