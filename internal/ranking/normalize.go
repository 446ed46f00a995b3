package ranking

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize splits text into comparison tokens.
//
// Accented letters are folded to their base letter (NFD decomposition with
// combining marks removed), every run of characters other than ASCII letters
// and digits acts as a single separator, and empty tokens are dropped. Case
// is preserved. Text without any letter or digit yields no tokens.
func Normalize(text string) []string {
	return strings.FieldsFunc(foldDiacritics(text), isSeparator)
}

func foldDiacritics(s string) string {
	// A chained transformer keeps internal buffers, build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func isSeparator(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return false
	}
	return true
}
