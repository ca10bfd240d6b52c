// Package textnorm holds the text folding used for comparisons and cache keys.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"ʼ", "'",
	"`", "'",
	"´", "'",
)

var separators = strings.NewReplacer("-", " ", "_", " ")

// Sanitize drops non-printable runes (newline and tab survive), collapses
// whitespace runs to a single space and trims.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}

// StripMarks decomposes s and removes combining marks: "Lómbardia" -> "Lombardia".
func StripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold normalizes s for equality and similarity checks: lower case, no
// diacritics, straight apostrophes, "-" and "_" as spaces, single spacing.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = StripMarks(s)
	s = apostrophes.Replace(s)
	s = separators.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Key returns a lower-cased, trimmed prefix of at most n runes.
func Key(s string, n int) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
