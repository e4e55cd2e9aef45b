package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	punctuation = regexp.MustCompile(`[':!.,?]`)
	article     = regexp.MustCompile(`\bthe\s+`)
	spaces      = regexp.MustCompile(`\s+`)
)

// Normalize folds a title for comparison: lowercase, accents removed,
// punctuation and the article "the" dropped, whitespace collapsed.
func Normalize(title string) string {
	s := strings.ToLower(title)

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	s = punctuation.ReplaceAllString(s, "")
	s = article.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
