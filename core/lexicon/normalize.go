package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case, strips diacritics and periods and collapses whitespace.
// "São Paulo" and "SAO  PAULO" both normalize to "sao paulo", "U.S." to "us".
func Normalize(s string) string {
	// transformers hold state, build a fresh chain per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}

	folded := cases.Fold().String(stripped)
	folded = strings.ReplaceAll(folded, ".", "")

	return strings.Join(strings.Fields(folded), " ")
}

// NormalizeTokens normalizes every token and drops the ones that become empty
func NormalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if n := Normalize(token); n != "" {
			out = append(out, n)
		}
	}
	return out
}
