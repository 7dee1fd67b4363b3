package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures and symbols that decomposition alone cannot reduce to ASCII
var asciiReplacer = strings.NewReplacer(
	"œ", "oe", "Œ", "OE",
	"æ", "ae", "Æ", "AE",
	"€", "EUR",
	"’", "'", "‘", "'",
	"“", "\"", "”", "\"",
	"«", "\"", "»", "\"",
	"\u00a0", " ",
)

// SafeText transliterates s to printable ASCII for the PDF core fonts:
// accents are stripped, ligatures expanded, anything else becomes '?'.
func SafeText(s string) string {
	s = asciiReplacer.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r > 0x7e:
			return '?'
		}
		return r
	}, stripped)
}

// Filename returns the download name of a company report
func Filename(company string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(SafeText(company)), "-"))
	slug = strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, slug)
	if slug == "" {
		slug = "entreprise"
	}
	return "ia-booster-rapport-" + slug + ".pdf"
}
