package dre

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separators become underscores in identifiers.
var separators = strings.NewReplacer(
	" ", "_",
	"/", "_",
	":", "_",
	",", "_",
	"?", "_",
	"(", "_",
	")", "_",
	".", "_",
	"-", "_",
	"–", "_",
	"'", "",
	"’", "",
)

// CleanName turns a statement line label into its account identifier:
// lowercase, accents stripped, separators replaced by "_" and runs of "_"
// collapsed. Leading and trailing underscores are kept, so
// "(+/-) Resultado Financeiro Líquido" becomes "_+_resultado_financeiro_liquido".
func CleanName(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = stripAccents(s)
	s = separators.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	prev := rune(0)
	for _, r := range s {
		if r == '_' && prev == '_' {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Title renders an identifier for display: underscores become spaces and
// words are title-cased.
func Title(identifier string) string {
	words := strings.FieldsFunc(identifier, func(r rune) bool { return r == '_' })
	// Casers are stateful and must not be shared between goroutines.
	return cases.Title(language.BrazilianPortuguese).String(strings.Join(words, " "))
}
