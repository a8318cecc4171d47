package exporter

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"drecli/internal/dre"
)

// Style selects how numbers are written.
type Style int

const (
	// StylePlain writes machine-readable numbers separated by commas.
	StylePlain Style = iota
	// StyleBR writes pt-BR numbers ("1.234,56", "12,34%") separated by
	// semicolons, as Excel expects in a Brazilian locale.
	StyleBR
)

// ParseStyle maps "plain" and "br" to a Style.
func ParseStyle(s string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return StylePlain, true
	case "br", "pt-br", "pt_br":
		return StyleBR, true
	}
	return StylePlain, false
}

// Comma returns the field delimiter for the style.
func (s Style) Comma() rune {
	if s == StyleBR {
		return ';'
	}
	return ','
}

// amount formats a statement value; undefined values are empty.
func (s Style) amount(v float64) string {
	if dre.IsUndefined(v) {
		return ""
	}
	if s == StyleBR {
		return FormatBR(v)
	}
	return formatFloat(v, 2)
}

// ratio formats a share or ratio column; undefined values are empty.
func (s Style) ratio(v float64) string {
	if dre.IsUndefined(v) {
		return ""
	}
	if s == StyleBR {
		return FormatPercentBR(v)
	}
	return formatFloat(v, 6)
}

// FormatBR formats v with two decimals in pt-BR notation, e.g. 1.234,56.
func FormatBR(v float64) string {
	if dre.IsUndefined(v) {
		return ""
	}
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("%.2f", v)
}

// FormatPercentBR formats a fraction as a pt-BR percentage, e.g. 0.1234 as
// 12,34%.
func FormatPercentBR(v float64) string {
	if dre.IsUndefined(v) {
		return ""
	}
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("%.2f%%", v*100)
}

// formatFloat formats a float64 value for CSV output with a fixed number of
// decimal places.
func formatFloat(f float64, decimals int) string {
	return strconv.FormatFloat(f, 'f', decimals, 64)
}
