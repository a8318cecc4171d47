package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber reads a statement cell. Blank cells and a lone dash are 0.
// Both raw spreadsheet values ("1234.5", "-1.2E+3") and pt-BR formatted
// text ("1.234,56", "R$ (1.234,56)") are accepted. A value with a single
// dot and no comma is read as a decimal point.
func ParseNumber(s string) (float64, error) {
	raw := s
	s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" || s == "-" {
		return 0, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.ReplaceAll(s, " ", "")

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma > dot && strings.Count(s, ",") == 1:
		// pt-BR: dots group thousands, the comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		// en-US: commas group thousands.
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	if negative {
		v = -v
	}
	return v, nil
}
