package importer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount parses a European-formatted amount ("1.234,56", "-12,50 €").
// Dots are thousand separators and the comma is the decimal point.
// Empty or unparseable input yields an invalid NullDecimal, never zero.
func ParseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}

	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	clean = nonNumeric.ReplaceAllString(clean, "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(d)
}
