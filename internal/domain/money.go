package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// The API encodes money as decimal strings ("19.99"); everything in this
// package works in integer cents. These two helpers are the only conversion
// points.

// CentsFromDecimal parses a decimal amount with up to two fraction digits.
func CentsFromDecimal(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q: too many fraction digits", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	negative := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")
	if whole == "" {
		whole = "0"
	}
	cents, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	if negative {
		cents = -cents
	}
	return cents, nil
}

// DecimalFromCents renders cents as a two-fraction-digit decimal string.
func DecimalFromCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
