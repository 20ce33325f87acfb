// Package core provides the reconciliation domain: parsed expenses, their
// classification, and the monetary conventions shared by every stage.
//
// This file holds amount parsing and comparison. Amounts are signed float64
// decimals; comparisons absorb floating-point noise with a small epsilon.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Epsilon is the threshold under which two monetary sums are considered
// equal. A recurring expectation missing less than this is fully satisfied.
const Epsilon = 0.005

// ParseAmount converts a raw CSV amount to a signed decimal.
//
// Thousands separators (commas) are stripped, and an outer-parenthesized
// value follows the accounting convention for negatives:
//
//	ParseAmount("1,234.56") -> 1234.56, nil
//	ParseAmount("(50.00)")  -> -50.00, nil
//	ParseAmount("-10")      -> -10.00, nil
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrParse)
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 2 {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrParse, raw)
	}
	if negative {
		f = -f
	}
	return f, nil
}

// MoneyEqual reports whether two amounts are equal within Epsilon.
func MoneyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// FormatAmount renders an amount the way it appears in sheet formulas, with
// no trailing zeros beyond what the value needs.
func FormatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
