// Package utils provides shared utility functions.
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatRupees formats an amount in Indian currency format with no decimal
// places, e.g. ₹1,00,000 or -₹4,000.
func FormatRupees(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	negative := rounded.IsNegative()
	formatted := "₹" + formatIndianNumber(rounded.Abs().String())
	if negative {
		return "-" + formatted
	}
	return formatted
}

// FormatSignedRupees is FormatRupees with an explicit + for non-negative
// amounts.
func FormatSignedRupees(amount decimal.Decimal) string {
	formatted := FormatRupees(amount)
	if !strings.HasPrefix(formatted, "-") {
		return "+" + formatted
	}
	return formatted
}

// formatIndianNumber formats an integer string in Indian numbering system.
// Indian system: 1,00,00,000 (1 crore) vs Western: 10,000,000
func formatIndianNumber(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	// First group of 3 from right (hundreds)
	result := s[n-3:]
	s = s[:n-3]

	// Then groups of 2 (thousands, lakhs, crores)
	for len(s) > 0 {
		if len(s) >= 2 {
			result = s[len(s)-2:] + "," + result
			s = s[:len(s)-2]
		} else {
			result = s + "," + result
			s = ""
		}
	}

	return result
}

// Percent returns value / base x 100. A base of zero or less yields zero.
func Percent(value, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return value.Div(base).Mul(hundred)
}

// FormatPercent formats a percentage with one decimal place, e.g. "12.5%".
func FormatPercent(pct decimal.Decimal) string {
	return fixed1(pct) + "%"
}

// FormatSignedPercent formats a percentage with one decimal place and an
// explicit + for non-negative values, e.g. "+3.0%".
func FormatSignedPercent(pct decimal.Decimal) string {
	return FormatSignedNumber(pct) + "%"
}

// FormatSignedNumber formats a value with one decimal place and an explicit
// + for non-negative values, e.g. "+6.0".
func FormatSignedNumber(v decimal.Decimal) string {
	s := fixed1(v)
	if !strings.HasPrefix(s, "-") {
		return "+" + s
	}
	return s
}

// fixed1 renders one decimal place without producing "-0.0".
func fixed1(v decimal.Decimal) string {
	rounded := v.Round(1)
	if rounded.IsZero() {
		return "0.0"
	}
	return rounded.StringFixed(1)
}

// FormatLakhs formats a number in lakhs.
func FormatLakhs(amount decimal.Decimal) string {
	return amount.Div(decimal.NewFromInt(100000)).StringFixed(2) + " L"
}

// FormatCrores formats a number in crores.
func FormatCrores(amount decimal.Decimal) string {
	return amount.Div(decimal.NewFromInt(10000000)).StringFixed(2) + " Cr"
}

// FormatCompact formats a number in compact form (L/Cr).
func FormatCompact(amount decimal.Decimal) string {
	abs := amount.Abs()
	if abs.GreaterThanOrEqual(decimal.NewFromInt(10000000)) {
		return FormatCrores(amount)
	} else if abs.GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		return FormatLakhs(amount)
	}
	return FormatRupees(amount)
}
