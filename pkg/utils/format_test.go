package utils

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0"},
		{"999", "₹999"},
		{"1000", "₹1,000"},
		{"100000", "₹1,00,000"},
		{"12345678", "₹1,23,45,678"},
		{"-4000", "-₹4,000"},
		{"1499.6", "₹1,500"},
		{"-0.4", "₹0"},
	}
	for _, tt := range tests {
		if got := FormatRupees(d(tt.in)); got != tt.want {
			t.Errorf("FormatRupees(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedRupees(t *testing.T) {
	if got := FormatSignedRupees(d("10000")); got != "+₹10,000" {
		t.Errorf("got %q", got)
	}
	if got := FormatSignedRupees(d("-4000")); got != "-₹4,000" {
		t.Errorf("got %q", got)
	}
	if got := FormatSignedRupees(decimal.Zero); got != "+₹0" {
		t.Errorf("got %q", got)
	}
}

func TestPercentFormatting(t *testing.T) {
	if got := FormatPercent(Percent(d("5625"), d("50000"))); got != "11.3%" {
		t.Errorf("FormatPercent = %q, want 11.3%%", got)
	}
	if got := FormatSignedPercent(Percent(d("-4000"), d("50000"))); got != "-8.0%" {
		t.Errorf("FormatSignedPercent = %q, want -8.0%%", got)
	}
	if got := FormatSignedNumber(Percent(d("6000"), d("100000"))); got != "+6.0" {
		t.Errorf("FormatSignedNumber = %q, want +6.0", got)
	}
	if got := FormatSignedNumber(d("-0.01")); got != "+0.0" {
		t.Errorf("tiny negative should not render as -0.0, got %q", got)
	}
	if got := Percent(d("100"), decimal.Zero); !got.IsZero() {
		t.Errorf("Percent with zero base = %s", got)
	}
	if got := Percent(d("100"), d("-10")); !got.IsZero() {
		t.Errorf("Percent with negative base = %s", got)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := map[string]string{
		"50000":     "₹50,000",
		"250000":    "2.50 L",
		"-250000":   "-2.50 L",
		"150000000": "15.00 Cr",
	}
	for in, want := range tests {
		if got := FormatCompact(d(in)); got != want {
			t.Errorf("FormatCompact(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestProperty_IndianRupeeFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	indianPattern := regexp.MustCompile(`^(\d{1,2},)*\d{1,3}$`)

	properties.Property("FormatRupees produces valid Indian grouping", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatRupees(decimal.NewFromFloat(amount))
			numPart := strings.TrimPrefix(formatted, "-")
			if !strings.HasPrefix(numPart, "₹") {
				t.Logf("missing ₹ prefix: %s", formatted)
				return false
			}
			numPart = strings.TrimPrefix(numPart, "₹")
			if !indianPattern.MatchString(numPart) {
				t.Logf("invalid Indian format for %f: %s", amount, formatted)
				return false
			}
			return true
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("FormatRupees preserves the rounded value", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatRupees(decimal.NewFromFloat(amount))
			cleaned := strings.NewReplacer("₹", "", ",", "").Replace(formatted)
			parsed, err := decimal.NewFromString(cleaned)
			if err != nil {
				return false
			}
			return math.Abs(parsed.InexactFloat64()-math.Round(amount)) <= 1
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}
