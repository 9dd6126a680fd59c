package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Amount is a string-encoded decimal as sent by the backend. It accepts JSON
// strings, numbers and null; null decodes to the empty string.
type Amount string

// UnmarshalJSON accepts any JSON scalar.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*a = ""
		return nil
	}
	*a = Amount(cast.ToString(v))
	return nil
}

// MarshalJSON writes the amount as a JSON string, or null when empty.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(a))
}

// IsSet reports whether the backend supplied a value.
func (a Amount) IsSet() bool {
	return strings.TrimSpace(string(a)) != ""
}

// Decimal parses the amount, tolerating currency symbols and grouping
// separators. Anything unparsable is zero.
func (a Amount) Decimal() decimal.Decimal {
	return ParseDecimal(string(a))
}

// AmountOf encodes a decimal the way the backend stores it.
func AmountOf(d decimal.Decimal) Amount {
	return Amount(d.StringFixed(2))
}

// ParseDecimal parses s as a decimal, returning zero on failure.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Lots is an integer count that the backend may send as a number or string.
// Unparsable values decode to zero.
type Lots int

// UnmarshalJSON accepts any JSON scalar.
func (l *Lots) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var n int
	if str, ok := v.(string); ok {
		// decimal, so "010" is ten and "5.0" is five
		n = int(ParseDecimal(str).IntPart())
	} else {
		n = cast.ToInt(v)
	}
	if n < 0 {
		n = 0
	}
	*l = Lots(n)
	return nil
}
