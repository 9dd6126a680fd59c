package cli

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// parseID parses a trade id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("id", arg, "must be a positive integer")
	}
	return id, nil
}

// parseAmount parses a rupee amount flag. Commas and the rupee sign are
// accepted.
func parseAmount(field, s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "₹", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(strings.TrimPrefix(clean, "+"))
	if err != nil {
		return decimal.Zero, errors.NewValidationError(field, s, "not a number")
	}
	return d, nil
}

// parseLeg parses POSITION:TYPE:STRIKE:PREMIUM[:LOTS[:EXPIRY]], e.g.
// B:CE:22000:120:1:2025-01-30. Lots default to 1.
func parseLeg(spec string) (models.StrikeLeg, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) < 4 || len(parts) > 6 {
		return models.StrikeLeg{}, errors.NewValidationError("leg", spec, "want POSITION:TYPE:STRIKE:PREMIUM[:LOTS[:EXPIRY]]")
	}

	leg := models.StrikeLeg{
		Position:   models.ParsePosition(strings.ToUpper(parts[0])),
		OptionType: models.ParseOptionType(strings.ToUpper(parts[1])),
		Lots:       1,
	}
	if leg.Position == "" {
		return leg, errors.NewValidationError("leg.position", parts[0], "want B or S")
	}
	if leg.OptionType == "" {
		return leg, errors.NewValidationError("leg.type", parts[1], "want CE or PE")
	}

	var err error
	if leg.StrikePrice, err = parseAmount("leg.strike", parts[2]); err != nil {
		return leg, err
	}
	if leg.Premium, err = parseAmount("leg.premium", parts[3]); err != nil {
		return leg, err
	}
	if len(parts) >= 5 && parts[4] != "" {
		lots, err := strconv.Atoi(parts[4])
		if err != nil {
			return leg, errors.NewValidationError("leg.lots", parts[4], "not an integer")
		}
		leg.Lots = lots
	}
	if len(parts) == 6 && parts[5] != "" {
		expiry, ok := utils.ParseTime(parts[5])
		if !ok {
			return leg, errors.NewValidationError("leg.expiry", parts[5], "want YYYY-MM-DD")
		}
		leg.ExpiryDate = expiry
	}
	return leg, nil
}

func parseLegs(specs []string) ([]models.StrikeLeg, error) {
	legs := make([]models.StrikeLeg, 0, len(specs))
	for _, s := range specs {
		leg, err := parseLeg(s)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// TruncateString truncates a string to max runes.
func TruncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
