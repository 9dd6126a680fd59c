// Package spread derives currency P&L bounds for two-leg option spreads.
package spread

import "strings"

// BullPutSpreadMultiplier is applied by the bull-put-spread loss branch
// regardless of instrument.
const BullPutSpreadMultiplier = 75

type multiplierRule struct {
	contains   string
	multiplier int
}

// Rules are evaluated in order; BANKNIFTY and FINNIFTY come before the generic
// NIFTY substring they contain.
var (
	profitRules = []multiplierRule{
		{"BANKNIFTY", 35},
		{"NIFTY", 75},
		{"SENSEX", 20},
	}

	quantityRules = []multiplierRule{
		{"BANKNIFTY", 30},
		{"FINNIFTY", 40},
		{"NIFTY", 75},
		{"SENSEX", 10},
	}
)

// ProfitMultiplier returns the lot multiplier used to convert premium
// differences into currency for max-profit and max-loss.
func ProfitMultiplier(symbol string) int {
	return lookup(profitRules, symbol)
}

// QuantityMultiplier returns the lot multiplier used for the display
// quantity. It intentionally differs from ProfitMultiplier for BANKNIFTY and
// SENSEX.
func QuantityMultiplier(symbol string) int {
	return lookup(quantityRules, symbol)
}

func lookup(rules []multiplierRule, symbol string) int {
	upper := strings.ToUpper(symbol)
	for _, r := range rules {
		if strings.Contains(upper, r.contains) {
			return r.multiplier
		}
	}
	return 1
}
