package spread

import (
	"github.com/shopspring/decimal"

	"trade-journal/internal/models"
)

// Legs returns the first Buy and first Sell leg. ok is false when fewer than
// two legs are given or either side is missing.
func Legs(legs []models.StrikeLeg) (buy, sell models.StrikeLeg, ok bool) {
	if len(legs) < 2 {
		return buy, sell, false
	}
	var haveBuy, haveSell bool
	for _, leg := range legs {
		switch leg.Position {
		case models.PositionBuy:
			if !haveBuy {
				buy, haveBuy = leg, true
			}
		case models.PositionSell:
			if !haveSell {
				sell, haveSell = leg, true
			}
		}
	}
	return buy, sell, haveBuy && haveSell
}

// MaxProfit returns (sell premium - buy premium) x buy lots x multiplier.
// Only the Buy leg's lot count is used. The result keeps its sign and is zero
// for an incomplete spread.
func MaxProfit(legs []models.StrikeLeg, symbol string) decimal.Decimal {
	buy, sell, ok := Legs(legs)
	if !ok {
		return decimal.Zero
	}
	return sell.Premium.Sub(buy.Premium).
		Mul(decimal.NewFromInt(int64(buy.Lots))).
		Mul(decimal.NewFromInt(int64(ProfitMultiplier(symbol))))
}

// MaxLoss returns (strike width - net premium) x buy lots x multiplier, where
// the strike width and multiplier depend on the strategy label. Unknown labels
// use the default branch. The result is not clamped and may be negative.
func MaxLoss(legs []models.StrikeLeg, symbol, strategy string) decimal.Decimal {
	buy, sell, ok := Legs(legs)
	if !ok {
		return decimal.Zero
	}

	premiumDiff := sell.Premium.Sub(buy.Premium)
	lots := decimal.NewFromInt(int64(buy.Lots))

	var strikeDiff decimal.Decimal
	multiplier := ProfitMultiplier(symbol)
	switch strategy {
	case models.StrategyBullPutSpread:
		strikeDiff = sell.StrikePrice.Sub(buy.StrikePrice)
		multiplier = BullPutSpreadMultiplier
	case models.StrategyBearCallSpread:
		strikeDiff = buy.StrikePrice.Sub(sell.StrikePrice)
	default:
		strikeDiff = sell.StrikePrice.Sub(buy.StrikePrice)
	}

	return strikeDiff.Sub(premiumDiff).
		Mul(lots).
		Mul(decimal.NewFromInt(int64(multiplier)))
}
