// Package transform maps backend trade records into display views and
// semantic drafts back into backend payloads.
package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/iter"

	"trade-journal/internal/models"
	"trade-journal/internal/spread"
	"trade-journal/pkg/utils"
)

// knownIndices are displayed as Index instruments; everything else is a Stock.
var knownIndices = map[string]bool{
	"NIFTY":      true,
	"BANKNIFTY":  true,
	"FINNIFTY":   true,
	"MIDCPNIFTY": true,
	"SENSEX":     true,
}

const zeroPercent = "0.0%"

// Transform builds the display view of a record. It never fails: malformed
// numeric fields are treated as zero.
func Transform(rec models.TradeRecord) models.TradeView {
	legs := Legs(rec.Strikes)
	capital := rec.Capital.Decimal()

	maxProfit, maxLoss := rec.MaxProfit.Decimal(), rec.MaxLoss.Decimal()
	if len(legs) >= 2 {
		maxProfit = spread.MaxProfit(legs, rec.Instrument)
		maxLoss = spread.MaxLoss(legs, rec.Instrument, rec.Strategy)
	}

	pnl := RealizedPnL(rec)
	lots := displayLots(rec, legs)

	return models.TradeView{
		ID:         rec.ID,
		Date:       displayDate(rec.CreatedAt),
		Instrument: instrumentLabel(rec.Instrument),
		Bias:       strings.ToLower(rec.Bias),
		Setup:      rec.Setup,
		Strategy:   rec.Strategy,
		Lots:       lots,
		Quantity:   fmt.Sprintf("%d Qty", lots*spread.QuantityMultiplier(rec.Instrument)),
		ProfitLoss: models.ProfitLoss{
			Amount:     pnl,
			Value:      utils.FormatSignedRupees(pnl),
			Percentage: signedPercentOf(pnl, capital),
			IsProfit:   !pnl.IsNegative(),
		},
		MaxProfit: models.Bound{
			Amount:     maxProfit,
			Value:      utils.FormatRupees(maxProfit),
			Percentage: percentOf(maxProfit, capital),
		},
		MaxLoss: models.Bound{
			Amount:     maxLoss,
			Value:      utils.FormatRupees(maxLoss),
			Percentage: percentOf(maxLoss, capital),
		},
		Ratio: Ratio(maxProfit, maxLoss),
		Capital: models.Money{
			Amount: capital,
			Value:  utils.FormatRupees(capital),
		},
		Status:      models.TradeStatus(strings.ToUpper(string(rec.Status))),
		ClosingDate: rec.ClosingDate,
		Notes:       rec.Notes,
		Legs:        legs,
	}
}

// TransformBatch transforms records in parallel, preserving input order.
func TransformBatch(records []models.TradeRecord) []models.TradeView {
	if len(records) == 0 {
		return []models.TradeView{}
	}
	return iter.Map(records, func(rec *models.TradeRecord) models.TradeView {
		return Transform(*rec)
	})
}

// Legs maps backend strike records to semantic legs.
func Legs(strikes []models.StrikeRecord) []models.StrikeLeg {
	legs := make([]models.StrikeLeg, 0, len(strikes))
	for _, s := range strikes {
		expiry, _ := utils.ParseTime(s.ExpiryDate)
		legs = append(legs, models.StrikeLeg{
			StrikePrice: s.StrikePrice.Decimal(),
			OptionType:  models.ParseOptionType(strings.ToUpper(strings.TrimSpace(s.OptionType))),
			Position:    models.ParsePosition(strings.ToUpper(strings.TrimSpace(s.Position))),
			Lots:        int(s.Lots),
			Premium:     s.LTP.Decimal(),
			ExpiryDate:  expiry,
		})
	}
	return legs
}

// RealizedPnL resolves the booked P&L of a record. Only closed trades have
// one. Closing a trade on the backend stores the user-entered P&L in
// max_profit, so that field is the fallback when actual_pnl is missing or "0".
func RealizedPnL(rec models.TradeRecord) decimal.Decimal {
	if !strings.EqualFold(string(rec.Status), string(models.StatusClosed)) {
		return decimal.Zero
	}
	if rec.ActualPnL.IsSet() && strings.TrimSpace(string(rec.ActualPnL)) != "0" {
		return rec.ActualPnL.Decimal()
	}
	if rec.MaxProfit.IsSet() {
		return rec.MaxProfit.Decimal()
	}
	return decimal.Zero
}

// Ratio returns the max-profit share of the split bar, clamped to [0,1].
// A non-positive denominator yields the midpoint.
func Ratio(maxProfit, maxLoss decimal.Decimal) float64 {
	total := maxProfit.Add(maxLoss)
	if !total.IsPositive() {
		return 0.5
	}
	r := maxProfit.Div(total).InexactFloat64()
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

func displayLots(rec models.TradeRecord, legs []models.StrikeLeg) int {
	if len(legs) > 0 && legs[0].Lots != 0 {
		return legs[0].Lots
	}
	return int(rec.MainLots)
}

func displayDate(createdAt string) models.DisplayDate {
	t, ok := utils.ParseTime(createdAt)
	if !ok {
		return models.DisplayDate{}
	}
	t = t.In(utils.IndiaLocation)
	return models.DisplayDate{
		Month: strings.ToUpper(t.Format("Jan")),
		Day:   t.Day(),
	}
}

func instrumentLabel(symbol string) models.InstrumentLabel {
	typ := models.InstrumentStock
	if knownIndices[strings.ToUpper(strings.TrimSpace(symbol))] {
		typ = models.InstrumentIndex
	}
	return models.InstrumentLabel{Name: symbol, Type: typ}
}

func percentOf(value, capital decimal.Decimal) string {
	if !capital.IsPositive() {
		return zeroPercent
	}
	return utils.FormatPercent(utils.Percent(value, capital))
}

func signedPercentOf(value, capital decimal.Decimal) string {
	if !capital.IsPositive() {
		return zeroPercent
	}
	return utils.FormatSignedPercent(utils.Percent(value, capital))
}
