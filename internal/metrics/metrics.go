// Package metrics folds trade views into dashboard aggregates.
package metrics

import (
	"github.com/shopspring/decimal"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// Background hints for the summary panel.
const (
	ProfitColor = "#E8F5E9"
	LossColor   = "#FFEBEE"
)

// Summary is the aggregate over one tab of trades.
type Summary struct {
	TotalTrades      int             `json:"totalTrades"`
	TotalPnL         decimal.Decimal `json:"totalPnL"`
	DeployedCapital  decimal.Decimal `json:"deployedCapital"`
	PercentageReturn string          `json:"percentageReturn"`
	TotalMaxProfit   decimal.Decimal `json:"totalMaxProfit"`
	TotalMaxLoss     decimal.Decimal `json:"totalMaxLoss"`
	CurrentCapital   decimal.Decimal `json:"currentCapital"`
	BuyingPowerUsed  decimal.Decimal `json:"buyingPowerUsed"`
	DeployedPercent  decimal.Decimal `json:"deployedPercent"`
	TotalRisk        decimal.Decimal `json:"totalRisk"`
	IsProfitable     bool            `json:"isProfitable"`
	BackgroundColor  string          `json:"backgroundColor"`
}

// displayed is the whole-rupee figure a view shows for amount. Totals are
// folded from these so they match the sum of the rows on screen.
func displayed(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}

// CurrentCapital is the baseline plus realized P&L of closed trades. It does
// not depend on which tab is being summarised.
func CurrentCapital(baseline decimal.Decimal, all []models.TradeView) decimal.Decimal {
	current := baseline
	for _, v := range all {
		if v.IsClosed() {
			current = current.Add(displayed(v.ProfitLoss.Amount))
		}
	}
	return current
}

// Aggregate summarises the filtered trades against the running capital.
func Aggregate(trades []models.TradeView, currentCapital decimal.Decimal) Summary {
	s := Summary{
		TotalTrades:     len(trades),
		TotalPnL:        decimal.Zero,
		DeployedCapital: decimal.Zero,
		TotalMaxProfit:  decimal.Zero,
		TotalMaxLoss:    decimal.Zero,
		CurrentCapital:  currentCapital,
	}

	for _, v := range trades {
		s.TotalPnL = s.TotalPnL.Add(displayed(v.ProfitLoss.Amount))
		s.DeployedCapital = s.DeployedCapital.Add(displayed(v.Capital.Amount))
		s.TotalMaxProfit = s.TotalMaxProfit.Add(displayed(v.MaxProfit.Amount).Abs())
		s.TotalMaxLoss = s.TotalMaxLoss.Add(displayed(v.MaxLoss.Amount))
	}

	s.PercentageReturn = utils.FormatSignedNumber(utils.Percent(s.TotalPnL, s.DeployedCapital))
	s.BuyingPowerUsed = currentCapital.Sub(s.DeployedCapital)
	s.DeployedPercent = utils.Percent(s.DeployedCapital, currentCapital)
	s.TotalRisk = utils.Percent(s.TotalMaxLoss, currentCapital)

	s.IsProfitable = !s.TotalPnL.IsNegative()
	s.BackgroundColor = LossColor
	if s.IsProfitable {
		s.BackgroundColor = ProfitColor
	}
	return s
}
