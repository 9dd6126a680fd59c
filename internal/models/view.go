package models

import "github.com/shopspring/decimal"

// TradeView is the display projection of a TradeRecord. It is rebuilt on every
// fetch and never mutated.
type TradeView struct {
	ID          int64           `json:"id"`
	Date        DisplayDate     `json:"date"`
	Instrument  InstrumentLabel `json:"instrument"`
	Bias        string          `json:"bias"`
	Setup       string          `json:"setup"`
	Strategy    string          `json:"strategy"`
	Lots        int             `json:"lots"`
	Quantity    string          `json:"quantity"`
	ProfitLoss  ProfitLoss      `json:"profitLoss"`
	MaxProfit   Bound           `json:"maxProfit"`
	MaxLoss     Bound           `json:"maxLoss"`
	Ratio       float64         `json:"ratio"`
	Capital     Money           `json:"capital"`
	Status      TradeStatus     `json:"status"`
	ClosingDate string          `json:"closingDate,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Legs        []StrikeLeg     `json:"legs"`
}

// DisplayDate is the calendar badge derived from created_at.
type DisplayDate struct {
	Month string `json:"month"`
	Day   int    `json:"day"`
}

// InstrumentLabel names an instrument and its type.
type InstrumentLabel struct {
	Name string         `json:"name"`
	Type InstrumentType `json:"type"`
}

// Money pairs an amount with its formatted form.
type Money struct {
	Amount decimal.Decimal `json:"amount"`
	Value  string          `json:"value"`
}

// ProfitLoss is the realized P&L of a trade.
type ProfitLoss struct {
	Amount     decimal.Decimal `json:"amount"`
	Value      string          `json:"value"`
	Percentage string          `json:"percentage"`
	IsProfit   bool            `json:"isProfit"`
}

// Bound is a theoretical max-profit or max-loss figure.
type Bound struct {
	Amount     decimal.Decimal `json:"amount"`
	Value      string          `json:"value"`
	Percentage string          `json:"percentage"`
}

// IsClosed reports whether the trade has been closed.
func (v TradeView) IsClosed() bool {
	return v.Status == StatusClosed
}
