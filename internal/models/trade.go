package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is a trade as persisted by the backend.
type TradeRecord struct {
	ID          int64          `json:"id"`
	Instrument  string         `json:"instrument"`
	Bias        string         `json:"bias"`
	Setup       string         `json:"setup"`
	Strategy    string         `json:"strategy"`
	Capital     Amount         `json:"capital"`
	MaxProfit   Amount         `json:"max_profit"`
	MaxLoss     Amount         `json:"max_loss"`
	ActualPnL   Amount         `json:"actual_pnl"`
	MainLots    Lots           `json:"main_lots"`
	Status      TradeStatus    `json:"status"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	ClosingDate string         `json:"closing_date,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Strikes     []StrikeRecord `json:"strikes"`
}

// StrikeRecord is one spread leg in backend form.
type StrikeRecord struct {
	StrikePrice Amount `json:"strike_price"`
	OptionType  string `json:"option_type"`
	Position    string `json:"position"` // "B" or "S"
	Lots        Lots   `json:"lots"`
	LTP         Amount `json:"ltp"`
	ExpiryDate  string `json:"expiry_date"`
}

// StrikeLeg is one leg of a two-leg options spread.
type StrikeLeg struct {
	StrikePrice decimal.Decimal `json:"strikePrice" validate:"-"`
	OptionType  OptionType      `json:"optionType" validate:"oneof=CALL PUT"`
	Position    LegPosition     `json:"position" validate:"oneof=BUY SELL"`
	Lots        int             `json:"lots" validate:"gte=0"`
	Premium     decimal.Decimal `json:"premium" validate:"-"`
	ExpiryDate  time.Time       `json:"expiryDate" validate:"-"`
}

// TradeDraft is a new trade as entered by the user.
type TradeDraft struct {
	Instrument string          `validate:"required"`
	Bias       Bias            `validate:"required,oneof=BULLISH BEARISH NEUTRAL"`
	Setup      string          `validate:"required"`
	Strategy   string          `validate:"required"`
	Capital    decimal.Decimal `validate:"-"`
	MainLots   int             `validate:"gte=0"`
	MaxProfit  decimal.Decimal `validate:"-"`
	MaxLoss    decimal.Decimal `validate:"-"`
	Notes      string
	Legs       []StrikeLeg `validate:"dive"`
}

// TradeUpdate is a partial modification. Nil fields are left unchanged.
type TradeUpdate struct {
	Instrument *string
	Bias       *Bias
	Setup      *string
	Strategy   *string
	Capital    *decimal.Decimal
	MainLots   *int
	MaxProfit  *decimal.Decimal
	MaxLoss    *decimal.Decimal
	Notes      *string
	Legs       []StrikeLeg
}

// IsEmpty reports whether the update changes nothing.
func (u TradeUpdate) IsEmpty() bool {
	return u.Instrument == nil && u.Bias == nil && u.Setup == nil && u.Strategy == nil &&
		u.Capital == nil && u.MainLots == nil && u.MaxProfit == nil && u.MaxLoss == nil &&
		u.Notes == nil && u.Legs == nil
}

// CloseRequest books the realized P&L of an active trade.
type CloseRequest struct {
	RealizedPnL decimal.Decimal
	ClosingDate time.Time
	Notes       string
}
