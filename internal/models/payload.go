package models

// TradePayload is the backend form of a create or update request. Update
// requests send only the fields that are set.
type TradePayload struct {
	Instrument *string         `json:"instrument,omitempty"`
	Bias       *string         `json:"bias,omitempty"`
	Setup      *string         `json:"setup,omitempty"`
	Strategy   *string         `json:"strategy,omitempty"`
	Capital    *Amount         `json:"capital,omitempty"`
	MaxProfit  *Amount         `json:"max_profit,omitempty"`
	MaxLoss    *Amount         `json:"max_loss,omitempty"`
	MainLots   *int            `json:"main_lots,omitempty"`
	Status     TradeStatus     `json:"status,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	Strikes    []StrikePayload `json:"strikes,omitempty"`
}

// StrikePayload is the backend form of a leg in a request.
type StrikePayload struct {
	StrikePrice Amount `json:"strike_price"`
	OptionType  string `json:"option_type"`
	Position    string `json:"position"`
	Lots        int    `json:"lots"`
	LTP         Amount `json:"ltp"`
	ExpiryDate  string `json:"expiry_date,omitempty"`
}

// ClosePayload is the PATCH body that closes a trade. The realized P&L
// travels in max_profit.
type ClosePayload struct {
	MaxProfit   Amount      `json:"max_profit"`
	ClosingDate string      `json:"closing_date"`
	Notes       string      `json:"notes"`
	Status      TradeStatus `json:"status"`
}
