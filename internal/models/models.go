// Package models provides domain models for the trading journal.
package models

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	StatusActive TradeStatus = "ACTIVE"
	StatusClosed TradeStatus = "CLOSED"
)

// Bias represents the directional view of a trade.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// LegPosition represents the direction of a spread leg.
type LegPosition string

const (
	PositionBuy  LegPosition = "BUY"
	PositionSell LegPosition = "SELL"
)

// Wire codes used by the backend for leg positions.
const (
	WireBuy  = "B"
	WireSell = "S"
)

// OptionType represents the contract type of a leg.
type OptionType string

const (
	OptionCall OptionType = "CALL"
	OptionPut  OptionType = "PUT"
)

// Wire codes used by the backend for option types.
const (
	WireCall = "CE"
	WirePut  = "PE"
)

// InstrumentType classifies an instrument for display.
type InstrumentType string

const (
	InstrumentIndex InstrumentType = "Index"
	InstrumentStock InstrumentType = "Stock"
)

// Strategy labels that select a max-loss branch.
const (
	StrategyBullPutSpread  = "Bull put spread"
	StrategyBearCallSpread = "Bear call spread"
)

// ParsePosition maps a wire or semantic position code to a LegPosition.
// Unknown codes return an empty position.
func ParsePosition(code string) LegPosition {
	switch code {
	case WireBuy, "b", string(PositionBuy), "Buy", "buy":
		return PositionBuy
	case WireSell, "s", string(PositionSell), "Sell", "sell":
		return PositionSell
	}
	return ""
}

// WireCode returns the backend code for the position.
func (p LegPosition) WireCode() string {
	switch p {
	case PositionBuy:
		return WireBuy
	case PositionSell:
		return WireSell
	}
	return ""
}

// ParseOptionType maps a wire or semantic option type to an OptionType.
func ParseOptionType(code string) OptionType {
	switch code {
	case WireCall, "ce", string(OptionCall), "Call", "call":
		return OptionCall
	case WirePut, "pe", string(OptionPut), "Put", "put":
		return OptionPut
	}
	return ""
}

// WireCode returns the backend code for the option type.
func (o OptionType) WireCode() string {
	switch o {
	case OptionCall:
		return WireCall
	case OptionPut:
		return WirePut
	}
	return ""
}
