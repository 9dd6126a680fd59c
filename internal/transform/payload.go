package transform

import (
	"strings"

	"trade-journal/internal/models"
	"trade-journal/internal/spread"
	"trade-journal/pkg/utils"
)

// ToCreatePayload converts a draft into a POST body. When the draft carries a
// complete spread, max_profit and max_loss are derived from the legs unless
// the user supplied them.
func ToCreatePayload(d models.TradeDraft) models.TradePayload {
	bias := strings.ToUpper(string(d.Bias))
	maxProfit, maxLoss := d.MaxProfit, d.MaxLoss
	if _, _, ok := spread.Legs(d.Legs); ok {
		if maxProfit.IsZero() {
			maxProfit = spread.MaxProfit(d.Legs, d.Instrument)
		}
		if maxLoss.IsZero() {
			maxLoss = spread.MaxLoss(d.Legs, d.Instrument, d.Strategy)
		}
	}

	lots := d.MainLots
	if lots == 0 && len(d.Legs) > 0 {
		lots = d.Legs[0].Lots
	}

	capital := models.AmountOf(d.Capital)
	mp := models.AmountOf(maxProfit)
	ml := models.AmountOf(maxLoss)
	return models.TradePayload{
		Instrument: strPtr(strings.ToUpper(strings.TrimSpace(d.Instrument))),
		Bias:       &bias,
		Setup:      strPtr(d.Setup),
		Strategy:   strPtr(d.Strategy),
		Capital:    &capital,
		MaxProfit:  &mp,
		MaxLoss:    &ml,
		MainLots:   &lots,
		Status:     models.StatusActive,
		Notes:      strPtr(d.Notes),
		Strikes:    StrikePayloads(d.Legs),
	}
}

// ToUpdatePayload converts a partial update into a PUT body carrying only the
// fields that change.
func ToUpdatePayload(u models.TradeUpdate) models.TradePayload {
	var p models.TradePayload
	if u.Instrument != nil {
		p.Instrument = strPtr(strings.ToUpper(strings.TrimSpace(*u.Instrument)))
	}
	if u.Bias != nil {
		p.Bias = strPtr(strings.ToUpper(string(*u.Bias)))
	}
	p.Setup = u.Setup
	p.Strategy = u.Strategy
	p.Notes = u.Notes
	p.MainLots = u.MainLots
	if u.Capital != nil {
		a := models.AmountOf(*u.Capital)
		p.Capital = &a
	}
	if u.MaxProfit != nil {
		a := models.AmountOf(*u.MaxProfit)
		p.MaxProfit = &a
	}
	if u.MaxLoss != nil {
		a := models.AmountOf(*u.MaxLoss)
		p.MaxLoss = &a
	}
	if u.Legs != nil {
		p.Strikes = StrikePayloads(u.Legs)
	}
	return p
}

// ToClosePayload converts a close request into the PATCH body.
func ToClosePayload(c models.CloseRequest) models.ClosePayload {
	date := c.ClosingDate
	if date.IsZero() {
		date = utils.Today()
	}
	return models.ClosePayload{
		MaxProfit:   models.AmountOf(c.RealizedPnL),
		ClosingDate: utils.FormatISODate(date),
		Notes:       c.Notes,
		Status:      models.StatusClosed,
	}
}

// StrikePayloads maps semantic legs to backend legs.
func StrikePayloads(legs []models.StrikeLeg) []models.StrikePayload {
	out := make([]models.StrikePayload, 0, len(legs))
	for _, l := range legs {
		sp := models.StrikePayload{
			StrikePrice: models.AmountOf(l.StrikePrice),
			OptionType:  l.OptionType.WireCode(),
			Position:    l.Position.WireCode(),
			Lots:        l.Lots,
			LTP:         models.AmountOf(l.Premium),
		}
		if !l.ExpiryDate.IsZero() {
			sp.ExpiryDate = utils.FormatISODate(l.ExpiryDate)
		}
		out = append(out, sp)
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
