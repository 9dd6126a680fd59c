package transform

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

func TestToCreatePayloadDerivesBounds(t *testing.T) {
	expiry := time.Date(2025, time.January, 30, 0, 0, 0, 0, utils.IndiaLocation)
	draft := models.TradeDraft{
		Instrument: " nifty ",
		Bias:       "bullish",
		Setup:      "Support bounce",
		Strategy:   models.StrategyBullPutSpread,
		Capital:    decimal.NewFromInt(50000),
		Legs: []models.StrikeLeg{
			{StrikePrice: decimal.NewFromInt(100), OptionType: models.OptionPut, Position: models.PositionBuy, Lots: 5, Premium: decimal.NewFromInt(10), ExpiryDate: expiry},
			{StrikePrice: decimal.NewFromInt(120), OptionType: models.OptionPut, Position: models.PositionSell, Lots: 5, Premium: decimal.NewFromInt(25), ExpiryDate: expiry},
		},
	}

	p := ToCreatePayload(draft)
	if *p.Instrument != "NIFTY" || *p.Bias != "BULLISH" || p.Status != models.StatusActive {
		t.Errorf("header fields = %s/%s/%s", *p.Instrument, *p.Bias, p.Status)
	}
	if *p.MaxProfit != "5625.00" || *p.MaxLoss != "1875.00" || *p.Capital != "50000.00" {
		t.Errorf("amounts = %s/%s/%s", *p.MaxProfit, *p.MaxLoss, *p.Capital)
	}
	if *p.MainLots != 5 {
		t.Errorf("main lots = %d, want first leg lots", *p.MainLots)
	}
	if len(p.Strikes) != 2 || p.Strikes[0].Position != "B" || p.Strikes[1].Position != "S" ||
		p.Strikes[0].OptionType != "PE" || p.Strikes[0].ExpiryDate != "2025-01-30" {
		t.Errorf("strikes = %+v", p.Strikes)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"instrument", "bias", "setup", "strategy", "capital", "max_profit", "max_loss", "main_lots", "status", "strikes"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("payload missing %q: %s", key, raw)
		}
	}
}

func TestToCreatePayloadKeepsUserBounds(t *testing.T) {
	draft := models.TradeDraft{
		Instrument: "TCS",
		Bias:       models.BiasNeutral,
		Capital:    decimal.NewFromInt(1000),
		MaxProfit:  decimal.NewFromInt(300),
		MaxLoss:    decimal.NewFromInt(700),
		MainLots:   2,
	}
	p := ToCreatePayload(draft)
	if *p.MaxProfit != "300.00" || *p.MaxLoss != "700.00" || *p.MainLots != 2 || len(p.Strikes) != 0 {
		t.Errorf("payload = %+v", p)
	}
}

func TestToUpdatePayloadOnlySetFields(t *testing.T) {
	notes := "rolled"
	capital := decimal.NewFromInt(60000)
	p := ToUpdatePayload(models.TradeUpdate{Notes: &notes, Capital: &capital})

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || decoded["notes"] != "rolled" || decoded["capital"] != "60000.00" {
		t.Errorf("update payload = %s", raw)
	}
}

func TestToClosePayload(t *testing.T) {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, utils.IndiaLocation)
	p := ToClosePayload(models.CloseRequest{
		RealizedPnL: decimal.RequireFromString("-1250.5"),
		ClosingDate: day,
		Notes:       "stopped out",
	})
	if p.MaxProfit != "-1250.50" || p.ClosingDate != "2025-03-03" || p.Status != models.StatusClosed || p.Notes != "stopped out" {
		t.Errorf("close payload = %+v", p)
	}

	if p := ToClosePayload(models.CloseRequest{}); p.ClosingDate != utils.FormatISODate(utils.Today()) {
		t.Errorf("default closing date = %s", p.ClosingDate)
	}
}

func TestPayloadRoundTripsThroughTransform(t *testing.T) {
	legs := []models.StrikeLeg{
		{StrikePrice: decimal.NewFromInt(22000), OptionType: models.OptionCall, Position: models.PositionSell, Lots: 1, Premium: decimal.NewFromInt(140)},
		{StrikePrice: decimal.NewFromInt(22100), OptionType: models.OptionCall, Position: models.PositionBuy, Lots: 1, Premium: decimal.NewFromInt(100)},
	}
	var strikes []models.StrikeRecord
	for _, sp := range StrikePayloads(legs) {
		strikes = append(strikes, models.StrikeRecord{
			StrikePrice: sp.StrikePrice,
			OptionType:  sp.OptionType,
			Position:    sp.Position,
			Lots:        models.Lots(sp.Lots),
			LTP:         sp.LTP,
		})
	}
	back := Legs(strikes)
	for i := range legs {
		if back[i].Position != legs[i].Position || back[i].OptionType != legs[i].OptionType ||
			!back[i].StrikePrice.Equal(legs[i].StrikePrice) || !back[i].Premium.Equal(legs[i].Premium) {
			t.Errorf("leg %d: %+v != %+v", i, back[i], legs[i])
		}
	}
}
