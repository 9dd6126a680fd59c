package metrics

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"trade-journal/internal/models"
	"trade-journal/internal/transform"
)

func view(status models.TradeStatus, pnl, capital, maxProfit, maxLoss int64) models.TradeView {
	return models.TradeView{
		Status:     status,
		ProfitLoss: models.ProfitLoss{Amount: decimal.NewFromInt(pnl)},
		Capital:    models.Money{Amount: decimal.NewFromInt(capital)},
		MaxProfit:  models.Bound{Amount: decimal.NewFromInt(maxProfit)},
		MaxLoss:    models.Bound{Amount: decimal.NewFromInt(maxLoss)},
	}
}

func TestAggregateClosedTradesScenario(t *testing.T) {
	records := []models.TradeRecord{
		{ID: 1, Instrument: "NIFTY", Status: models.StatusClosed, Capital: "50000", ActualPnL: "10000"},
		{ID: 2, Instrument: "NIFTY", Status: models.StatusClosed, Capital: "50000", ActualPnL: "0", MaxProfit: "-4000"},
	}
	views := transform.TransformBatch(records)

	current := CurrentCapital(decimal.NewFromInt(200000), views)
	s := Aggregate(views, current)

	if s.TotalTrades != 2 {
		t.Errorf("TotalTrades = %d", s.TotalTrades)
	}
	if !s.TotalPnL.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("TotalPnL = %s, want 6000", s.TotalPnL)
	}
	if s.PercentageReturn != "+6.0" {
		t.Errorf("PercentageReturn = %q, want +6.0", s.PercentageReturn)
	}
	if !s.DeployedCapital.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("DeployedCapital = %s", s.DeployedCapital)
	}
	if !s.CurrentCapital.Equal(decimal.NewFromInt(206000)) {
		t.Errorf("CurrentCapital = %s, want 206000", s.CurrentCapital)
	}
	if !s.BuyingPowerUsed.Equal(decimal.NewFromInt(106000)) {
		t.Errorf("BuyingPowerUsed = %s, want 106000", s.BuyingPowerUsed)
	}
	if !s.IsProfitable || s.BackgroundColor != ProfitColor {
		t.Errorf("profitable = %v color = %s", s.IsProfitable, s.BackgroundColor)
	}
}

func TestAggregateBoundsAndRisk(t *testing.T) {
	trades := []models.TradeView{
		view(models.StatusActive, 0, 40000, -3000, 2000),
		view(models.StatusActive, 0, 60000, 5000, -500),
	}
	s := Aggregate(trades, decimal.NewFromInt(150000))

	// profit is summed as magnitude, loss keeps its sign
	if !s.TotalMaxProfit.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("TotalMaxProfit = %s, want 8000", s.TotalMaxProfit)
	}
	if !s.TotalMaxLoss.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("TotalMaxLoss = %s, want 1500", s.TotalMaxLoss)
	}
	if !s.TotalRisk.Equal(decimal.NewFromInt(1)) {
		t.Errorf("TotalRisk = %s, want 1", s.TotalRisk)
	}
	if !s.BuyingPowerUsed.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("BuyingPowerUsed = %s, want 50000", s.BuyingPowerUsed)
	}
	if s.PercentageReturn != "+0.0" {
		t.Errorf("PercentageReturn = %q", s.PercentageReturn)
	}
}

func TestAggregateLossAndEmpty(t *testing.T) {
	s := Aggregate([]models.TradeView{view(models.StatusClosed, -2500, 50000, 0, 0)}, decimal.NewFromInt(100000))
	if s.IsProfitable || s.BackgroundColor != LossColor || s.PercentageReturn != "-5.0" {
		t.Errorf("loss summary = %+v", s)
	}

	empty := Aggregate(nil, decimal.Zero)
	if empty.TotalTrades != 0 || empty.PercentageReturn != "+0.0" || !empty.TotalRisk.IsZero() || !empty.DeployedPercent.IsZero() {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestCurrentCapitalIgnoresActiveTrades(t *testing.T) {
	all := []models.TradeView{
		view(models.StatusClosed, 1000, 0, 0, 0),
		view(models.StatusActive, 9999, 0, 0, 0),
		view(models.StatusClosed, -300, 0, 0, 0),
	}
	if got := CurrentCapital(decimal.NewFromInt(10000), all); !got.Equal(decimal.NewFromInt(10700)) {
		t.Errorf("CurrentCapital = %s, want 10700", got)
	}
}

func TestAggregateMatchesDisplayedRows(t *testing.T) {
	records := []models.TradeRecord{
		{ID: 1, Instrument: "NIFTY", Status: models.StatusClosed, Capital: "10", ActualPnL: "0.6", MaxLoss: "0.4"},
		{ID: 2, Instrument: "NIFTY", Status: models.StatusClosed, Capital: "10", ActualPnL: "0.6", MaxLoss: "0.4"},
	}
	views := transform.TransformBatch(records)

	rowSum := decimal.Zero
	for _, v := range views {
		if v.ProfitLoss.Value != "+₹1" {
			t.Fatalf("row P&L = %q, want +₹1", v.ProfitLoss.Value)
		}
		rowSum = rowSum.Add(models.ParseDecimal(v.ProfitLoss.Value))
	}

	current := CurrentCapital(decimal.NewFromInt(100), views)
	s := Aggregate(views, current)

	if !s.TotalPnL.Equal(rowSum) || !s.TotalPnL.Equal(decimal.NewFromInt(2)) {
		t.Errorf("TotalPnL = %s, want %s", s.TotalPnL, rowSum)
	}
	if s.PercentageReturn != "+10.0" {
		t.Errorf("PercentageReturn = %q, want +10.0", s.PercentageReturn)
	}
	if !current.Equal(decimal.NewFromInt(102)) {
		t.Errorf("CurrentCapital = %s, want 102", current)
	}
	if !s.TotalMaxLoss.IsZero() {
		t.Errorf("TotalMaxLoss = %s, want 0", s.TotalMaxLoss)
	}
}

func TestProperty_AggregateIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("aggregating the same views twice is identical", prop.ForAll(
		func(pnls []int64, capital int64) bool {
			trades := make([]models.TradeView, len(pnls))
			for i, p := range pnls {
				trades[i] = view(models.StatusClosed, p, capital, p*2, p/3)
			}
			current := CurrentCapital(decimal.NewFromInt(500000), trades)
			return reflect.DeepEqual(Aggregate(trades, current), Aggregate(trades, current))
		},
		gen.SliceOf(gen.Int64Range(-100000, 100000)),
		gen.Int64Range(0, 200000),
	))

	properties.TestingRun(t)
}
