package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trade-journal/internal/models"
)

func openTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func sampleRecords() []models.TradeRecord {
	return []models.TradeRecord{
		{
			ID: 30, Instrument: "NIFTY", Bias: "BULLISH", Setup: "Breakout",
			Strategy: models.StrategyBullPutSpread, Capital: "100000.00",
			MaxProfit: "3750.00", MainLots: 1, Status: models.StatusActive,
			CreatedAt: "2025-01-15T10:00:00Z",
			Strikes: []models.StrikeRecord{
				{StrikePrice: "22000", OptionType: "PE", Position: "B", Lots: 1, LTP: "40", ExpiryDate: "2025-01-30"},
				{StrikePrice: "22100", OptionType: "PE", Position: "S", Lots: 1, LTP: "90", ExpiryDate: "2025-01-30"},
			},
		},
		{
			ID: 12, Instrument: "reliance", Bias: "BEARISH", Setup: "Reversal",
			Strategy: "Naked", Capital: "50000", ActualPnL: "-1200",
			Status: models.StatusClosed, CreatedAt: "2025-01-02T09:30:00Z",
		},
		{
			ID: 21, Instrument: "BANKNIFTY", Bias: "NEUTRAL", Setup: "Range",
			Strategy: "Iron condor", Capital: "80000", Status: models.StatusActive,
			CreatedAt: "2025-01-10T11:00:00Z",
		},
	}
}

func TestReplaceAndGetTradesKeepsOrder(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	if err := s.ReplaceTrades(ctx, sampleRecords()); err != nil {
		t.Fatalf("ReplaceTrades: %v", err)
	}

	got, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil {
		t.Fatal(err)
	}
	ids := []int64{}
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	if fmt.Sprint(ids) != "[30 12 21]" {
		t.Errorf("ids = %v, want backend order", ids)
	}
	if len(got[0].Strikes) != 2 || got[0].Strikes[1].Position != "S" {
		t.Errorf("strikes not preserved: %+v", got[0].Strikes)
	}
	if got[1].ActualPnL != "-1200" {
		t.Errorf("actual_pnl = %q", got[1].ActualPnL)
	}
}

func TestGetTradesFilters(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	if err := s.ReplaceTrades(ctx, sampleRecords()); err != nil {
		t.Fatal(err)
	}

	active, _ := s.GetTrades(ctx, TradeFilter{Status: models.StatusActive})
	if len(active) != 2 {
		t.Errorf("active = %d, want 2", len(active))
	}

	byInstrument, _ := s.GetTrades(ctx, TradeFilter{Instrument: "Reliance"})
	if len(byInstrument) != 1 || byInstrument[0].ID != 12 {
		t.Errorf("instrument filter = %+v", byInstrument)
	}

	limited, _ := s.GetTrades(ctx, TradeFilter{Limit: 1})
	if len(limited) != 1 || limited[0].ID != 30 {
		t.Errorf("limit = %+v", limited)
	}
}

func TestReplaceDropsStaleRowsAndDelete(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	if err := s.ReplaceTrades(ctx, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceTrades(ctx, sampleRecords()[:2]); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTrade(ctx, 30); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTrade(ctx, 999); err != nil {
		t.Errorf("deleting a missing id: %v", err)
	}

	got, _ := s.GetTrades(ctx, TradeFilter{})
	if len(got) != 1 || got[0].ID != 12 {
		t.Errorf("remaining = %+v", got)
	}
}

func TestLastSyncPersists(t *testing.T) {
	s, path := openTestStore(t)
	if !s.GetLastSync(SyncTypeTrades).IsZero() {
		t.Fatal("expected zero time before first sync")
	}

	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	if err := s.SetLastSync(SyncTypeTrades, at); err != nil {
		t.Fatal(err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if got := reopened.GetLastSync(SyncTypeTrades); !got.Equal(at) {
		t.Errorf("last sync = %v, want %v", got, at)
	}
}

func TestFreshness(t *testing.T) {
	s, _ := openTestStore(t)
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	if f := Freshness(s, SyncTypeTrades, DefaultStaleAfter, now); FormatFreshness(f) != "Never synced" {
		t.Errorf("unsynced = %q", FormatFreshness(f))
	}

	s.SetLastSync(SyncTypeTrades, now.Add(-10*time.Minute))
	f := Freshness(s, SyncTypeTrades, DefaultStaleAfter, now)
	if !f.IsFresh || FormatFreshness(f) != "Updated 10 minutes ago" {
		t.Errorf("fresh = %+v %q", f, FormatFreshness(f))
	}

	s.SetLastSync(SyncTypeTrades, now.Add(-3*time.Hour))
	f = Freshness(s, SyncTypeTrades, DefaultStaleAfter, now)
	if f.IsFresh || FormatFreshness(f) != "Stale data - updated 3 hours ago" {
		t.Errorf("stale = %+v %q", f, FormatFreshness(f))
	}
}

// Property: any list of trades written to the snapshot reads back with the
// same ids in the same order.
func TestProperty_SnapshotRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("replace then get preserves ids and order", prop.ForAll(
		func(ids []int64, instrument string) bool {
			seen := map[int64]bool{}
			var records []models.TradeRecord
			for _, id := range ids {
				if seen[id] {
					continue
				}
				seen[id] = true
				records = append(records, models.TradeRecord{
					ID: id, Instrument: instrument, Status: models.StatusActive,
					Capital: models.Amount(fmt.Sprintf("%d.00", id*100)),
				})
			}

			if err := s.ReplaceTrades(ctx, records); err != nil {
				t.Logf("replace: %v", err)
				return false
			}
			got, err := s.GetTrades(ctx, TradeFilter{})
			if err != nil || len(got) != len(records) {
				return false
			}
			for i := range records {
				if got[i].ID != records[i].ID || got[i].Capital != records[i].Capital {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(1, 10000)),
		gen.OneConstOf("NIFTY", "BANKNIFTY", "SENSEX", "TCS"),
	))

	properties.TestingRun(t)
}
