package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ccscreen/internal/models"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestQuoteRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	exDate := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	in := []models.StockQuote{
		{Symbol: "ZION", Price: 52.10, AnnualDividend: 1.64, Dividend: 0.41, EPS: 4.60, ExDividendDate: &exDate, High52: 60.0, Low52: 39.0},
		{Symbol: "WFC", Price: 48.30, AnnualDividend: 1.40, EPS: 4.10},
	}
	if err := s.SaveQuotes(ctx, in); err != nil {
		t.Fatalf("SaveQuotes() error: %v", err)
	}

	// Request order preserved, unknown symbols omitted.
	out, err := s.GetQuotes(ctx, []string{"WFC", "MISSING", "ZION"})
	if err != nil {
		t.Fatalf("GetQuotes() error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("quotes = %d, want 2", len(out))
	}
	if out[0].Symbol != "WFC" || out[1].Symbol != "ZION" {
		t.Errorf("order = %s,%s, want WFC,ZION", out[0].Symbol, out[1].Symbol)
	}
	if out[1].ExDividendDate == nil || !out[1].ExDividendDate.Equal(exDate) {
		t.Errorf("ex-dividend date = %v, want %v", out[1].ExDividendDate, exDate)
	}
	if out[0].ExDividendDate != nil {
		t.Errorf("WFC ex-dividend date = %v, want nil", out[0].ExDividendDate)
	}
}

func TestSaveQuotesUpserts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveQuotes(ctx, []models.StockQuote{{Symbol: "ZION", Price: 50.0}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveQuotes(ctx, []models.StockQuote{{Symbol: "ZION", Price: 52.1}}); err != nil {
		t.Fatal(err)
	}

	out, err := s.GetQuotes(ctx, []string{"ZION"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Price != 52.1 {
		t.Errorf("quote after upsert = %+v, want single row at 52.1", out)
	}
}

func TestExpirationsKeepChainOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2026, 4, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), // out of calendar order on purpose
		time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := s.SaveExpirations(ctx, "ZION", dates); err != nil {
		t.Fatal(err)
	}

	out, err := s.GetExpirations(ctx, "ZION")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("expirations = %d, want 3", len(out))
	}
	for i := range dates {
		if !out[i].Equal(dates[i]) {
			t.Errorf("expiration[%d] = %v, want %v", i, out[i], dates[i])
		}
	}
}

func TestChainRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	expiration := time.Date(2026, 4, 17, 0, 0, 0, 0, time.UTC)
	contracts := []models.OptionContract{
		{Symbol: "ZION", Expiration: expiration, Strike: 50.0, Side: models.Call, Bid: 3.1, Ask: 3.3, OpenInterest: 120},
		{Symbol: "ZION", Expiration: expiration, Strike: 45.0, Side: models.Call, Bid: 7.2, Ask: 7.6},
		{Symbol: "ZION", Expiration: expiration, Strike: 55.0, Side: models.Put, Bid: 4.0, Ask: 4.4},
	}
	if err := s.SaveChain(ctx, contracts); err != nil {
		t.Fatal(err)
	}

	calls, err := s.GetChain(ctx, "ZION", expiration, models.Call)
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	// Ordered by strike.
	if calls[0].Strike != 45.0 || calls[1].Strike != 50.0 {
		t.Errorf("strikes = %v,%v, want 45,50", calls[0].Strike, calls[1].Strike)
	}
	if calls[1].OpenInterest != 120 {
		t.Errorf("open interest = %d, want 120", calls[1].OpenInterest)
	}
}

func TestImportSnapshot(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	snapshot := `{
		"quotes": [
			{"symbol": "ZION", "price": 52.10, "annual_dividend": 1.64, "dividend": 0.41, "eps": 4.60, "ex_dividend_date": "2026-09-10"}
		],
		"chains": [
			{
				"symbol": "ZION",
				"expiration": "2026-04-17",
				"calls": [
					{"strike": 50.0, "bid": 3.10, "ask": 3.30, "open_interest": 120},
					{"strike": 45.0, "bid": 7.20, "ask": 7.60}
				]
			}
		]
	}`
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(snapshot), 0644); err != nil {
		t.Fatal(err)
	}

	quotes, contracts, err := ImportSnapshot(ctx, s, path)
	if err != nil {
		t.Fatalf("ImportSnapshot() error: %v", err)
	}
	if quotes != 1 || contracts != 2 {
		t.Errorf("imported %d quotes, %d contracts; want 1, 2", quotes, contracts)
	}

	dates, err := s.GetExpirations(ctx, "ZION")
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 1 || !dates[0].Equal(time.Date(2026, 4, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expirations = %v", dates)
	}

	stored, err := s.GetQuotes(ctx, []string{"ZION"})
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Dividend != 0.41 {
		t.Errorf("stored quote = %+v", stored)
	}

	symbols, err := s.ListSymbols(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(symbols) != 1 || symbols[0] != "ZION" {
		t.Errorf("symbols = %v", symbols)
	}
}

func TestImportSnapshotBadDate(t *testing.T) {
	s := testStore(t)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	bad := `{"quotes": [{"symbol": "X", "price": 10, "ex_dividend_date": "garbage"}]}`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := ImportSnapshot(context.Background(), s, path); err == nil {
		t.Fatal("ImportSnapshot() succeeded with a malformed date")
	}
}
