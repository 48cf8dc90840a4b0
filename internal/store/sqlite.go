package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ccscreen/internal/models"
)

// SQLiteStore implements SnapshotStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) a snapshot database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quotes (
		symbol TEXT PRIMARY KEY,
		price REAL NOT NULL,
		annual_dividend REAL NOT NULL DEFAULT 0,
		dividend REAL NOT NULL DEFAULT 0,
		eps REAL NOT NULL DEFAULT 0,
		ex_dividend_date DATETIME,
		high52 REAL NOT NULL DEFAULT 0,
		low52 REAL NOT NULL DEFAULT 0,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS expirations (
		symbol TEXT NOT NULL,
		expiration DATETIME NOT NULL,
		position INTEGER NOT NULL,
		UNIQUE(symbol, expiration)
	);

	CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		expiration DATETIME NOT NULL,
		strike REAL NOT NULL,
		side TEXT NOT NULL,
		bid REAL NOT NULL,
		ask REAL NOT NULL,
		bid_size INTEGER NOT NULL DEFAULT 0,
		ask_size INTEGER NOT NULL DEFAULT 0,
		open_interest INTEGER NOT NULL DEFAULT 0,
		last_price REAL NOT NULL DEFAULT 0,
		UNIQUE(symbol, expiration, strike, side)
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_chain
		ON contracts(symbol, expiration, side);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveQuotes upserts one row per quote.
func (s *SQLiteStore) SaveQuotes(ctx context.Context, quotes []models.StockQuote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotes (symbol, price, annual_dividend, dividend, eps, ex_dividend_date, high52, low52)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			price=excluded.price, annual_dividend=excluded.annual_dividend,
			dividend=excluded.dividend, eps=excluded.eps,
			ex_dividend_date=excluded.ex_dividend_date,
			high52=excluded.high52, low52=excluded.low52,
			fetched_at=CURRENT_TIMESTAMP`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range quotes {
		var exDate interface{}
		if q.ExDividendDate != nil {
			exDate = q.ExDividendDate.UTC()
		}
		if _, err := stmt.ExecContext(ctx, q.Symbol, q.Price, q.AnnualDividend, q.Dividend, q.EPS, exDate, q.High52, q.Low52); err != nil {
			return fmt.Errorf("saving quote %s: %w", q.Symbol, err)
		}
	}
	return tx.Commit()
}

// GetQuotes returns the stored quotes for the requested symbols,
// preserving request order. Symbols with no stored quote are omitted.
func (s *SQLiteStore) GetQuotes(ctx context.Context, symbols []string) ([]models.StockQuote, error) {
	quotes := make([]models.StockQuote, 0, len(symbols))
	for _, symbol := range symbols {
		row := s.db.QueryRowContext(ctx, `
			SELECT symbol, price, annual_dividend, dividend, eps, ex_dividend_date, high52, low52
			FROM quotes WHERE symbol = ?`, symbol)

		var q models.StockQuote
		var exDate sql.NullTime
		err := row.Scan(&q.Symbol, &q.Price, &q.AnnualDividend, &q.Dividend, &q.EPS, &exDate, &q.High52, &q.Low52)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading quote %s: %w", symbol, err)
		}
		if exDate.Valid {
			t := exDate.Time
			q.ExDividendDate = &t
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// SaveExpirations replaces the stored expiration list for a symbol.
func (s *SQLiteStore) SaveExpirations(ctx context.Context, symbol string, dates []time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expirations WHERE symbol = ?`, symbol); err != nil {
		return err
	}
	for i, d := range dates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expirations (symbol, expiration, position) VALUES (?, ?, ?)`,
			symbol, d.UTC(), i); err != nil {
			return fmt.Errorf("saving expiration for %s: %w", symbol, err)
		}
	}
	return tx.Commit()
}

// GetExpirations returns the stored expirations in chain order.
func (s *SQLiteStore) GetExpirations(ctx context.Context, symbol string) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expiration FROM expirations WHERE symbol = ? ORDER BY position`, symbol)
	if err != nil {
		return nil, fmt.Errorf("reading expirations for %s: %w", symbol, err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// SaveChain upserts the given contracts.
func (s *SQLiteStore) SaveChain(ctx context.Context, contracts []models.OptionContract) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contracts (symbol, expiration, strike, side, bid, ask, bid_size, ask_size, open_interest, last_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, expiration, strike, side) DO UPDATE SET
			bid=excluded.bid, ask=excluded.ask,
			bid_size=excluded.bid_size, ask_size=excluded.ask_size,
			open_interest=excluded.open_interest, last_price=excluded.last_price`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range contracts {
		if _, err := stmt.ExecContext(ctx, c.Symbol, c.Expiration.UTC(), c.Strike, string(c.Side),
			c.Bid, c.Ask, c.BidSize, c.AskSize, c.OpenInterest, c.LastPrice); err != nil {
			return fmt.Errorf("saving contract %s: %w", c.Describe(), err)
		}
	}
	return tx.Commit()
}

// GetChain returns the stored contracts for one symbol/expiration/side,
// ordered by strike.
func (s *SQLiteStore) GetChain(ctx context.Context, symbol string, expiration time.Time, side models.OptionSide) ([]models.OptionContract, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, expiration, strike, side, bid, ask, bid_size, ask_size, open_interest, last_price
		FROM contracts
		WHERE symbol = ? AND expiration = ? AND side = ?
		ORDER BY strike`, symbol, expiration.UTC(), string(side))
	if err != nil {
		return nil, fmt.Errorf("reading chain for %s: %w", symbol, err)
	}
	defer rows.Close()

	var contracts []models.OptionContract
	for rows.Next() {
		var c models.OptionContract
		var side string
		if err := rows.Scan(&c.Symbol, &c.Expiration, &c.Strike, &side,
			&c.Bid, &c.Ask, &c.BidSize, &c.AskSize, &c.OpenInterest, &c.LastPrice); err != nil {
			return nil, err
		}
		c.Side = models.OptionSide(side)
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// ListSymbols returns every symbol with a stored quote.
func (s *SQLiteStore) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT symbol FROM quotes ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
