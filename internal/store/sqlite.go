package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	mu        sync.RWMutex
	syncTimes map[string]time.Time
}

// NewSQLiteStore opens (creating if needed) the snapshot database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", errors.ErrDatabaseError, dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{
		db:        db,
		syncTimes: make(map[string]time.Time),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Snapshot of the backend trade list
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY,
		position INTEGER NOT NULL,
		instrument TEXT NOT NULL,
		status TEXT NOT NULL,
		strategy TEXT,
		payload TEXT NOT NULL,
		created_at TEXT,
		synced_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
	CREATE INDEX IF NOT EXISTS idx_trades_instrument ON trades(instrument);

	-- Sync status table
	CREATE TABLE IF NOT EXISTS sync_status (
		data_type TEXT PRIMARY KEY,
		last_sync DATETIME NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// ReplaceTrades replaces the whole snapshot in one transaction.
func (s *SQLiteStore) ReplaceTrades(ctx context.Context, records []models.TradeRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM trades"); err != nil {
		return fmt.Errorf("failed to clear trades: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO trades (id, position, instrument, status, strategy, payload, created_at, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return errors.NewDataError("trades", fmt.Sprintf("encoding trade %d", rec.ID), err)
		}
		_, err = stmt.ExecContext(ctx,
			rec.ID, i,
			strings.ToUpper(rec.Instrument),
			strings.ToUpper(string(rec.Status)),
			rec.Strategy, string(payload), rec.CreatedAt, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trade %d: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// GetTrades returns snapshot records in backend order.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.TradeRecord, error) {
	query := "SELECT payload FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, strings.ToUpper(string(filter.Status)))
	}
	if filter.Instrument != "" {
		query += " AND instrument = ?"
		args = append(args, strings.ToUpper(filter.Instrument))
	}

	query += " ORDER BY position ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	records := []models.TradeRecord{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		var rec models.TradeRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, errors.NewDataError("trades", "decoding snapshot row", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteTrade removes one trade from the snapshot. Missing ids are ignored.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}

// GetLastSync returns the last sync time for a data type.
func (s *SQLiteStore) GetLastSync(dataType string) time.Time {
	s.mu.RLock()
	if t, ok := s.syncTimes[dataType]; ok {
		s.mu.RUnlock()
		return t
	}
	s.mu.RUnlock()

	var lastSync time.Time
	err := s.db.QueryRow(`
		SELECT last_sync FROM sync_status WHERE data_type = ?
	`, dataType).Scan(&lastSync)
	if err != nil {
		return time.Time{}
	}

	s.mu.Lock()
	s.syncTimes[dataType] = lastSync
	s.mu.Unlock()

	return lastSync
}

// SetLastSync sets the last sync time for a data type.
func (s *SQLiteStore) SetLastSync(dataType string, t time.Time) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sync_status (data_type, last_sync, updated_at)
		VALUES (?, ?, ?)
	`, dataType, t, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set last sync: %w", err)
	}

	s.mu.Lock()
	s.syncTimes[dataType] = t
	s.mu.Unlock()

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
