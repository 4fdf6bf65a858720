package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Bni3259/trading-journal/internal/errors"
	"github.com/Bni3259/trading-journal/internal/models"
)

// SQLiteStore persists the journal to a SQLite database. The trades table
// mirrors the row-oriented spreadsheet layout, one row per position.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed store.
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
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY,
		ticker TEXT NOT NULL,
		entry_date TEXT NOT NULL,
		entry_time TEXT NOT NULL,
		quantity REAL NOT NULL,
		entry_price REAL NOT NULL,
		status TEXT NOT NULL,
		exit_date TEXT NOT NULL DEFAULT '',
		exit_price REAL NOT NULL DEFAULT 0,
		conclusions TEXT NOT NULL DEFAULT '',
		profit_usd REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads all records in id order. Insertion order and id order coincide
// because ids are assigned monotonically.
func (s *SQLiteStore) Load() ([]models.TradeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, ticker, entry_date, entry_time, quantity, entry_price,
		       status, exit_date, exit_price, conclusions, profit_usd
		FROM trades ORDER BY id`)
	if err != nil {
		return nil, errors.NewPersistenceError("load", err)
	}
	defer rows.Close()

	records := []models.TradeRecord{}
	for rows.Next() {
		var rec models.TradeRecord
		var entryDate, entryTime, status, exitDate string
		if err := rows.Scan(&rec.ID, &rec.Ticker, &entryDate, &entryTime,
			&rec.Quantity, &rec.EntryPrice, &status, &exitDate,
			&rec.ExitPrice, &rec.Conclusions, &rec.ProfitUSD); err != nil {
			return nil, errors.NewPersistenceError("load", err)
		}

		openedAt, err := time.Parse(DateLayout+" "+TimeLayout, entryDate+" "+entryTime)
		if err != nil {
			return nil, errors.NewPersistenceError("load",
				fmt.Errorf("trade %d: parsing entry timestamp: %w", rec.ID, err))
		}
		rec.OpenedAt = openedAt
		rec.Status = models.Status(status)

		if exitDate != "" {
			closedAt, err := time.Parse(DateLayout, exitDate)
			if err != nil {
				return nil, errors.NewPersistenceError("load",
					fmt.Errorf("trade %d: parsing exit date: %w", rec.ID, err))
			}
			rec.ClosedAt = closedAt
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceError("load", err)
	}
	return records, nil
}

// Save replaces the whole table in one transaction.
func (s *SQLiteStore) Save(records []models.TradeRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.NewPersistenceError("save", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		return errors.NewPersistenceError("save", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trades (id, ticker, entry_date, entry_time, quantity,
		                    entry_price, status, exit_date, exit_price,
		                    conclusions, profit_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewPersistenceError("save", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		exitDate := ""
		if !rec.ClosedAt.IsZero() {
			exitDate = rec.ClosedAt.Format(DateLayout)
		}
		_, err := stmt.Exec(rec.ID, rec.Ticker,
			rec.OpenedAt.Format(DateLayout), rec.OpenedAt.Format(TimeLayout),
			rec.Quantity, rec.EntryPrice, string(rec.Status),
			exitDate, rec.ExitPrice, rec.Conclusions, rec.ProfitUSD)
		if err != nil {
			return errors.NewPersistenceError("save", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewPersistenceError("save", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
