package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/Bni3259/trading-journal/internal/errors"
	"github.com/Bni3259/trading-journal/internal/models"
)

// csvRow mirrors the persisted column layout. Field order is the column order
// and must stay stable.
type csvRow struct {
	ID          int64   `csv:"ID"`
	Ticker      string  `csv:"Ticker"`
	EntryDate   string  `csv:"Entry_Date"`
	EntryTime   string  `csv:"Entry_Time"`
	Quantity    float64 `csv:"Quantity"`
	EntryPrice  float64 `csv:"Entry_Price"`
	Status      string  `csv:"Status"`
	ExitDate    string  `csv:"Exit_Date"`
	ExitPrice   float64 `csv:"Exit_Price"`
	Conclusions string  `csv:"Conclusions"`
	ProfitUSD   float64 `csv:"Profit_USD"`
}

// CSVStore persists the journal to a local flat CSV file.
type CSVStore struct {
	path string
}

// NewCSVStore creates a CSV-backed store at the given path. The file is
// created lazily on first save.
func NewCSVStore(path string) (*CSVStore, error) {
	if path == "" {
		return nil, fmt.Errorf("csv store path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewPersistenceError("init", err)
	}
	return &CSVStore{path: path}, nil
}

// Load reads all records from the file. A missing or empty file yields an
// empty slice and no error.
func (s *CSVStore) Load() ([]models.TradeRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.TradeRecord{}, nil
		}
		return nil, errors.NewPersistenceError("load", err)
	}
	if len(data) == 0 {
		return []models.TradeRecord{}, nil
	}

	var rows []*csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, errors.NewPersistenceError("load", err)
	}

	records := make([]models.TradeRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, errors.NewPersistenceError("load", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save rewrites the whole file. The write goes through a temp file and a
// rename so a failed save never truncates the journal.
func (s *CSVStore) Save(records []models.TradeRecord) error {
	rows := make([]*csvRow, 0, len(records))
	for i := range records {
		rows = append(rows, recordToRow(&records[i]))
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return errors.NewPersistenceError("save", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(out), 0644); err != nil {
		return errors.NewPersistenceError("save", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.NewPersistenceError("save", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between operations.
func (s *CSVStore) Close() error {
	return nil
}

func recordToRow(rec *models.TradeRecord) *csvRow {
	row := &csvRow{
		ID:          rec.ID,
		Ticker:      rec.Ticker,
		EntryDate:   rec.OpenedAt.Format(DateLayout),
		EntryTime:   rec.OpenedAt.Format(TimeLayout),
		Quantity:    rec.Quantity,
		EntryPrice:  rec.EntryPrice,
		Status:      string(rec.Status),
		ExitPrice:   rec.ExitPrice,
		Conclusions: rec.Conclusions,
		ProfitUSD:   rec.ProfitUSD,
	}
	if !rec.ClosedAt.IsZero() {
		row.ExitDate = rec.ClosedAt.Format(DateLayout)
	}
	return row
}

func rowToRecord(row *csvRow) (models.TradeRecord, error) {
	openedAt, err := time.Parse(DateLayout+" "+TimeLayout, row.EntryDate+" "+row.EntryTime)
	if err != nil {
		return models.TradeRecord{}, fmt.Errorf("trade %d: parsing entry timestamp: %w", row.ID, err)
	}

	rec := models.TradeRecord{
		ID:          row.ID,
		Ticker:      row.Ticker,
		OpenedAt:    openedAt,
		Quantity:    row.Quantity,
		EntryPrice:  row.EntryPrice,
		Status:      models.Status(row.Status),
		ExitPrice:   row.ExitPrice,
		Conclusions: row.Conclusions,
		ProfitUSD:   row.ProfitUSD,
	}
	if row.ExitDate != "" {
		closedAt, err := time.Parse(DateLayout, row.ExitDate)
		if err != nil {
			return models.TradeRecord{}, fmt.Errorf("trade %d: parsing exit date: %w", row.ID, err)
		}
		rec.ClosedAt = closedAt
	}
	return rec, nil
}
