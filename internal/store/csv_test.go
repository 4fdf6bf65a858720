package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bni3259/trading-journal/internal/models"
)

func sampleRecords() []models.TradeRecord {
	return []models.TradeRecord{
		{
			ID:         1,
			Ticker:     "AAPL",
			OpenedAt:   time.Date(2026, 8, 3, 10, 30, 0, 0, time.UTC),
			Quantity:   10,
			EntryPrice: 150,
			Status:     models.StatusOpen,
		},
		{
			ID:          2,
			Ticker:      "MSFT",
			OpenedAt:    time.Date(2026, 8, 4, 9, 45, 0, 0, time.UTC),
			Quantity:    2.5,
			EntryPrice:  400,
			Status:      models.StatusClosed,
			ClosedAt:    time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			ExitPrice:   410,
			Conclusions: "scaled out on earnings",
			ProfitUSD:   25,
		},
	}
}

func TestCSVStore_LoadMissingFile(t *testing.T) {
	st, err := NewCSVStore(filepath.Join(t.TempDir(), "journal.csv"))
	require.NoError(t, err)

	records, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, records, "missing file must load as an empty journal, not an error")
}

func TestCSVStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	st, err := NewCSVStore(path)
	require.NoError(t, err)

	records, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSVStore_RoundTrip(t *testing.T) {
	st, err := NewCSVStore(filepath.Join(t.TempDir(), "journal.csv"))
	require.NoError(t, err)

	want := sampleRecords()
	require.NoError(t, st.Save(want))

	got, err := st.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, "AAPL", got[0].Ticker)
	assert.Equal(t, models.StatusOpen, got[0].Status)
	assert.True(t, got[0].ClosedAt.IsZero())

	assert.Equal(t, want[1].Quantity, got[1].Quantity)
	assert.Equal(t, want[1].ExitPrice, got[1].ExitPrice)
	assert.Equal(t, want[1].ProfitUSD, got[1].ProfitUSD)
	assert.Equal(t, want[1].Conclusions, got[1].Conclusions)
	assert.Equal(t, "2026-08-10", got[1].ClosedAt.Format(DateLayout))

	// Entry timestamp keeps date and clock minute.
	assert.Equal(t, "2026-08-03 10:30", got[0].OpenedAt.Format(DateLayout+" "+TimeLayout))
}

func TestCSVStore_ColumnLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	st, err := NewCSVStore(path)
	require.NoError(t, err)
	require.NoError(t, st.Save(sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	header := strings.SplitN(string(data), "\n", 2)[0]
	header = strings.TrimRight(header, "\r")
	assert.Equal(t,
		"ID,Ticker,Entry_Date,Entry_Time,Quantity,Entry_Price,Status,Exit_Date,Exit_Price,Conclusions,Profit_USD",
		header, "persisted column order must stay stable")
}

func TestCSVStore_SaveIsFullReplace(t *testing.T) {
	st, err := NewCSVStore(filepath.Join(t.TempDir(), "journal.csv"))
	require.NoError(t, err)

	require.NoError(t, st.Save(sampleRecords()))
	require.NoError(t, st.Save(sampleRecords()[:1]))

	got, err := st.Load()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
