package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/export"
	"github.com/tally-dev/tally/internal/model"
)

const chaseCSV = `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,01/03/2025,GITHUB *PRO SUBSCRIPTION,-4.00,ACH_DEBIT,5196.00,
DEBIT,01/06/2025,WHOLE FOODS #123,-82.17,DEBIT_CARD,5113.83,
DEBIT,01/09/2025,SHELL OIL 5543,-45.60,DEBIT_CARD,5068.23,
CREDIT,01/15/2025,ACME CONSULTING INVOICE 1042,3500.00,ACH_CREDIT,8568.23,
DEBIT,01/18/2025,CITY WATER UTILITY,-61.25,ACH_DEBIT,8506.98,
DEBIT,01/22/2025,NETFLIX.COM,-15.49,DEBIT_CARD,8491.49,
`

func TestChaseParser_Parse(t *testing.T) {
	p := &ChaseParser{}
	got, err := p.Parse(strings.NewReader(chaseCSV))
	require.NoError(t, err)
	require.Len(t, got, 5, "credit rows are skipped")

	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", got[0].Description)
	assert.Equal(t, "4.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, model.CategoryOther, got[0].Category)
	assert.Equal(t, model.NewDate(2025, time.January, 3), got[0].Date)

	last := got[4]
	assert.Equal(t, "NETFLIX.COM", last.Description)
	assert.Equal(t, model.NewDate(2025, time.January, 22), last.Date)

	for _, e := range got {
		assert.False(t, e.Amount.IsNegative(), "%s", e.Description)
		assert.NoError(t, e.Validate())
	}
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	got, err := p.Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestChaseParser_BadDate(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
	assert.Contains(t, err.Error(), "row 2")
}

func TestChaseParser_BadAmount(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,01/03/2025,desc,abc,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestTallyParser_Parse(t *testing.T) {
	csv := "Amount,Date,Category,Description,Notes\n" +
		"4.50,2024-01-10,Food & Dining,Coffee,morning\n" +
		"$1200,2024-01-01,housing,Rent,\n"

	p := &TallyParser{}
	got, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Coffee", got[0].Description)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("4.5")))
	assert.Equal(t, model.CategoryFood, got[0].Category)
	assert.Equal(t, model.NewDate(2024, time.January, 10), got[0].Date)

	assert.Equal(t, model.CategoryHousing, got[1].Category)
	assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(1200)))
}

func TestTallyParser_MissingColumn(t *testing.T) {
	p := &TallyParser{}
	_, err := p.Parse(strings.NewReader("date,description,amount\n2024-01-10,Coffee,4.50\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestTallyParser_InvalidRow(t *testing.T) {
	p := &TallyParser{}
	tests := []struct {
		name string
		row  string
	}{
		{"unknown category", "2024-01-10,Coffee,Groceries,4.50"},
		{"negative amount", "2024-01-10,Coffee,Food & Dining,-4.50"},
		{"bad date", "10/01/2024,Coffee,Food & Dining,4.50"},
		{"empty description", "2024-01-10,,Food & Dining,4.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(strings.NewReader("date,description,category,amount\n" + tt.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestTallyParser_ReadsExportOutput(t *testing.T) {
	ts := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	records := []model.Expense{
		{ID: "a", Description: "Coffee, large", Amount: decimal.RequireFromString("4.5"), Category: model.CategoryFood, Date: model.NewDate(2024, time.January, 10), CreatedAt: ts, UpdatedAt: ts},
		{ID: "b", Description: "Rent", Amount: decimal.NewFromInt(1500), Category: model.CategoryHousing, Date: model.NewDate(2024, time.January, 1), CreatedAt: ts, UpdatedAt: ts},
	}
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, records))

	got, err := (&TallyParser{}).Parse(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i, r := range records {
		assert.Equal(t, r.Description, got[i].Description)
		assert.True(t, r.Amount.Equal(got[i].Amount))
		assert.Equal(t, r.Category, got[i].Category)
		assert.Equal(t, r.Date, got[i].Date)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("CHASE"))
	assert.NotNil(t, r.Get("tally"))
	assert.Nil(t, r.Get("unknown"))
	assert.Equal(t, []string{"chase", "tally"}, r.Formats())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.Panics(t, func() { r.Register(&ChaseParser{}) })
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jan.csv")
	require.NoError(t, os.WriteFile(path, []byte(chaseCSV), 0o644))

	got, err := ParseFile(&ChaseParser{}, path)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	_, err = ParseFile(&ChaseParser{}, filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(filepath.Join(importDir, "processed"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "b.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "a.CSV"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "readme.txt"), []byte("skip"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.CSV", files[0].Name)
	assert.Equal(t, "b.csv", files[1].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_NoImportDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "test.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "test.csv"))

	_, err := os.Stat(filepath.Join(importDir, "test.csv"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(importDir, "processed", "test.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_KeepsEarlierFile(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "jan.csv"), []byte("first"), 0o644))
	require.NoError(t, MarkProcessed(dir, "jan.csv"))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "jan.csv"), []byte("second"), 0o644))
	require.NoError(t, MarkProcessed(dir, "jan.csv"))

	first, err := os.ReadFile(filepath.Join(importDir, "processed", "jan.csv"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(first))

	second, err := os.ReadFile(filepath.Join(importDir, "processed", "jan-1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(second))
}
