// Package export writes expense lists as CSV or XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/model"
)

// Format names an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or xlsx)", s)
	}
}

// Header lists the exported columns in order.
var Header = []string{"id", "date", "description", "category", "amount", "created_at", "updated_at"}

const (
	expensesSheet = "Expenses"
	summarySheet  = "Summary"
)

// Write dispatches to WriteCSV or WriteXLSX.
func Write(w io.Writer, format Format, records []model.Expense) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// Row converts an expense to its exported string columns.
func Row(e model.Expense) []string {
	return []string{
		e.ID,
		e.Date.String(),
		e.Description,
		string(e.Category),
		e.Amount.StringFixed(2),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []model.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range records {
		if err := cw.Write(Row(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes an Expenses sheet with one row per record and a Summary
// sheet with totals per category.
func WriteXLSX(w io.Writer, records []model.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(expensesSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range records {
		cols := Row(e)
		row := []any{cols[0], cols[1], cols[2], cols[3], e.Amount.Round(2).InexactFloat64(), cols[5], cols[6]}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(expensesSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	widths := map[string]float64{"A": 38, "B": 12, "C": 36, "D": 22, "E": 12, "F": 22, "G": 22}
	for col, width := range widths {
		if err := f.SetColWidth(expensesSheet, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	if err := writeSummary(f, analytics.Aggregate(records)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, stats analytics.Stats) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	rows := [][]any{
		{"category", "amount"},
	}
	for _, ca := range stats.SortedBreakdown() {
		rows = append(rows, []any{string(ca.Category), ca.Amount.Round(2).InexactFloat64()})
	}
	rows = append(rows,
		[]any{"total", stats.Total.Round(2).InexactFloat64()},
		[]any{"average", stats.Average.Round(2).InexactFloat64()},
		[]any{"count", stats.Count},
	)

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 24)
}
