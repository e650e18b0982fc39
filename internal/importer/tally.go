package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// TallyParser reads CSV files with a header naming at least the date,
// description, category and amount columns, in any order. Files written by
// the export command qualify; extra columns are ignored.
type TallyParser struct{}

var tallyRequired = []string{"date", "description", "category", "amount"}

// Format returns the parser name.
func (p *TallyParser) Format() string { return "tally" }

// Parse reads the CSV and returns one validated request per data row.
func (p *TallyParser) Parse(r io.Reader) ([]model.NewExpense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range tallyRequired {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing %q column", name)
		}
	}

	var out []model.NewExpense
	for i, rec := range records[1:] {
		e, err := parseTallyRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseTallyRow(rec []string, cols map[string]int) (model.NewExpense, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	date, err := model.ParseDate(field("date"))
	if err != nil {
		return model.NewExpense{}, err
	}
	cat, err := model.ParseCategory(field("category"))
	if err != nil {
		return model.NewExpense{}, err
	}
	amount, err := decimal.NewFromString(strings.TrimPrefix(field("amount"), "$"))
	if err != nil {
		return model.NewExpense{}, fmt.Errorf("parsing amount %q: %w", field("amount"), err)
	}

	e := model.NewExpense{
		Description: field("description"),
		Amount:      amount,
		Category:    cat,
		Date:        date,
	}
	if err := e.Validate(); err != nil {
		return model.NewExpense{}, err
	}
	return e, nil
}
