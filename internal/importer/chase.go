package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports. Debits become
// expenses filed under Other; credits (income) are skipped.
type ChaseParser struct{}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns one request per debit row.
func (p *ChaseParser) Parse(r io.Reader) ([]model.NewExpense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.NewExpense
	for i, rec := range records[1:] {
		e, isDebit, err := parseChaseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if isDebit {
			out = append(out, e)
		}
	}
	return out, nil
}

func parseChaseRow(rec []string) (model.NewExpense, bool, error) {
	date, err := time.Parse(chaseDateFormat, strings.TrimSpace(rec[chaseColDate]))
	if err != nil {
		return model.NewExpense{}, false, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[chaseColAmount]))
	if err != nil {
		return model.NewExpense{}, false, fmt.Errorf("parsing amount %q: %w", rec[chaseColAmount], err)
	}
	if !amount.IsNegative() {
		return model.NewExpense{}, false, nil
	}

	return model.NewExpense{
		Description: strings.TrimSpace(rec[chaseColDesc]),
		Amount:      amount.Abs(),
		Category:    model.CategoryOther,
		Date:        model.DateOf(date),
	}, true, nil
}
