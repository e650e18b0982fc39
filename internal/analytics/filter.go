package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Criteria narrows a list of expenses. Nil fields impose no constraint and
// all set fields must match.
type Criteria struct {
	Category  *model.Category
	StartDate *model.Date
	EndDate   *model.Date
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Category == nil && c.StartDate == nil && c.EndDate == nil &&
		c.MinAmount == nil && c.MaxAmount == nil
}

// Filter applies c using the current time as the default end date.
func Filter(records []model.Expense, c Criteria) []model.Expense {
	return FilterAt(records, c, time.Now())
}

// FilterAt returns the records matching c in input order. When a date bound
// is set, a missing start means the beginning of time and a missing end
// means now.
func FilterAt(records []model.Expense, c Criteria, now time.Time) []model.Expense {
	out := make([]model.Expense, 0, len(records))
	for _, r := range records {
		if c.matches(r, now) {
			out = append(out, r)
		}
	}
	return out
}

func (c Criteria) matches(r model.Expense, now time.Time) bool {
	if c.Category != nil && r.Category != *c.Category {
		return false
	}

	if c.StartDate != nil || c.EndDate != nil {
		if c.StartDate != nil && r.Date.Before(c.StartDate.Time) {
			return false
		}
		if c.EndDate != nil {
			if r.Date.After(c.EndDate.Time) {
				return false
			}
		} else if r.Date.After(model.DateOf(now).Time) {
			return false
		}
	}

	if c.MinAmount != nil && r.Amount.LessThan(*c.MinAmount) {
		return false
	}
	if c.MaxAmount != nil && r.Amount.GreaterThan(*c.MaxAmount) {
		return false
	}
	return true
}

// SortByDateDesc returns a copy ordered newest first. Records on the same
// day keep their relative order.
func SortByDateDesc(records []model.Expense) []model.Expense {
	out := make([]model.Expense, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}
