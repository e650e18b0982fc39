package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidExpense wraps every input validation failure.
var ErrInvalidExpense = errors.New("invalid expense")

// Expense is a single recorded spending event.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewExpense is the user-supplied part of an Expense.
type NewExpense struct {
	Description string
	Amount      decimal.Decimal
	Category    Category
	Date        Date
}

// Patch holds the fields of an update; nil fields are left alone.
type Patch struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *Category
	Date        *Date
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Category == nil && p.Date == nil
}

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks a creation request. All problems are reported together.
func (n NewExpense) Validate() error {
	var errs []ValidationError
	errs = checkDescription(errs, n.Description)
	errs = checkAmount(errs, n.Amount)
	errs = checkCategory(errs, n.Category)
	if n.Date.IsZero() {
		errs = append(errs, ValidationError{Field: "date", Reason: "required"})
	}
	return joinValidation(errs)
}

// Validate checks only the fields the patch sets.
func (p Patch) Validate() error {
	var errs []ValidationError
	if p.Description != nil {
		errs = checkDescription(errs, *p.Description)
	}
	if p.Amount != nil {
		errs = checkAmount(errs, *p.Amount)
	}
	if p.Category != nil {
		errs = checkCategory(errs, *p.Category)
	}
	if p.Date != nil && p.Date.IsZero() {
		errs = append(errs, ValidationError{Field: "date", Reason: "required"})
	}
	return joinValidation(errs)
}

// Apply merges the patch over e and returns the result. Timestamps and ID
// are not touched.
func (p Patch) Apply(e Expense) Expense {
	if p.Description != nil {
		e.Description = strings.TrimSpace(*p.Description)
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	return e
}

func checkDescription(errs []ValidationError, s string) []ValidationError {
	if strings.TrimSpace(s) == "" {
		return append(errs, ValidationError{Field: "description", Reason: "must not be empty"})
	}
	return errs
}

func checkAmount(errs []ValidationError, d decimal.Decimal) []ValidationError {
	if d.IsNegative() {
		return append(errs, ValidationError{Field: "amount", Reason: fmt.Sprintf("%s is negative", d)})
	}
	return errs
}

func checkCategory(errs []ValidationError, c Category) []ValidationError {
	if !c.Valid() {
		return append(errs, ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", string(c))})
	}
	return errs
}

func joinValidation(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidExpense, strings.Join(msgs, "; "))
}
