// Package sample builds the demo data set offered when the store is empty.
package sample

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
)

// fixture describes one demo expense relative to the generation time.
type fixture struct {
	description string
	amount      string
	category    model.Category
	monthsAgo   int
	daysAgo     int
}

var fixtures = []fixture{
	// This month.
	{"Grocery shopping at Whole Foods", "125.50", model.CategoryFood, 0, 2},
	{"Gas for car", "45.00", model.CategoryTransport, 0, 3},
	{"Electricity bill", "89.99", model.CategoryUtilities, 0, 5},
	{"Netflix subscription", "15.99", model.CategoryEntertainment, 0, 7},
	{"Dinner at Italian restaurant", "67.50", model.CategoryFood, 0, 8},
	{"Monthly rent payment", "1500.00", model.CategoryHousing, 0, 1},
	{"Online course subscription", "29.99", model.CategoryEducation, 0, 10},
	{"Gym membership", "49.99", model.CategoryPersonalCare, 0, 12},

	// Last month.
	{"Grocery shopping", "98.75", model.CategoryFood, 1, 0},
	{"Car insurance", "125.00", model.CategoryInsurance, 1, 5},
	{"Internet bill", "59.99", model.CategoryUtilities, 1, 3},
	{"Coffee shop", "12.50", model.CategoryFood, 1, 10},
	{"New shoes", "89.99", model.CategoryShopping, 1, 15},
	{"Doctor visit co-pay", "35.00", model.CategoryHealthcare, 1, 20},
	{"Monthly rent payment", "1500.00", model.CategoryHousing, 1, 1},

	{"Grocery shopping", "110.25", model.CategoryFood, 2, 0},
	{"Gas for car", "42.00", model.CategoryTransport, 2, 5},
	{"Movie tickets", "28.00", model.CategoryEntertainment, 2, 8},
	{"Phone bill", "65.00", model.CategoryUtilities, 2, 3},
	{"Savings deposit", "500.00", model.CategorySavings, 2, 1},
	{"Monthly rent payment", "1500.00", model.CategoryHousing, 2, 1},

	{"Grocery shopping", "105.00", model.CategoryFood, 3, 0},
	{"Weekend trip", "350.00", model.CategoryTravel, 3, 10},
	{"New laptop", "1200.00", model.CategoryShopping, 3, 15},
	{"Restaurant dinner", "85.00", model.CategoryFood, 3, 20},
	{"Monthly rent payment", "1500.00", model.CategoryHousing, 3, 1},

	{"Grocery shopping", "95.50", model.CategoryFood, 4, 0},
	{"Car maintenance", "250.00", model.CategoryTransport, 4, 10},
	{"Haircut", "35.00", model.CategoryPersonalCare, 4, 15},
	{"Concert tickets", "120.00", model.CategoryEntertainment, 4, 20},
	{"Monthly rent payment", "1500.00", model.CategoryHousing, 4, 1},

	{"Grocery shopping", "102.00", model.CategoryFood, 5, 0},
	{"Health insurance", "350.00", model.CategoryInsurance, 5, 5},
	{"Textbooks", "180.00", model.CategoryEducation, 5, 10},
	{"Coffee and snacks", "25.00", model.CategoryFood, 5, 15},
	{"Monthly rent payment", "1500.00", model.CategoryHousing, 5, 1},
}

// Size is the number of records Generate returns.
var Size = len(fixtures)

// Generate returns the demo expenses dated relative to now. Dates are
// calendar days in now's location, matching how add stamps today; the
// timestamps are stored in UTC. The output only depends on now.
func Generate(now time.Time) []model.Expense {
	out := make([]model.Expense, len(fixtures))
	for i, f := range fixtures {
		at := subMonths(now, f.monthsAgo).AddDate(0, 0, -f.daysAgo)
		out[i] = model.Expense{
			ID:          id.Sample(i),
			Description: f.description,
			Amount:      decimal.RequireFromString(f.amount),
			Category:    f.category,
			Date:        model.DateOf(at),
			CreatedAt:   at.UTC(),
			UpdatedAt:   at.UTC(),
		}
	}
	return out
}

// subMonths moves t back n calendar months, clamping the day to the end of
// the target month (March 31 minus one month is February 28 or 29).
func subMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
