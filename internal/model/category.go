package model

import (
	"fmt"
	"strings"
)

// Category is one value of the fixed set of spending categories.
type Category string

const (
	CategoryFood          Category = "Food & Dining"
	CategoryTransport     Category = "Transportation"
	CategoryHousing       Category = "Housing"
	CategoryUtilities     Category = "Utilities"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryEducation     Category = "Education"
	CategoryPersonalCare  Category = "Personal Care"
	CategoryTravel        Category = "Travel"
	CategoryInsurance     Category = "Insurance"
	CategorySavings       Category = "Savings & Investments"
	CategoryOther         Category = "Other"
)

type categoryInfo struct {
	slug  string
	color string
}

// categoryOrder is the display order; categoryTable must have an entry for each.
var categoryOrder = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryHousing,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryEntertainment,
	CategoryShopping,
	CategoryEducation,
	CategoryPersonalCare,
	CategoryTravel,
	CategoryInsurance,
	CategorySavings,
	CategoryOther,
}

var categoryTable = map[Category]categoryInfo{
	CategoryFood:          {slug: "food-dining", color: "#FF6384"},
	CategoryTransport:     {slug: "transportation", color: "#36A2EB"},
	CategoryHousing:       {slug: "housing", color: "#FFCE56"},
	CategoryUtilities:     {slug: "utilities", color: "#4BC0C0"},
	CategoryHealthcare:    {slug: "healthcare", color: "#9966FF"},
	CategoryEntertainment: {slug: "entertainment", color: "#FF9F40"},
	CategoryShopping:      {slug: "shopping", color: "#FF6384"},
	CategoryEducation:     {slug: "education", color: "#C9CBCF"},
	CategoryPersonalCare:  {slug: "personal-care", color: "#4BC0C0"},
	CategoryTravel:        {slug: "travel", color: "#FF9F40"},
	CategoryInsurance:     {slug: "insurance", color: "#36A2EB"},
	CategorySavings:       {slug: "savings-investments", color: "#9966FF"},
	CategoryOther:         {slug: "other", color: "#C9CBCF"},
}

// fallbackColor is used for anything outside the table.
const fallbackColor = "#C9CBCF"

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory accepts a display name (case-insensitive) or a slug.
// "food & dining", "Food & Dining" and "food-dining" all yield CategoryFood.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categoryOrder {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, categoryTable[c].slug) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Slug returns the command-line friendly name, e.g. "personal-care".
func (c Category) Slug() string {
	return categoryTable[c].slug
}

// Color returns the chart color for c as a "#RRGGBB" string.
func (c Category) Color() string {
	if info, ok := categoryTable[c]; ok {
		return info.color
	}
	return fallbackColor
}

// Index returns the position of c in display order, or -1.
func (c Category) Index() int {
	for i, o := range categoryOrder {
		if o == c {
			return i
		}
	}
	return -1
}

func (c Category) String() string { return string(c) }

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown category %q", string(c))
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Only exact display
// names are accepted so stored data never drifts from the fixed set.
func (c *Category) UnmarshalText(text []byte) error {
	v := Category(text)
	if !v.Valid() {
		return fmt.Errorf("unknown category %q", string(text))
	}
	*c = v
	return nil
}
