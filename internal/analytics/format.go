package analytics

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol prefixes formatted amounts.
const DefaultCurrencySymbol = "$"

// FormatCurrency renders amount rounded to cents with thousands grouping,
// e.g. "$1,234.50" or "-$3.00".
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole, cents, _ := strings.Cut(rounded.StringFixed(2), ".")
	n, _ := new(big.Int).SetString(whole, 10)
	return sign + symbol + humanize.BigComma(n) + "." + cents
}

// FormatPercent renders a percentage with one decimal, e.g. "42.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
