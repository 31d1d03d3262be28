// Package format renders engine output for display: currency with locale
// grouping and two decimals, percentages with two decimals and a trailing
// sign. Values are decimals upstream; the float conversion here is display
// only.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders a monetary amount, e.g. "$1,275.00".
func Currency(v decimal.Decimal) string {
	return printer.Sprintf("$%.2f", v.InexactFloat64())
}

// Percent renders a percentage, e.g. "13.42%".
func Percent(v decimal.Decimal) string {
	return printer.Sprintf("%.2f%%", v.InexactFloat64())
}
