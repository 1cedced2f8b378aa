package currency

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// ZeroDisplay is the fixed fallback for missing or zero amounts.
const ZeroDisplay = "0 " + BaseCode

// Format renders an amount held in the base currency for display in the
// selected currency.
//
// A zero amount yields ZeroDisplay. A code absent from the table yields the
// unconverted amount suffixed with the base code. Otherwise the amount is
// multiplied by the table rate and localized with at most two fraction
// digits.
func Format(amountBase float64, table Table, code string) string {
	if amountBase == 0 {
		return ZeroDisplay
	}
	entry, ok := table.Lookup(code)
	if !ok {
		return strconv.FormatFloat(amountBase, 'f', -1, 64) + " " + BaseCode
	}
	converted := amountBase * entry.Rate
	return printer.Sprintf("%v %s",
		number.Decimal(converted, number.MinFractionDigits(0), number.MaxFractionDigits(2)),
		entry.Code)
}
