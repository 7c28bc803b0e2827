// Package format renders quantities for people: grouped thousands and the
// fixed display precision of each kind of quantity.
package format

import (
	"fmt"
	"math"

	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return "NaN"
	}
	formatted := Number(math.Abs(amount), constants.CurrencyDisplayDecimals)
	if mathutil.RoundTo(amount, constants.CurrencyDisplayDecimals) < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return Number(amount, constants.CurrencyDisplayDecimals)
}

// Number rounds value half away from zero to places decimals and groups the
// integer digits in thousands.
func Number(value float64, places int32) string {
	if !mathutil.IsFinite(value) {
		return "NaN"
	}
	rounded := mathutil.RoundTo(value, places)
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", places), rounded)
}
