package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedCurrency is returned for currencies missing from the FX table.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// rates are units of the currency per one EUR.
var rates = map[string]decimal.Decimal{
	"EUR": decimal.NewFromInt(1),
	"USD": decimal.RequireFromString("1.08"),
	"GBP": decimal.RequireFromString("0.86"),
	"CHF": decimal.RequireFromString("0.95"),
	"PLN": decimal.RequireFromString("4.32"),
	"SEK": decimal.RequireFromString("11.45"),
	"DKK": decimal.RequireFromString("7.46"),
	"CZK": decimal.RequireFromString("25.05"),
}

// Conversion is the outcome of converting a foreign amount into EUR.
type Conversion struct {
	// Cents is the converted amount in EUR minor units.
	Cents int64
	// Rate is the applied rate as a decimal string.
	Rate string
}

// ToEUR converts minor units of currency into EUR cents, rounding half away from zero.
func ToEUR(amount int64, currency string) (Conversion, error) {
	rate, ok := rates[strings.ToUpper(currency)]
	if !ok {
		return Conversion{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}

	converted := decimal.NewFromInt(amount).Div(rate).Round(0)
	return Conversion{Cents: converted.IntPart(), Rate: rate.String()}, nil
}
