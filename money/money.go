// Package money holds the currency rules shared by bounties and prizes.
//
// All amounts are shopspring decimals.  Nothing here ever sees a float.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CentPlaces is the quantization exponent for cash.
const CentPlaces = 2

var two = decimal.NewFromInt(2)

// Quantize truncates an amount to whole cents toward the lower value.  Any
// fractional cent is never paid out; callers that must conserve value keep
// the difference themselves.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.RoundFloor(CentPlaces)
}

// Half returns d/2 without rounding.
func Half(d decimal.Decimal) decimal.Decimal {
	return d.Div(two)
}

// Parse reads a non-negative amount such as "100" or "12.50".
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("can't parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q is negative", s)
	}
	return d, nil
}

// Sum adds amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
