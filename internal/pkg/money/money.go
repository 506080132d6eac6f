// internal/pkg/money/money.go
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToDecimal converts cents into a dollar amount
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ApplyRate returns cents * rate rounded half away from zero to the cent
func ApplyRate(cents int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Mul(rate).Round(0).IntPart()
}

// Format renders cents as "$1,234.56"
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	fixed := ToDecimal(cents).StringFixed(2)
	whole, fraction, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	return sign + "$" + grouped.String() + "." + fraction
}

// FromDollars converts a decimal dollar amount into cents, rounding to the cent
func FromDollars(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
