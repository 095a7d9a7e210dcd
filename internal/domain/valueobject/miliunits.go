// Package valueobject contains domain value objects for the ledger.
package valueobject

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MiliunitsPerUnit is the number of miliunits in one currency unit.
const MiliunitsPerUnit = 1000

// ErrInvalidDisplayAmount is returned when a display amount cannot be parsed as a decimal number.
var ErrInvalidDisplayAmount = errors.New("invalid display amount")

var miliunitFactor = decimal.NewFromInt(MiliunitsPerUnit)

// ToMiliunits converts a display amount to miliunits, rounding half away from zero.
func ToMiliunits(amount decimal.Decimal) int64 {
	return amount.Mul(miliunitFactor).Round(0).IntPart()
}

// FromMiliunits converts miliunits back to a display amount. The conversion is exact.
func FromMiliunits(miliunits int64) decimal.Decimal {
	return decimal.New(miliunits, -3)
}

// ParseDisplayAmount parses a human-entered amount such as "12.34" or "-5" into miliunits.
func ParseDisplayAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDisplayAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Join(ErrInvalidDisplayAmount, err)
	}

	return ToMiliunits(amount), nil
}

// FormatMiliunits renders miliunits as a display amount with two decimal places.
func FormatMiliunits(miliunits int64) string {
	return FromMiliunits(miliunits).StringFixed(2)
}
