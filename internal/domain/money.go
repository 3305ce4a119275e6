package domain

import "github.com/shopspring/decimal"

// ToMinorUnits converts a major-unit amount (e.g. 12.34) to minor units
// (1234). Amounts with more than two decimal places are rejected; this is
// the only numeric-format boundary the engine defines.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return 0, ErrInvalidAmount
	}

	if !amount.Equal(amount.Round(2)) {
		return 0, ErrAmountPrecision
	}

	return amount.Shift(2).Round(0).IntPart(), nil
}

// FromMinorUnits converts minor units back to a major-unit decimal.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
