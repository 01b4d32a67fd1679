package mathutil

import (
	"errors"

	"github.com/shopspring/decimal"
)

// maxUint64Digits is the number of digits of MaxUint64.
const maxUint64Digits = 20

var (
	// ErrAmountNotPositive is returned when converting a zero or negative amount.
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	// ErrAmountTooSmall is returned when an amount rounds to zero base units.
	ErrAmountTooSmall = errors.New("amount is below the smallest unit of the asset")
	// ErrAmountOverflow is returned when an amount does not fit 64 bits once
	// expressed in base units.
	ErrAmountOverflow = errors.New("amount exceeds the maximum number of base units")
)

// ToBaseUnits converts an amount expressed in decimal units of an asset into
// its integer base units, given the asset's decimal exponent.
// Example: 1.5 with 9 decimals returns 1_500_000_000.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	if !amount.IsPositive() {
		return 0, ErrAmountNotPositive
	}

	// Amounts out of range are rejected before rescaling, which costs as
	// much as the exponent is large.
	exp := int64(amount.Exponent()) + int64(decimals)
	if exp >= maxUint64Digits {
		return 0, ErrAmountOverflow
	}
	if int64(len(amount.Coefficient().String()))+exp < 0 {
		return 0, ErrAmountTooSmall
	}

	units := RoundHalfDown(amount.Shift(int32(decimals)))
	if units.IsZero() {
		return 0, ErrAmountTooSmall
	}
	if units.GreaterThan(MaxUint64Decimal) {
		return 0, ErrAmountOverflow
	}

	return units.BigInt().Uint64(), nil
}

// FromBaseUnits is the inverse of ToBaseUnits.
func FromBaseUnits(units uint64, decimals uint8) decimal.Decimal {
	return NewFromUint64(units).Shift(-int32(decimals))
}

// ApplyRate returns the amount of the counter asset worth the given amount,
// rate being expressed in counter asset units per unit.
func ApplyRate(amount, rate decimal.Decimal) decimal.Decimal {
	return MulDecimal(amount, rate)
}
