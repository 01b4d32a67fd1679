package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// MaxUint64Decimal is the largest amount of base units an account can hold.
var MaxUint64Decimal = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

// half is used by the half-down rounding of base units.
var half = decimal.New(5, -1)

// NewFromUint64 returns the given unsigned integer as decimal.Decimal
func NewFromUint64(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
}

// MulDecimal takes two decimal.Decimal numbers and multiply them x * y and returns the result as decimal.Decimal
func MulDecimal(X, Y decimal.Decimal) (z decimal.Decimal) {
	z = X.Mul(Y)
	return
}

// RoundHalfDown rounds a non-negative decimal to an integer, resolving ties
// toward zero.
func RoundHalfDown(d decimal.Decimal) decimal.Decimal {
	floor := d.Truncate(0)
	if d.Sub(floor).GreaterThan(half) {
		return floor.Add(decimal.NewFromInt(1))
	}
	return floor
}
