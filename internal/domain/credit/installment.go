package credit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// precision of intermediate results; well beyond cent accuracy over 600 periods.
const internalPrecision int32 = 28

var (
	ErrInvalidTenure = errors.New("tenure must be positive")

	monthlyRateDivisor = decimal.NewFromInt(1200)
)

// Installment returns the fixed monthly repayment for a loan with an annual
// percentage rate, amortised over tenure monthly periods. A zero rate yields
// a straight-line split.
func Installment(principal, annualRatePct decimal.Decimal, tenure int) (decimal.Decimal, error) {
	if tenure <= 0 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidTenure, tenure)
	}
	n := decimal.NewFromInt(int64(tenure))

	monthlyRate := annualRatePct.DivRound(monthlyRateDivisor, internalPrecision)
	if monthlyRate.IsZero() {
		return principal.Div(n), nil
	}

	growth := powInt(decimal.NewFromInt(1).Add(monthlyRate), tenure)
	numerator := principal.Mul(monthlyRate).Mul(growth)
	denominator := growth.Sub(decimal.NewFromInt(1))
	return numerator.DivRound(denominator, internalPrecision), nil
}

// powInt raises base to a non-negative integer power by squaring, rounding
// each step so the mantissa stays bounded.
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(internalPrecision)
		}
		base = base.Mul(base).Round(internalPrecision)
		exp >>= 1
	}
	return result
}
