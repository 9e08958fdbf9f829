package series

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	bpsScale   = big.NewInt(10000)
	centiScale = big.NewInt(100)
)

// Percentage renders numerator/denominator as a percent string with exactly
// two decimals, using scaled-integer arithmetic throughout: the quotient is
// computed at basis-point precision with truncating integer division, then
// split into whole and fractional parts. A missing operand or a
// non-positive denominator yields "0.00"; that is the series' defined value,
// not an error.
func Percentage(numerator, denominator *big.Int) string {
	if numerator == nil || denominator == nil || denominator.Sign() <= 0 {
		return "0.00"
	}
	scaled := new(big.Int).Mul(numerator, bpsScale)
	scaled.Quo(scaled, denominator)
	return formatCenti(scaled)
}

// formatCenti renders a value scaled by 100 as a fixed two-decimal string.
func formatCenti(v *big.Int) string {
	abs := new(big.Int).Abs(v)
	whole, frac := new(big.Int).QuoRem(abs, centiScale, new(big.Int))
	s := fmt.Sprintf("%s.%02d", whole.String(), frac.Int64())
	if v.Sign() < 0 {
		s = "-" + s
	}
	return s
}

// TokenValue converts a raw token quantity (a scaled integer with the given
// number of decimals) into its monetary value at the given unit price.
func TokenValue(quantity *big.Int, decimals int32, price decimal.Decimal) float64 {
	return decimal.NewFromBigInt(quantity, -decimals).Mul(price).InexactFloat64()
}
