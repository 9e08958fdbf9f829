package series

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	exp18 := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	tests := []struct {
		name string
		num  *big.Int
		den  *big.Int
		want string
	}{
		{name: "simple fifth", num: big.NewInt(200), den: big.NewInt(1000), want: "20.00"},
		{name: "whole hundred", num: big.NewInt(5), den: big.NewInt(5), want: "100.00"},
		{name: "truncates, never rounds", num: big.NewInt(1), den: big.NewInt(3), want: "33.33"},
		{name: "two thirds truncates", num: big.NewInt(2), den: big.NewInt(3), want: "66.66"},
		{name: "sub-cent truncates to zero", num: big.NewInt(1), den: big.NewInt(100000), want: "0.00"},
		{name: "over one hundred percent", num: big.NewInt(3), den: big.NewInt(2), want: "150.00"},
		{name: "zero numerator", num: big.NewInt(0), den: big.NewInt(1000), want: "0.00"},
		{name: "zero denominator", num: big.NewInt(200), den: big.NewInt(0), want: "0.00"},
		{name: "negative denominator", num: big.NewInt(200), den: big.NewInt(-5), want: "0.00"},
		{name: "nil numerator", num: nil, den: big.NewInt(10), want: "0.00"},
		{name: "nil denominator", num: big.NewInt(10), den: nil, want: "0.00"},
		{
			name: "18-decimal token amounts stay exact",
			num:  new(big.Int).Mul(big.NewInt(123456), exp18),
			den:  new(big.Int).Mul(big.NewInt(1000000), exp18),
			want: "12.34",
		},
		{
			name: "beyond float64 precision",
			num:  new(big.Int).Mul(big.NewInt(1), new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)),
			den:  new(big.Int).Mul(big.NewInt(4), new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)),
			want: "25.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.num, tt.den))
		})
	}
}

func TestPercentageDoesNotMutateOperands(t *testing.T) {
	num := big.NewInt(200)
	den := big.NewInt(1000)
	_ = Percentage(num, den)
	assert.Equal(t, int64(200), num.Int64())
	assert.Equal(t, int64(1000), den.Int64())
}

func TestTokenValue(t *testing.T) {
	qty := new(big.Int).Mul(big.NewInt(100), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	price := decimal.NewFromInt(10)
	assert.InDelta(t, 1000.0, TokenValue(qty, 18, price), 1e-9)

	half := decimal.RequireFromString("0.5")
	assert.InDelta(t, 50.0, TokenValue(qty, 18, half), 1e-9)

	sixDecimals := big.NewInt(2_500_000)
	assert.InDelta(t, 25.0, TokenValue(sixDecimals, 6, price), 1e-9)
}
