package series

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakePriceStore struct {
	prices   []PricePoint
	rangeErr error
	lastErr  error
}

func (f *fakePriceStore) GetPricesRange(_ context.Context, start, end Day) ([]PricePoint, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	var out []PricePoint
	for _, p := range f.prices {
		if p.Day >= start && p.Day <= end {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePriceStore) GetLastPriceBefore(_ context.Context, day Day) (*PricePoint, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	var best *PricePoint
	for i := range f.prices {
		p := f.prices[i]
		if p.Day > day {
			continue
		}
		if best == nil || p.Day > best.Day {
			best = &p
		}
	}
	return best, nil
}

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func newTreasuryService(t *testing.T, store MetricStore, prices PriceStore, today Day) *TreasuryService {
	t.Helper()
	return NewTreasuryService(store, prices, FixedClock(today), zaptest.NewLogger(t))
}

func TestComputeTokenSeriesOmitsDaysBeforeData(t *testing.T) {
	store := &fakeMetricStore{points: []MetricPoint{
		{Day: day(12), Kind: KindTreasuryBalance, Value: tokens(100)},
	}}
	prices := &fakePriceStore{prices: []PricePoint{
		{Day: day(12), Price: decimal.NewFromInt(10)},
	}}
	svc := newTreasuryService(t, store, prices, day(16))

	got, err := svc.ComputeTokenSeries(context.Background(), 7, OrderAsc, 18)
	require.NoError(t, err)
	require.Len(t, got.Items, 5, "days before the first observation are omitted, not zero-filled")
	assert.Equal(t, 5, got.TotalCount)
	assert.Equal(t, day(12).Unix(), got.Items[0].Date)
	assert.Equal(t, day(16).Unix(), got.Items[4].Date)
	for _, item := range got.Items {
		assert.InDelta(t, 1000.0, item.Value, 1e-9)
	}
}

func TestComputeTokenSeriesForwardFillsBothSeries(t *testing.T) {
	store := &fakeMetricStore{points: []MetricPoint{
		{Day: day(5), Kind: KindTreasuryBalance, Value: tokens(100)},
		{Day: day(13), Kind: KindTreasuryBalance, Value: tokens(200)},
	}}
	prices := &fakePriceStore{prices: []PricePoint{
		{Day: day(5), Price: decimal.NewFromInt(10)},
		{Day: day(15), Price: decimal.NewFromInt(20)},
	}}
	svc := newTreasuryService(t, store, prices, day(16))

	got, err := svc.ComputeTokenSeries(context.Background(), 7, OrderAsc, 18)
	require.NoError(t, err)
	require.Len(t, got.Items, 7, "prior state covers the whole window")
	assert.Equal(t, day(10).Unix(), got.Items[0].Date)
	assert.InDelta(t, 1000.0, got.Items[0].Value, 1e-9)  // carried 100 @ 10
	assert.InDelta(t, 2000.0, got.Items[3].Value, 1e-9)  // 200 @ 10 on day 13
	assert.InDelta(t, 4000.0, got.Items[5].Value, 1e-9)  // 200 @ 20 on day 15
	assert.InDelta(t, 4000.0, got.Items[6].Value, 1e-9)
}

func TestComputeTokenSeriesDescending(t *testing.T) {
	store := &fakeMetricStore{points: []MetricPoint{
		{Day: day(0), Kind: KindTreasuryBalance, Value: tokens(100)},
	}}
	prices := &fakePriceStore{prices: []PricePoint{
		{Day: day(0), Price: decimal.NewFromInt(1)},
	}}
	svc := newTreasuryService(t, store, prices, day(4))

	got, err := svc.ComputeTokenSeries(context.Background(), 5, OrderDesc, 18)
	require.NoError(t, err)
	require.Len(t, got.Items, 5)
	assert.Equal(t, day(4).Unix(), got.Items[0].Date)
	assert.Equal(t, day(0).Unix(), got.Items[4].Date)
}

func TestComputeTokenSeriesNoPriceSource(t *testing.T) {
	store := &fakeMetricStore{points: []MetricPoint{
		{Day: day(0), Kind: KindTreasuryBalance, Value: tokens(100)},
	}}
	svc := newTreasuryService(t, store, nil, day(4))

	got, err := svc.ComputeTokenSeries(context.Background(), 5, OrderAsc, 18)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.TotalCount)
}

func TestComputeTokenSeriesPriceSourceWithoutData(t *testing.T) {
	store := &fakeMetricStore{points: []MetricPoint{
		{Day: day(0), Kind: KindTreasuryBalance, Value: tokens(100)},
	}}
	svc := newTreasuryService(t, store, &fakePriceStore{}, day(4))

	got, err := svc.ComputeTokenSeries(context.Background(), 5, OrderAsc, 18)
	require.NoError(t, err)
	assert.Empty(t, got.Items, "a price source with no history yields no valuations")
}

func TestComputeTokenSeriesTokenDecimals(t *testing.T) {
	store := &fakeMetricStore{points: []MetricPoint{
		{Day: day(0), Kind: KindTreasuryBalance, Value: big.NewInt(2_500_000)},
	}}
	prices := &fakePriceStore{prices: []PricePoint{
		{Day: day(0), Price: decimal.NewFromInt(4)},
	}}
	svc := newTreasuryService(t, store, prices, day(0))

	got, err := svc.ComputeTokenSeries(context.Background(), 1, OrderAsc, 6)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.InDelta(t, 10.0, got.Items[0].Value, 1e-9)
}

func TestComputeTokenSeriesRangeErrorIsFatal(t *testing.T) {
	store := &fakeMetricStore{rangeErr: errors.New("connection refused")}
	prices := &fakePriceStore{prices: []PricePoint{
		{Day: day(0), Price: decimal.NewFromInt(1)},
	}}
	svc := newTreasuryService(t, store, prices, day(4))

	_, err := svc.ComputeTokenSeries(context.Background(), 5, OrderAsc, 18)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "treasury balance points")
}

func TestComputeTokenSeriesLookupErrorDegrades(t *testing.T) {
	store := &fakeMetricStore{
		points: []MetricPoint{
			{Day: day(2), Kind: KindTreasuryBalance, Value: tokens(100)},
		},
		lastErr: errors.New("timeout"),
	}
	prices := &fakePriceStore{
		prices:  []PricePoint{{Day: day(2), Price: decimal.NewFromInt(10)}},
		lastErr: errors.New("timeout"),
	}
	svc := newTreasuryService(t, store, prices, day(4))

	got, err := svc.ComputeTokenSeries(context.Background(), 5, OrderAsc, 18)
	require.NoError(t, err)
	require.Len(t, got.Items, 3, "degraded lookups fall back to in-window data only")
	assert.Equal(t, day(2).Unix(), got.Items[0].Date)
}
