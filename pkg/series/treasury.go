package series

import (
	"context"
	"fmt"
	"math/big"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultTreasuryWindowDays is the trailing window applied when the caller
// supplies none.
const DefaultTreasuryWindowDays = 30

// TreasuryService values the DAO's token treasury per day over a fixed
// trailing window ending today: the forward-filled token quantity times the
// forward-filled daily unit price. No pricing configured and pricing with
// no data both yield an empty series.
type TreasuryService struct {
	store  MetricStore
	prices PriceStore
	clock  Clock
	logger *zap.Logger
	pool   pond.Pool
}

// NewTreasuryService wires a treasury valuation service. prices may be nil
// when no price source is configured for the DAO.
func NewTreasuryService(store MetricStore, prices PriceStore, clock Clock, logger *zap.Logger) *TreasuryService {
	return &TreasuryService{
		store:  store,
		prices: prices,
		clock:  clock,
		logger: logger,
		pool:   pond.NewPool(4),
	}
}

// ComputeTokenSeries values the treasury for each of the last `days`
// calendar days. Days preceding the first quantity or price observation are
// omitted, not zero-filled.
func (s *TreasuryService) ComputeTokenSeries(ctx context.Context, days int, order Order, tokenDecimals int32) (*TreasurySeries, error) {
	if s.prices == nil {
		return &TreasurySeries{Items: []TreasuryItem{}}, nil
	}
	if days <= 0 {
		days = DefaultTreasuryWindowDays
	}

	today := s.clock.Today()
	start := today.AddDays(-(days - 1))

	// Prior state for both series, fetched in parallel; lookup failures
	// degrade to "no history".
	var initQuantity *big.Int
	var initPrice *decimal.Decimal
	group := s.pool.NewGroupContext(ctx)
	group.Submit(func() {
		p, err := s.store.GetLastBefore(ctx, KindTreasuryBalance, start)
		if err != nil {
			s.logger.Warn("prior treasury balance lookup failed", zap.Error(err))
			return
		}
		if p != nil {
			initQuantity = p.Value
		}
	})
	group.Submit(func() {
		p, err := s.prices.GetLastPriceBefore(ctx, start)
		if err != nil {
			s.logger.Warn("prior token price lookup failed", zap.Error(err))
			return
		}
		if p != nil {
			price := p.Price
			initPrice = &price
		}
	})
	_ = group.Wait()

	quantityRows, err := s.store.GetRange(ctx, []MetricKind{KindTreasuryBalance}, &start, &today, OrderAsc, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch treasury balance points: %w", err)
	}
	priceRows, err := s.prices.GetPricesRange(ctx, start, today)
	if err != nil {
		return nil, fmt.Errorf("fetch token prices: %w", err)
	}

	// A price source that knows nothing collapses to the same empty result
	// as no price source at all.
	if initPrice == nil && len(priceRows) == 0 {
		return &TreasurySeries{Items: []TreasuryItem{}}, nil
	}

	quantities := bucketByDay(quantityRows)
	prices := make(map[Day]*decimal.Decimal, len(priceRows))
	for _, p := range priceRows {
		price := p.Price
		prices[p.Day] = &price
	}

	timeline := BuildTimeline(start, today)
	quantityFill := ForwardFill(timeline, quantities, initQuantity)
	priceFill := ForwardFill(timeline, prices, initPrice)

	items := make([]TreasuryItem, 0, len(timeline))
	for _, d := range timeline {
		quantity := quantityFill[d]
		price := priceFill[d]
		if quantity == nil || price == nil {
			continue
		}
		items = append(items, TreasuryItem{
			Date:  d.Unix(),
			Value: TokenValue(quantity, tokenDecimals, *price),
		})
	}
	if order == OrderDesc {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	return &TreasurySeries{Items: items, TotalCount: len(items)}, nil
}
