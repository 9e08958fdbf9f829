package series

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
)

// MetricKind identifies one sparse governance metric series.
type MetricKind string

const (
	KindDelegatedSupply MetricKind = "delegated_supply"
	KindTotalSupply     MetricKind = "total_supply"
	KindTreasuryBalance MetricKind = "treasury_balance"
)

// Order is the sort direction of a returned series.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// MetricPoint is a single observed change: the metric held Value starting at
// Day until superseded by a later point. Values are raw token amounts
// (scaled integers, typically 18 decimals), so they exceed uint64.
type MetricPoint struct {
	Day   Day
	Kind  MetricKind
	Value *big.Int
}

// PricePoint is a daily unit-price observation for the DAO's token.
type PricePoint struct {
	Day   Day
	Price decimal.Decimal
}

// MetricStore is the sparse metric store the services read from. It persists
// change-points only, never daily snapshots.
type MetricStore interface {
	// GetRange returns change-points for the given kinds within
	// [start, end], ordered by day. Nil bounds are open; limit <= 0 means
	// no row cap.
	GetRange(ctx context.Context, kinds []MetricKind, start, end *Day, order Order, limit int) ([]MetricPoint, error)

	// GetLastBefore returns the most recent change-point for kind at or
	// before day, or nil when the series has no history there.
	GetLastBefore(ctx context.Context, kind MetricKind, day Day) (*MetricPoint, error)
}

// PriceStore supplies daily token prices. A nil PriceStore means no pricing
// is configured for the DAO, which the treasury series treats the same as a
// provider with no data: an empty result.
type PriceStore interface {
	GetPricesRange(ctx context.Context, start, end Day) ([]PricePoint, error)
	GetLastPriceBefore(ctx context.Context, day Day) (*PricePoint, error)
}
