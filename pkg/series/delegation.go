package series

import (
	"context"
	"fmt"
	"math/big"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
)

const (
	// DefaultLimit is the page size applied when the caller supplies none.
	DefaultLimit = 50
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// SeriesQuery selects a slice of a daily ratio series. After/Before are
// exclusive date cursors, StartDate/EndDate inclusive range bounds; a nil
// EndDate makes the series open-ended, extending to today. All Day fields
// must already be normalized to midnight UTC.
type SeriesQuery struct {
	After     *Day
	Before    *Day
	StartDate *Day
	EndDate   *Day
	Order     Order
	Limit     int
}

// DelegationService computes the daily delegated-supply percentage series
// for one DAO by forward-filling the two sparse supply series and deriving
// their ratio. Each call is stateless: two point lookups, two range
// fetches, then pure in-memory computation.
type DelegationService struct {
	store  MetricStore
	clock  Clock
	logger *zap.Logger
	pool   pond.Pool
}

func NewDelegationService(store MetricStore, clock Clock, logger *zap.Logger) *DelegationService {
	return &DelegationService{
		store:  store,
		clock:  clock,
		logger: logger,
		pool:   pond.NewPool(4),
	}
}

// ComputePercentageSeries builds one page of the delegation percentage
// series: delegated supply over total supply per day, forward-filled across
// gaps, rendered with two decimals.
func (s *DelegationService) ComputePercentageSeries(ctx context.Context, q SeriesQuery) (*SeriesPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	order := q.Order
	if order != OrderDesc {
		order = OrderAsc
	}

	today := s.clock.Today()
	end := today
	if q.EndDate != nil {
		end = *q.EndDate
	}

	// The earliest date of interest; prior state is looked up at or before it.
	var ref *Day
	switch {
	case q.After != nil:
		ref = q.After
	case q.StartDate != nil:
		ref = q.StartDate
	}

	// The two prior-value lookups are independent; a failed lookup degrades
	// to "no history" rather than failing the request.
	var initDelegated, initTotal *big.Int
	if ref != nil {
		group := s.pool.NewGroupContext(ctx)
		group.Submit(func() { initDelegated = s.lastBefore(ctx, KindDelegatedSupply, *ref) })
		group.Submit(func() { initTotal = s.lastBefore(ctx, KindTotalSupply, *ref) })
		_ = group.Wait()
	}

	// One range fetch per kind: a shared row cap would truncate the busier
	// series first under skew, so each kind is fetched unbounded within the
	// range. A failed range fetch is fatal for the request.
	var delegatedRows, totalRows []MetricPoint
	var delegatedErr, totalErr error
	group := s.pool.NewGroupContext(ctx)
	group.Submit(func() {
		delegatedRows, delegatedErr = s.store.GetRange(ctx, []MetricKind{KindDelegatedSupply}, ref, &end, OrderAsc, 0)
	})
	group.Submit(func() {
		totalRows, totalErr = s.store.GetRange(ctx, []MetricKind{KindTotalSupply}, ref, &end, OrderAsc, 0)
	})
	_ = group.Wait()
	if delegatedErr != nil {
		return nil, fmt.Errorf("fetch delegated supply points: %w", delegatedErr)
	}
	if totalErr != nil {
		return nil, fmt.Errorf("fetch total supply points: %w", totalErr)
	}

	delegated := bucketByDay(delegatedRows)
	total := bucketByDay(totalRows)

	// The request lies entirely before any data: return an empty page, never
	// a fabricated flat zero line.
	if isZero(initDelegated) && isZero(initTotal) && len(delegated) == 0 && len(total) == 0 {
		return emptyPage(), nil
	}

	start, ok := effectiveStart(q, delegated, total, initDelegated, initTotal)
	if !ok || start > end {
		return emptyPage(), nil
	}

	window := NewWindow(start, end, q.After, q.Before)
	if window.Empty() {
		return emptyPage(), nil
	}

	// Only the page's days are materialized; the carry into the page start
	// replaces walking the days before it.
	page := window.Page(limit, order)
	timeline := BuildTimeline(page.First, page.Last)
	delegatedFill := ForwardFill(timeline, delegated, CarryInto(delegated, initDelegated, page.First))
	totalFill := ForwardFill(timeline, total, CarryInto(total, initTotal, page.First))

	items := make([]SeriesItem, 0, len(timeline))
	for _, d := range timeline {
		items = append(items, SeriesItem{
			Date:  d.String(),
			Value: Percentage(delegatedFill[d], totalFill[d]),
		})
	}
	if order == OrderDesc {
		reverseItems(items)
	}

	result := &SeriesPage{
		Items:       items,
		TotalCount:  window.Count(),
		HasNextPage: window.HasNextPage(limit, order, q.EndDate != nil, today),
	}
	if len(items) > 0 {
		result.StartDate = &items[0].Date
		result.EndDate = &items[len(items)-1].Date
	}
	return result, nil
}

// effectiveStart picks the first timeline day. When no prior state exists
// the start never extends backward past the first observation: a zero
// baseline before real data would be fabricated, not measured.
func effectiveStart(q SeriesQuery, delegated, total map[Day]*big.Int, initDelegated, initTotal *big.Int) (Day, bool) {
	first, hasData := firstDataDay(delegated, total)

	var start Day
	switch {
	case q.StartDate != nil:
		start = *q.StartDate
	case q.After != nil:
		start = *q.After
	default:
		if !hasData {
			return 0, false
		}
		start = first
	}

	if isZero(initDelegated) && isZero(initTotal) && hasData && first > start {
		start = first
	}
	return start, true
}

func (s *DelegationService) lastBefore(ctx context.Context, kind MetricKind, day Day) *big.Int {
	p, err := s.store.GetLastBefore(ctx, kind, day)
	if err != nil {
		s.logger.Warn("prior-value lookup failed, treating series as having no history",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil
	}
	if p == nil {
		return nil
	}
	return p.Value
}

// bucketByDay groups change-points by day. The store yields at most one row
// per (kind, day); if it ever does not, the later row wins.
func bucketByDay(points []MetricPoint) map[Day]*big.Int {
	out := make(map[Day]*big.Int, len(points))
	for _, p := range points {
		out[p.Day] = p.Value
	}
	return out
}

func firstDataDay(buckets ...map[Day]*big.Int) (Day, bool) {
	var first Day
	found := false
	for _, b := range buckets {
		for d := range b {
			if !found || d < first {
				first = d
				found = true
			}
		}
	}
	return first, found
}

// isZero collapses "never existed" and "explicitly zero" into the same
// zero. The distinction is kept as nil up to this point on purpose.
func isZero(v *big.Int) bool {
	return v == nil || v.Sign() == 0
}

func reverseItems(items []SeriesItem) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
