package controller

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/daolens/daolens/pkg/series"
)

const (
	defaultLimit = series.DefaultLimit
	maxLimit     = series.MaxLimit

	maxTreasuryDays = 365
)

// parseSeriesQuery extracts the cursor/range parameters of a series
// request. All date-like parameters are epoch seconds and get normalized to
// midnight UTC here, before the core ever sees them.
func parseSeriesQuery(r *http.Request) (series.SeriesQuery, error) {
	qs := r.URL.Query()

	limit := defaultLimit
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return series.SeriesQuery{}, errInvalidLimit
		}
		limit = int(math.Min(float64(n), maxLimit))
	}

	order, err := parseOrder(qs)
	if err != nil {
		return series.SeriesQuery{}, err
	}

	after, err := parseDayParam(qs, "after")
	if err != nil {
		return series.SeriesQuery{}, err
	}
	before, err := parseDayParam(qs, "before")
	if err != nil {
		return series.SeriesQuery{}, err
	}
	startDate, err := parseDayParam(qs, "startDate")
	if err != nil {
		return series.SeriesQuery{}, err
	}
	endDate, err := parseDayParam(qs, "endDate")
	if err != nil {
		return series.SeriesQuery{}, err
	}

	return series.SeriesQuery{
		After:     after,
		Before:    before,
		StartDate: startDate,
		EndDate:   endDate,
		Order:     order,
		Limit:     limit,
	}, nil
}

// parseTreasurySpec extracts the trailing-window parameters of a treasury
// series request.
func parseTreasurySpec(r *http.Request) (int, series.Order, error) {
	qs := r.URL.Query()

	days := series.DefaultTreasuryWindowDays
	if v := qs.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return 0, "", errInvalidDays
		}
		days = int(math.Min(float64(n), maxTreasuryDays))
	}

	order, err := parseOrder(qs)
	if err != nil {
		return 0, "", err
	}

	return days, order, nil
}

// parseOrder parses the sort parameter, defaulting to "asc" (oldest first).
func parseOrder(qs url.Values) (series.Order, error) {
	switch qs.Get("sort") {
	case "", "asc":
		return series.OrderAsc, nil
	case "desc":
		return series.OrderDesc, nil
	default:
		return "", errInvalidSort
	}
}

func parseDayParam(qs url.Values, key string) (*series.Day, error) {
	v := qs.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return nil, &parseError{msg: "invalid " + key}
	}
	d := series.DayFromUnix(n)
	return &d, nil
}

var (
	errInvalidLimit = &parseError{msg: "invalid limit"}
	errInvalidDays  = &parseError{msg: "invalid days"}
	errInvalidSort  = &parseError{msg: "invalid sort, must be 'asc' or 'desc'"}
)

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }
