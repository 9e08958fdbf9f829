package series

// SeriesItem is one day of a computed ratio series. Date is the day's
// epoch-seconds rendered as a decimal string; Value is a fixed two-decimal
// string.
type SeriesItem struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// SeriesPage is one page of a daily ratio series plus its cursor metadata.
// StartDate and EndDate are the first and last returned item's dates, not
// the requested bounds; both are nil when the page is empty.
type SeriesPage struct {
	Items       []SeriesItem `json:"items"`
	TotalCount  int          `json:"total_count"`
	HasNextPage bool         `json:"has_next_page"`
	StartDate   *string      `json:"start_date"`
	EndDate     *string      `json:"end_date"`
}

func emptyPage() *SeriesPage {
	return &SeriesPage{Items: []SeriesItem{}}
}

// TreasuryItem is one day of the token-treasury valuation series.
type TreasuryItem struct {
	Date  int64   `json:"date"`
	Value float64 `json:"value"`
}

// TreasurySeries is the fixed trailing-window treasury valuation result.
type TreasurySeries struct {
	Items      []TreasuryItem `json:"items"`
	TotalCount int            `json:"total_count"`
}
