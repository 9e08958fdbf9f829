package series

// Window is the inclusive day span of a dense daily series after applying
// the exclusive after/before cursor bounds. Because the underlying series
// has exactly one item per day, counts and page edges are pure date
// arithmetic; no materialized slice is needed to size a page.
type Window struct {
	First Day
	Last  Day
}

// NewWindow intersects the computed range [first, last] with the cursor
// bounds: items survive when day > after and day < before.
func NewWindow(first, last Day, after, before *Day) Window {
	if after != nil && *after >= first {
		first = after.Next()
	}
	if before != nil && *before <= last {
		last = before.Prev()
	}
	return Window{First: first, Last: last}
}

// Empty reports whether no days survive the cursor filter.
func (w Window) Empty() bool {
	return w.First > w.Last
}

// Count is the number of filtered candidate days before page truncation.
func (w Window) Count() int {
	return DaysBetween(w.First, w.Last)
}

// Page returns the inclusive day span of one page of at most limit days:
// the oldest days for ascending order, the newest for descending.
func (w Window) Page(limit int, order Order) Window {
	if w.Empty() || w.Count() <= limit {
		return w
	}
	if order == OrderDesc {
		return Window{First: w.Last.AddDays(-(limit - 1)), Last: w.Last}
	}
	return Window{First: w.First, Last: w.First.AddDays(limit - 1)}
}

// HasNextPage reports whether more items remain past a page of limit days.
// With a caller-supplied end date it is a plain count check. With an
// open-ended series the page is only "caught up" once its newest day reaches
// today: until then a full page always has a next page, and at the live edge
// it never does.
func (w Window) HasNextPage(limit int, order Order, endBounded bool, today Day) bool {
	if w.Count() <= limit {
		return false
	}
	if endBounded {
		return true
	}
	return w.Page(limit, order).Last < today
}
