package series

// BuildTimeline returns every calendar day in [first, last], ascending and
// gap-free. An inverted span yields an empty timeline; callers treat that as
// "no data", not as an error.
func BuildTimeline(first, last Day) []Day {
	if first > last {
		return nil
	}
	out := make([]Day, 0, DaysBetween(first, last))
	for d := first; d <= last; d = d.Next() {
		out = append(out, d)
	}
	return out
}

// ForwardFill walks the timeline in ascending order carrying the most recent
// observed value across gaps. Every timeline day gets exactly one entry: the
// sparse value recorded that day if present, otherwise the carried value,
// otherwise initial. A nil/zero-valued initial of a pointer type V means "no
// prior observation" and is carried as-is until the first explicit point.
func ForwardFill[V any](timeline []Day, sparse map[Day]V, initial V) map[Day]V {
	filled := make(map[Day]V, len(timeline))
	current := initial
	for _, d := range timeline {
		if v, ok := sparse[d]; ok {
			current = v
		}
		filled[d] = current
	}
	return filled
}

// CarryInto advances initial through every sparse point strictly before day,
// in day order, and returns the value in effect when day begins. It is the
// forward-fill carry without materializing the intervening days.
func CarryInto[V any](sparse map[Day]V, initial V, day Day) V {
	current := initial
	var at Day
	seen := false
	for d, v := range sparse {
		if d >= day {
			continue
		}
		if !seen || d > at {
			current = v
			at = d
			seen = true
		}
	}
	return current
}
