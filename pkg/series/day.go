package series

import (
	"strconv"
	"time"
)

// DaySeconds is the length of a calendar day in epoch seconds.
const DaySeconds = 86400

// Day is a calendar day: a Unix timestamp truncated to midnight UTC.
// All store lookups and timeline arithmetic operate on Days, never on raw
// timestamps, because the store buckets observations by day.
type Day int64

// DayFromUnix truncates an epoch-seconds timestamp to its midnight-UTC day.
func DayFromUnix(sec int64) Day {
	rem := sec % DaySeconds
	if rem < 0 {
		rem += DaySeconds
	}
	return Day(sec - rem)
}

// DayOf truncates a time.Time to its midnight-UTC day.
func DayOf(t time.Time) Day {
	return DayFromUnix(t.Unix())
}

// Unix returns the day's midnight-UTC epoch seconds.
func (d Day) Unix() int64 {
	return int64(d)
}

// Time returns the day's midnight UTC as a time.Time.
func (d Day) Time() time.Time {
	return time.Unix(int64(d), 0).UTC()
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return d + DaySeconds
}

// Prev returns the preceding calendar day.
func (d Day) Prev() Day {
	return d - DaySeconds
}

// AddDays returns the day shifted by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	return d + Day(n)*DaySeconds
}

// DaysBetween returns the number of days in the inclusive span [first, last],
// or 0 when the span is empty.
func DaysBetween(first, last Day) int {
	if first > last {
		return 0
	}
	return int((last-first)/DaySeconds) + 1
}

// String renders the day as its epoch-seconds decimal representation, the
// wire format used by series items.
func (d Day) String() string {
	return strconv.FormatInt(int64(d), 10)
}
