package series

import "time"

// Clock supplies the current calendar day. The unbounded end of a series is
// "today", so the services take a Clock instead of reading the wall clock,
// which keeps results reproducible under test.
type Clock interface {
	Today() Day
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Today() Day {
	return DayOf(time.Now().UTC())
}

// FixedClock always reports the same day.
type FixedClock Day

func (c FixedClock) Today() Day {
	return Day(c)
}
