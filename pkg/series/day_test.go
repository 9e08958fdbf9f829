package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayFromUnix(t *testing.T) {
	tests := []struct {
		name string
		sec  int64
		want Day
	}{
		{name: "midnight", sec: 86400, want: Day(86400)},
		{name: "midday truncates down", sec: 86400 + 43200, want: Day(86400)},
		{name: "one second before midnight", sec: 2*86400 - 1, want: Day(86400)},
		{name: "epoch", sec: 0, want: Day(0)},
		{name: "negative truncates toward older day", sec: -1, want: Day(-86400)},
		{name: "negative midnight is exact", sec: -86400, want: Day(-86400)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayFromUnix(tt.sec))
		})
	}
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2024, 3, 15, 17, 4, 9, 0, time.UTC)
	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Day(midnight.Unix()), DayOf(ts))
	assert.Equal(t, midnight, DayOf(ts).Time())
}

func TestDayArithmetic(t *testing.T) {
	d := DayFromUnix(10 * 86400)
	assert.Equal(t, d.AddDays(1), d.Next())
	assert.Equal(t, d.AddDays(-1), d.Prev())
	assert.Equal(t, Day(17*86400), d.AddDays(7))
	assert.Equal(t, Day(3*86400), d.AddDays(-7))
}

func TestDaysBetween(t *testing.T) {
	d := Day(100 * 86400)
	assert.Equal(t, 1, DaysBetween(d, d))
	assert.Equal(t, 8, DaysBetween(d, d.AddDays(7)))
	assert.Equal(t, 0, DaysBetween(d, d.Prev()))
}

func TestDayString(t *testing.T) {
	assert.Equal(t, "86400", Day(86400).String())
	assert.Equal(t, "0", Day(0).String())
}
