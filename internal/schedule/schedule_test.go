package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayIndex(t *testing.T) {
	cases := []struct {
		name string
		want int
		ok   bool
	}{
		{"monday", 0, true},
		{"friday", 4, true},
		{"Wednesday", 2, true},
		{"  tuesday  ", 1, true},
		{"saturday", 0, false},
		{"sunday", 0, false},
		{"", 0, false},
		{"someday", 0, false},
	}
	for _, tc := range cases {
		got, ok := DayIndex(tc.name)
		assert.Equal(t, tc.ok, ok, "DayIndex(%q)", tc.name)
		if tc.ok {
			assert.Equal(t, tc.want, got, "DayIndex(%q)", tc.name)
		}
	}
}

func TestDayNameRoundTrip(t *testing.T) {
	for i := 0; i < 5; i++ {
		name, ok := DayName(i)
		assert.True(t, ok)
		idx, ok := DayIndex(name)
		assert.True(t, ok)
		assert.Equal(t, i, idx)
	}
	_, ok := DayName(5)
	assert.False(t, ok)
	_, ok = DayName(-1)
	assert.False(t, ok)
}

func TestWeekdayIndex(t *testing.T) {
	idx, ok := WeekdayIndex(time.Monday)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = WeekdayIndex(time.Friday)
	assert.True(t, ok)
	assert.Equal(t, 4, idx)

	_, ok = WeekdayIndex(time.Saturday)
	assert.False(t, ok)
	_, ok = WeekdayIndex(time.Sunday)
	assert.False(t, ok)
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 0, MinutesOfDay("00:00"))
	assert.Equal(t, 8*60+45, MinutesOfDay("08:45"))
	assert.Equal(t, 23*60+59, MinutesOfDay("23:59"))

	assert.Equal(t, -1, MinutesOfDay("24:00"))
	assert.Equal(t, -1, MinutesOfDay("12:60"))
	assert.Equal(t, -1, MinutesOfDay("1230"))
	assert.Equal(t, -1, MinutesOfDay(""))
	assert.Equal(t, -1, MinutesOfDay("ab:cd"))
}

func TestSlotsCoverFivePeriods(t *testing.T) {
	assert.Len(t, Slots, 5)
	for period, slot := range Slots {
		start := MinutesOfDay(slot.Start)
		end := MinutesOfDay(slot.End)
		assert.GreaterOrEqual(t, start, 0, "period %d start", period)
		assert.Greater(t, end, start, "period %d window", period)
	}
	assert.Equal(t, Slot{Start: "08:45", End: "10:15"}, Slots[1])
	assert.Equal(t, Slot{Start: "16:30", End: "18:00"}, Slots[5])
}
