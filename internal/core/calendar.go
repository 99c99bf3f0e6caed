package core

import "time"

// DaysPerWeek is the width of every Week in a WeekGrid.
const DaysPerWeek = 7

type (
	// Slot is one cell of a calendar week. Day is the day of the month,
	// or 0 for padding outside the month. Record is nil when the day has
	// no data.
	Slot struct {
		Day    int
		Record *Record
	}

	// Week always starts on Sunday.
	Week [DaysPerWeek]Slot

	WeekGrid []Week
)

// Empty reports whether the slot carries no record.
func (s Slot) Empty() bool {
	return s.Record == nil
}

// InMonth reports whether the slot is a real day of the month rather than padding.
func (s Slot) InMonth() bool {
	return s.Day > 0
}

// Weekdays lists weekday names in grid column order.
func Weekdays() []string {
	out := make([]string, DaysPerWeek)
	for i := range out {
		out[i] = time.Weekday(i).String()
	}
	return out
}

// DaysIn returns the number of days of month in year (proleptic Gregorian).
func DaysIn(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the column of the month's first day, Sunday = 0.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildWeekGrid lays out a month as Sunday-first weeks. byDay holds the
// records of that month keyed by day of month; days without an entry become
// empty slots, and the first and last weeks are padded to full width.
func BuildWeekGrid(year, month int, byDay map[int]*Record) WeekGrid {
	lead := FirstWeekday(year, month)
	days := DaysIn(year, month)

	slots := make([]Slot, 0, lead+days+DaysPerWeek)
	for i := 0; i < lead; i++ {
		slots = append(slots, Slot{})
	}
	for day := 1; day <= days; day++ {
		slots = append(slots, Slot{Day: day, Record: byDay[day]})
	}
	for len(slots)%DaysPerWeek != 0 {
		slots = append(slots, Slot{})
	}

	grid := make(WeekGrid, 0, len(slots)/DaysPerWeek)
	for i := 0; i < len(slots); i += DaysPerWeek {
		var w Week
		copy(w[:], slots[i:i+DaysPerWeek])
		grid = append(grid, w)
	}
	return grid
}

// Slots flattens the grid into a single sequence, week by week.
func (g WeekGrid) Slots() []Slot {
	out := make([]Slot, 0, len(g)*DaysPerWeek)
	for _, w := range g {
		out = append(out, w[:]...)
	}
	return out
}
