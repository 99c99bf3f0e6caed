package core

import (
	"fmt"
	"testing"
	"time"
)

func TestDaysIn(t *testing.T) {
	cases := []struct{ year, month, want int }{
		{2026, 1, 31},
		{2026, 2, 28},
		{2028, 2, 29},
		{1900, 2, 28},
		{2000, 2, 29},
		{2026, 4, 30},
		{2026, 12, 31},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysIn(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestFirstWeekday_SundayIsZero(t *testing.T) {
	if got := FirstWeekday(2026, 2); got != 0 {
		t.Fatalf("Feb 2026 starts on Sunday, got column %d", got)
	}
	if got := FirstWeekday(2026, 1); got != 4 {
		t.Fatalf("Jan 2026 starts on Thursday, got column %d", got)
	}
	if got := FirstWeekday(2026, 8); got != 6 {
		t.Fatalf("Aug 2026 starts on Saturday, got column %d", got)
	}
}

func TestBuildWeekGrid_JanuaryScenario(t *testing.T) {
	recs := []Record{
		NewRecord(NewDate(2026, 1, 1), "Jan 1", nil),
		NewRecord(NewDate(2026, 1, 2), "Jan 2", nil),
		NewRecord(NewDate(2026, 1, 3), "Jan 3", nil),
	}
	byDay := map[int]*Record{1: &recs[0], 2: &recs[1], 3: &recs[2]}

	grid := BuildWeekGrid(2026, 1, byDay)
	if len(grid) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(grid))
	}

	first := grid[0]
	for i := 0; i < 4; i++ {
		if !first[i].Empty() || first[i].InMonth() {
			t.Fatalf("slot %d should be leading padding: %+v", i, first[i])
		}
	}
	for i, day := range []int{1, 2, 3} {
		s := first[4+i]
		if s.Empty() || s.Record.Date.Day() != day || s.Day != day {
			t.Fatalf("slot %d should hold Jan %d: %+v", 4+i, day, s)
		}
	}

	for w := 1; w < len(grid); w++ {
		for i, s := range grid[w] {
			if !s.Empty() {
				t.Fatalf("week %d slot %d should be empty: %+v", w, i, s)
			}
		}
	}
	if grid[1][0].Day != 4 || grid[0][0].Day != 0 || grid[0][0].InMonth() {
		t.Fatalf("in-month days must keep their number, padding must not: %+v %+v", grid[1][0], grid[0][0])
	}
	// Jan 31 2026 is a Saturday, so the last week has no trailing padding.
	if grid[4][6].Day != 31 {
		t.Fatalf("last slot: %+v", grid[4][6])
	}
}

func TestBuildWeekGrid_WednesdayStart(t *testing.T) {
	// April 1 2026 is a Wednesday.
	grid := BuildWeekGrid(2026, 4, nil)
	want := []int{0, 0, 0, 1, 2, 3, 4}
	for i, s := range grid[0] {
		if s.Day != want[i] {
			t.Fatalf("first week slot %d: got day %d want %d", i, s.Day, want[i])
		}
	}
}

func TestBuildWeekGrid_EdgeShapes(t *testing.T) {
	// Feb 2026 starts on Sunday and ends on Saturday.
	feb := BuildWeekGrid(2026, 2, nil)
	if len(feb) != 4 {
		t.Fatalf("Feb 2026 should be exactly 4 weeks, got %d", len(feb))
	}
	if feb[0][0].Day != 1 {
		t.Fatalf("no leading blanks expected, got %+v", feb[0][0])
	}
	if feb[3][6].Day != 28 {
		t.Fatalf("no trailing blanks expected, got %+v", feb[3][6])
	}

	// Feb 2028 is a leap month starting on Tuesday.
	feb28 := BuildWeekGrid(2028, 2, nil)
	if len(feb28) != 5 {
		t.Fatalf("Feb 2028 should be 5 weeks, got %d", len(feb28))
	}
	last := 0
	for _, s := range feb28.Slots() {
		if s.Day > last {
			last = s.Day
		}
	}
	if last != 29 {
		t.Fatalf("Feb 2028 should reach day 29, got %d", last)
	}
}

func TestBuildWeekGrid_Properties(t *testing.T) {
	for year := 2024; year <= 2028; year++ {
		for month := 1; month <= 12; month++ {
			t.Run(fmt.Sprintf("%d-%02d", year, month), func(t *testing.T) {
				days := DaysIn(year, month)
				recs := make([]Record, days)
				byDay := make(map[int]*Record, days)
				for d := 1; d <= days; d += 2 {
					recs[d-1] = NewRecord(NewDate(year, month, d), "", nil)
					byDay[d] = &recs[d-1]
				}

				grid := BuildWeekGrid(year, month, byDay)
				slots := grid.Slots()
				if len(slots)%DaysPerWeek != 0 || len(slots) < days {
					t.Fatalf("bad slot count %d for %d days", len(slots), days)
				}
				lead := FirstWeekday(year, month)
				wantWeeks := (lead + days + DaysPerWeek - 1) / DaysPerWeek
				if len(grid) != wantWeeks {
					t.Fatalf("weeks: got %d want %d", len(grid), wantWeeks)
				}

				seen := map[string]int{}
				for w, week := range grid {
					for col, s := range week {
						if s.InMonth() {
							wd := time.Date(year, time.Month(month), s.Day, 0, 0, 0, 0, time.UTC).Weekday()
							if int(wd) != col {
								t.Fatalf("week %d: day %d in column %d, weekday %v", w, s.Day, col, wd)
							}
						}
						if s.Empty() {
							continue
						}
						if int(s.Record.Date.Weekday()) != col {
							t.Fatalf("record %s in column %d", s.Record.Slug, col)
						}
						seen[s.Record.Slug]++
					}
				}
				if len(seen) != len(byDay) {
					t.Fatalf("expected %d records in grid, got %d", len(byDay), len(seen))
				}
				for slug, n := range seen {
					if n != 1 {
						t.Fatalf("%s appears %d times", slug, n)
					}
				}
			})
		}
	}
}

func TestWeekdays(t *testing.T) {
	w := Weekdays()
	if len(w) != 7 || w[0] != "Sunday" || w[6] != "Saturday" {
		t.Fatalf("unexpected weekdays: %v", w)
	}
}
