package render

import "dailyoffice/internal/core"

type (
	// Site is the context shared by every page.
	Site struct {
		Year        int
		AnalyticsID string
		ColorColumn string
		ColorMap    map[string]string
	}

	// DayPage is one day with its chronological neighbours.
	DayPage struct {
		Site
		Day  *core.Record
		Prev *core.Record
		Next *core.Record
	}

	// IndexPage is the calendar index, one grid per month.
	IndexPage struct {
		Site
		Days   []core.Record
		Months []*core.MonthGroup
	}

	// AllPage is the printable page with every day.
	AllPage struct {
		Site
		Days []core.Record
	}

	AboutPage struct {
		Site
	}
)
