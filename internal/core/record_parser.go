package core

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type (
	// Row maps a column name to its raw cell text. A missing key and a
	// blank value mean the same thing.
	Row map[string]string

	// Table is a header plus data rows, in source order.
	Table struct {
		Header []string
		Rows   []Row
	}

	// RowWarning describes a row that was dropped because its date could
	// not be understood. Row is the 1-based data row number.
	RowWarning struct {
		Row      int
		DateText string
		Err      error
	}
)

// DateLayouts are tried in order; the first that parses wins.
var DateLayouts = []string{
	"Jan 2",     // abbreviated month name
	"January 2", // full month name
}

func (w RowWarning) Error() string {
	return fmt.Sprintf("row %d: could not parse date %q: %v", w.Row, w.DateText, w.Err)
}

func (w RowWarning) Unwrap() error {
	return w.Err
}

// ParseDate interprets text as "month-name day-of-month" and attaches year.
// A day that does not exist in that year (Feb 29 outside leap years, Apr 31)
// is rejected instead of rolling over into the next month.
func ParseDate(text string, year int) (Date, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{}, ErrBlankDate
	}
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		d := NewDate(year, int(t.Month()), t.Day())
		if d.Month() != int(t.Month()) || d.Day() != t.Day() {
			continue
		}
		return d, nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrUnparseableDate, text)
}

// ParseRecords turns raw rows into Records sorted by date. Rows without a
// date are skipped silently; rows whose date cannot be parsed are skipped
// and reported as warnings. Two rows resolving to the same day are a data
// error and fail the whole parse.
func ParseRecords(t Table, year int) ([]Record, []RowWarning, error) {
	if year < 1 || year > 9999 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	columns := make([]string, 0, len(t.Header))
	for _, h := range t.Header {
		if h == DateColumn || strings.TrimSpace(h) == "" {
			continue
		}
		columns = append(columns, h)
	}

	var (
		records  = make([]Record, 0, len(t.Rows))
		warnings []RowWarning
	)
	for i, row := range t.Rows {
		text := row[DateColumn]
		if strings.TrimSpace(text) == "" {
			continue
		}
		date, err := ParseDate(text, year)
		if err != nil {
			warnings = append(warnings, RowWarning{Row: i + 1, DateText: text, Err: err})
			continue
		}
		fields := make([]Field, len(columns))
		for j, c := range columns {
			fields[j] = Field{Name: c, Value: row[c]}
		}
		records = append(records, NewRecord(date, text, fields))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date.Time)
	})
	for i := 1; i < len(records); i++ {
		if records[i].Slug == records[i-1].Slug {
			return nil, warnings, fmt.Errorf("%w: %s (rows %q and %q)",
				ErrDuplicateDate, records[i].Slug, records[i-1].DateText, records[i].DateText)
		}
	}

	return records, warnings, nil
}

func normalizeField(name, value string) Field {
	if strings.TrimSpace(value) == "" {
		return Field{Name: name}
	}
	return Field{Name: name, Value: value, Present: true}
}
