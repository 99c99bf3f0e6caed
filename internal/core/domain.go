package core

import (
	"errors"
	"time"
)

// DateColumn is the only column a dataset must carry.
const DateColumn = "Date"

type (
	Date struct {
		time.Time
	}

	// Field is one free-text column of a Record. Blank input is stored as
	// absent (Present == false) rather than as an empty string.
	Field struct {
		Name    string
		Value   string
		Present bool
	}

	// Record is one calendar day of liturgical data. Records are built once
	// by ParseRecords and never mutated afterwards.
	Record struct {
		Date      Date
		DayOfWeek string
		Slug      string
		Formatted string
		DateText  string // Date column as it appeared in the source
		fields    []Field
	}
)

var (
	ErrBlankDate       = errors.New("blank date")
	ErrUnparseableDate = errors.New("unparseable date")
	ErrDuplicateDate   = errors.New("duplicate date")
	ErrInvalidYear     = errors.New("invalid year")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// Slug is the sortable year-month-day key of the date.
func (d Date) Slug() string {
	return d.Format("2006-01-02")
}

// NewRecord builds a Record for date with the given fields. Fields whose
// value is blank are kept but marked absent.
func NewRecord(date Date, dateText string, fields []Field) Record {
	fs := make([]Field, len(fields))
	for i, f := range fields {
		fs[i] = normalizeField(f.Name, f.Value)
	}
	return Record{
		Date:      date,
		DayOfWeek: date.Weekday().String(),
		Slug:      date.Slug(),
		Formatted: date.Format("January 02, 2006"),
		DateText:  dateText,
		fields:    fs,
	}
}

// Fields returns the record's free-text columns in source column order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Attr returns the value of the named column and whether it holds data.
func (r Record) Attr(name string) (string, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, f.Present
		}
	}
	return "", false
}

// Value returns the named column or "" when absent. Meant for templates.
func (r Record) Value(name string) string {
	v, _ := r.Attr(name)
	return v
}

// Has reports whether the named column holds data.
func (r Record) Has(name string) bool {
	_, ok := r.Attr(name)
	return ok
}
