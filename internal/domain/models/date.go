package models

import (
	"fmt"
	"time"
)

// DateLayout is the textual form of business dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MonthDay is a year-agnostic calendar position.
type MonthDay struct {
	Month time.Month `json:"month" bson:"month"`
	Day   int        `json:"day" bson:"day"`
}

// MonthDayOf extracts the month and day of t in its own location.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// EffectiveDate is the business "today" used for seasonal filtering and
// daily reports. It is set by an operator and threaded through every call.
type EffectiveDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewEffectiveDate returns the calendar date of t in t's location.
func NewEffectiveDate(t time.Time) EffectiveDate {
	y, m, d := t.Date()
	return EffectiveDate{Year: y, Month: m, Day: d}
}

// ParseEffectiveDate parses a YYYY-MM-DD string.
func ParseEffectiveDate(value string) (EffectiveDate, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return EffectiveDate{}, fmt.Errorf("parse business date %q: %w", value, err)
	}
	return NewEffectiveDate(t), nil
}

// String renders the date as YYYY-MM-DD.
func (d EffectiveDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date was never set.
func (d EffectiveDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// MonthDay drops the year.
func (d EffectiveDate) MonthDay() MonthDay {
	return MonthDay{Month: d.Month, Day: d.Day}
}

// StartOfDay returns midnight of the date in loc.
func (d EffectiveDate) StartOfDay(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays shifts the date by n calendar days.
func (d EffectiveDate) AddDays(n int) EffectiveDate {
	return NewEffectiveDate(d.StartOfDay(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d EffectiveDate) Before(other EffectiveDate) bool {
	return d.StartOfDay(time.UTC).Before(other.StartOfDay(time.UTC))
}

// Window covers the whole day: [midnight, next midnight).
func (d EffectiveDate) Window(loc *time.Location) ReportWindow {
	start := d.StartOfDay(loc)
	return ReportWindow{Start: start, End: start.AddDate(0, 0, 1)}
}

// Contains reports whether t falls on this calendar date, judged in t's own
// location.
func (d EffectiveDate) Contains(t time.Time) bool {
	y, m, day := t.Date()
	return y == d.Year && m == d.Month && day == d.Day
}

// ReportWindow is the half-open interval [Start, End) shared by every
// aggregation.
type ReportWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t is inside [Start, End).
func (w ReportWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DateRangeWindow converts an inclusive pair of business dates into
// [start 00:00, end+1 00:00).
func DateRangeWindow(start, end EffectiveDate, loc *time.Location) ReportWindow {
	return ReportWindow{Start: start.StartOfDay(loc), End: end.AddDays(1).StartOfDay(loc)}
}
