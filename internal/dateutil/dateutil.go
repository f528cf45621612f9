// Package dateutil provides date parsing helpers for term calendars.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// DateRange represents a validated, inclusive date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses two YYYY-MM-DD dates in loc.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string, loc *time.Location) (*DateRange, error) {
	start, err := ParseDateIn(startDate, loc)
	if err != nil {
		return nil, err
	}
	end, err := ParseDateIn(endDate, loc)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}
	return &DateRange{Start: start, End: end}, nil
}

// Contains returns true if t falls on a day within the range.
func (r *DateRange) Contains(t time.Time) bool {
	day := TruncateToDay(t.In(r.Start.Location()))
	return !day.Before(r.Start) && !day.After(r.End)
}

// ParseDate parses a date string in YYYY-MM-DD format as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn parses a date string in YYYY-MM-DD format as midnight in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OnOrAfter returns the first date on or after from that falls on target.
func OnOrAfter(from time.Time, target time.Weekday) time.Time {
	from = TruncateToDay(from)
	delta := (int(target) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, delta)
}

// At returns the given day at minutes past midnight, in the day's location.
func At(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}
