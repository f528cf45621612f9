package course

import (
	"fmt"
	"time"
)

// MinutesPerDay bounds every minute value of an occurrence.
const MinutesPerDay = 24 * 60

// Raw day codes used by the catalog. Weeks start on Sunday.
const (
	Sunday    = 1
	Monday    = 2
	Tuesday   = 3
	Wednesday = 4
	Thursday  = 5
	Friday    = 6
	Saturday  = 7
)

// TimePoint is one weekly occurrence of a block: a raw day code (1=Sunday)
// and a half-open minute range [StartMinute, EndMinute).
type TimePoint struct {
	Day         int
	StartMinute int
	EndMinute   int
}

// Validate checks the day code and the minute range.
func (tp TimePoint) Validate() error {
	if tp.Day < Sunday || tp.Day > Saturday {
		return fmt.Errorf("%w, got %d", ErrInvalidDay, tp.Day)
	}
	if tp.StartMinute < 0 || tp.EndMinute > MinutesPerDay {
		return ErrMinuteOutOfDay
	}
	if tp.EndMinute <= tp.StartMinute {
		return ErrEndBeforeStart
	}
	return nil
}

// Overlaps returns true if both occurrences fall on the same day and their
// half-open ranges intersect. Back-to-back occurrences do not overlap.
func (tp TimePoint) Overlaps(other TimePoint) bool {
	if tp.Day != other.Day {
		return false
	}
	return tp.StartMinute < other.EndMinute && other.StartMinute < tp.EndMinute
}

func (tp TimePoint) String() string {
	return fmt.Sprintf("%s %s-%s", DayName(tp.Day), MinutesToTime(tp.StartMinute), MinutesToTime(tp.EndMinute))
}

// CalendarDay maps a raw day code to a Monday-first grid column (1=Monday,
// 5=Friday). ok is false for weekend codes, which the grid does not show.
func CalendarDay(raw int) (column int, ok bool) {
	column = raw - 1
	return column, column >= 1 && column <= 5
}

// Weekday converts a raw day code to a time.Weekday.
func Weekday(raw int) time.Weekday {
	return time.Weekday((raw - 1 + 7) % 7)
}

// DayName returns the short English name of a raw day code.
func DayName(raw int) string {
	if raw < Sunday || raw > Saturday {
		return "?"
	}
	return Weekday(raw).String()[:3]
}

// ParseClock converts "HH:MM" to minutes since midnight, rejecting malformed input.
func ParseClock(s string) (int, error) {
	if len(s) != 5 {
		return 0, ErrInvalidTimeForm
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeForm
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
