package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty is invalid", func(t *testing.T) {
		_, err := ParseDate("")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})

	t.Run("in location", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*3600)
		got, err := ParseDateIn("2025-09-02", loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Location() != loc || got.Hour() != 0 {
			t.Errorf("expected midnight in EST, got %v", got)
		}
	})
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-09-02", "2025-12-03", time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Contains(time.Date(2025, 12, 3, 17, 0, 0, 0, time.UTC)) {
			t.Error("range must include its last day")
		}
		if dr.Contains(time.Date(2025, 9, 1, 23, 0, 0, 0, time.UTC)) {
			t.Error("range must exclude the day before start")
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange("2025-12-03", "2025-09-02", time.UTC)
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})

	t.Run("invalid end", func(t *testing.T) {
		_, err := NewDateRange("2025-09-02", "", time.UTC)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestOnOrAfter(t *testing.T) {
	tuesday := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		target time.Weekday
		want   int // day of month
	}{
		{time.Tuesday, 2},
		{time.Wednesday, 3},
		{time.Saturday, 6},
		{time.Sunday, 7},
		{time.Monday, 8},
	}

	for _, tc := range tests {
		t.Run(tc.target.String(), func(t *testing.T) {
			got := OnOrAfter(tuesday, tc.target)
			if got.Day() != tc.want || got.Weekday() != tc.target {
				t.Errorf("OnOrAfter(Tue Sep 2, %s) = %v, want day %d", tc.target, got, tc.want)
			}
		})
	}
}

func TestAt(t *testing.T) {
	day := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	got := At(day, 11*60+35)
	if got.Hour() != 11 || got.Minute() != 35 || got.Day() != 3 {
		t.Errorf("At = %v", got)
	}
}

func TestTruncateToDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	got := TruncateToDay(input)
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
