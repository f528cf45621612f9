package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/semester/internal/catalog"
	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/plan"
	"github.com/javiermolinar/semester/internal/scheduler"
)

const fall = "Fall 2025"

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]*course.Course{
		{
			Code:  "COMP 202",
			Title: "Foundations of Programming",
			Schedule: []course.TermSchedule{{
				Term: fall,
				Blocks: []course.MeetingBlock{
					course.NewBlock("Lec 001", "ENGTR 0100", "1001",
						course.TimePoint{Day: course.Monday, StartMinute: 600, EndMinute: 690},
						course.TimePoint{Day: course.Wednesday, StartMinute: 600, EndMinute: 690},
					),
					course.NewBlock("Tut 001", "TR 2110", "1002",
						course.TimePoint{Day: course.Saturday, StartMinute: 540, EndMinute: 600},
					),
				},
			}},
		},
		{
			Code: "MATH 133",
			Schedule: []course.TermSchedule{{
				Term: fall,
				Blocks: []course.MeetingBlock{
					course.NewBlock("Lec 001", "", "",
						course.TimePoint{Day: course.Tuesday, StartMinute: 840, EndMinute: 930},
					),
				},
			}},
		},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return cat
}

func testEntries() []plan.Entry {
	return []plan.Entry{
		{CourseCode: "COMP 202", Selection: scheduler.Selection{Lecture: "Lec 001", Tutorial: "Tut 001"}},
		{CourseCode: "MATH 133", Selection: scheduler.Selection{Lecture: "Lec 001"}},
		{CourseCode: "GONE 100", Selection: scheduler.Selection{Lecture: "Lec 001"}},
	}
}

func TestWriteICS(t *testing.T) {
	// Fall 2025 starts on Tuesday 2 September.
	cal, err := NewCalendar(fall, "2025-09-02", "2025-12-03", "America/Montreal")
	if err != nil {
		t.Fatalf("NewCalendar failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, testEntries(), testCatalog(t), cal); err != nil {
		t.Fatalf("WriteICS failed: %v", err)
	}
	output := buf.String()

	if n := strings.Count(output, "BEGIN:VEVENT"); n != 4 {
		t.Errorf("expected 4 events, got %d:\n%s", n, output)
	}
	for _, want := range []string{
		"SUMMARY:COMP 202 Lec 001",
		"SUMMARY:COMP 202 Tut 001",
		"SUMMARY:MATH 133 Lec 001",
		"LOCATION:ENGTR 0100",
		"CRN: 1001",
		// First Monday on or after the term start.
		"DTSTART;TZID=America/Montreal:20250908T100000",
		// Wednesday 3 September.
		"DTSTART;TZID=America/Montreal:20250903T100000",
		// Tuesday 2 September, the first day of term.
		"DTSTART;TZID=America/Montreal:20250902T140000",
		// Saturday tutorial is exported even though the grid hides it.
		"DTSTART;TZID=America/Montreal:20250906T090000",
		"DTEND;TZID=America/Montreal:20250908T113000",
		// 3 December 23:59:59 in Montreal is 4 December 04:59:59 UTC.
		"RRULE:FREQ=WEEKLY;UNTIL=20251204T045959Z",
		"BEGIN:VTIMEZONE",
		"TZID:America/Montreal",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected ICS to contain %q, got:\n%s", want, output)
		}
	}
}

func TestWriteICS_NoEvents(t *testing.T) {
	cal, err := NewCalendar(fall, "2025-09-02", "2025-12-03", "UTC")
	if err != nil {
		t.Fatalf("NewCalendar failed: %v", err)
	}
	var buf bytes.Buffer
	err = WriteICS(&buf, testEntries()[2:], testCatalog(t), cal)
	if !errors.Is(err, ErrNoEvents) {
		t.Errorf("got %v, want ErrNoEvents", err)
	}
}

func TestNewCalendar_Errors(t *testing.T) {
	if _, err := NewCalendar(fall, "2025-09-02", "2025-12-03", "Mars/Olympus"); err == nil {
		t.Error("expected timezone error")
	}
	if _, err := NewCalendar(fall, "2025-12-03", "2025-09-02", "UTC"); err == nil {
		t.Error("expected date range error")
	}
}

func TestReferences(t *testing.T) {
	refs := References(testEntries(), testCatalog(t), fall)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %+v", refs)
	}
	if refs[0] != (Reference{CourseCode: "COMP 202", Label: "Lec 001", CRN: "1001"}) {
		t.Errorf("unexpected first reference %+v", refs[0])
	}
	if got := CRNList(refs); got != "1001 1002" {
		t.Errorf("CRNList = %q", got)
	}
}

func TestWriteICS_Timezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     []string
		absent   []string
	}{
		{
			timezone: "America/Montreal",
			want: []string{
				"BEGIN:DAYLIGHT", "DTSTART:20250902T000000", "TZOFFSETTO:-0400", "TZNAME:EDT",
				// Clocks fall back at 02:00 EDT on 2 November.
				"BEGIN:STANDARD", "DTSTART:20251102T020000", "TZOFFSETFROM:-0400", "TZOFFSETTO:-0500", "TZNAME:EST",
			},
		},
		{
			timezone: "Asia/Tokyo",
			want:     []string{"BEGIN:STANDARD", "TZOFFSETFROM:+0900", "TZOFFSETTO:+0900"},
			absent:   []string{"BEGIN:DAYLIGHT"},
		},
		{
			timezone: "UTC",
			want:     []string{"TZID:UTC", "TZOFFSETTO:+0000"},
			absent:   []string{"BEGIN:DAYLIGHT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			cal, err := NewCalendar(fall, "2025-09-02", "2025-12-03", tt.timezone)
			if err != nil {
				t.Fatalf("NewCalendar failed: %v", err)
			}
			var buf bytes.Buffer
			if err := WriteICS(&buf, testEntries(), testCatalog(t), cal); err != nil {
				t.Fatalf("WriteICS failed: %v", err)
			}
			output := buf.String()

			if strings.Index(output, "BEGIN:VTIMEZONE") > strings.Index(output, "BEGIN:VEVENT") {
				t.Errorf("expected VTIMEZONE ahead of the events:\n%s", output)
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("expected ICS to contain %q, got:\n%s", want, output)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(output, absent) {
					t.Errorf("expected ICS without %q, got:\n%s", absent, output)
				}
			}
		})
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "+0000"},
		{-5 * 3600, "-0500"},
		{5*3600 + 45*60, "+0545"},
		{-(3*3600 + 30*60), "-0330"},
	}
	for _, tt := range tests {
		if got := formatOffset(tt.seconds); got != tt.want {
			t.Errorf("formatOffset(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
