// Package export turns a term plan into an iCalendar feed and a list of
// registration references.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/dateutil"
	"github.com/javiermolinar/semester/internal/plan"
	"github.com/javiermolinar/semester/internal/scheduler"
)

const localLayout = "20060102T150405"

// ErrNoEvents is returned when no entry of the plan has a meeting to export.
var ErrNoEvents = errors.New("plan has no meetings to export")

// Calendar places a term on real dates.
type Calendar struct {
	Term     string
	Range    *dateutil.DateRange // first and last day of classes, inclusive
	Location *time.Location
}

// NewCalendar builds a Calendar from YYYY-MM-DD dates and an IANA zone name.
func NewCalendar(term, start, end, timezone string) (Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Calendar{}, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}
	r, err := dateutil.NewDateRange(start, end, loc)
	if err != nil {
		return Calendar{}, fmt.Errorf("term %s: %w", term, err)
	}
	return Calendar{Term: term, Range: r, Location: loc}, nil
}

// WriteICS writes one weekly recurring event per occurrence of every selected
// block. Each series starts on the first matching weekday on or after the
// term start and repeats until the term end. Entries whose course or
// selection is gone from the catalog are skipped.
func WriteICS(w io.Writer, entries []plan.Entry, cat plan.Catalog, cal Calendar) error {
	ical := ics.NewCalendar()
	ical.SetMethod(ics.MethodPublish)
	ical.SetProductId("-//semester//course planner//EN")
	ical.SetXWRCalName(cal.Term)
	ical.SetXWRTimezone(cal.Location.String())
	addTimezone(ical, cal)

	now := time.Now()
	until := cal.Range.End.AddDate(0, 0, 1).Add(-time.Second).UTC().Format(localLayout + "Z")
	tzid := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{cal.Location.String()}}

	events := 0
	for _, e := range entries {
		c, err := cat.Get(e.CourseCode)
		if err != nil {
			continue
		}
		sel := e.Selection
		for _, b := range scheduler.SelectedBlocks(c, cal.Term, &sel) {
			for _, tp := range b.Occurrences {
				day := dateutil.OnOrAfter(cal.Range.Start, course.Weekday(tp.Day))
				if day.After(cal.Range.End) {
					continue
				}

				event := ical.AddEvent(uuid.NewString())
				event.SetDtStampTime(now)
				event.SetProperty(ics.ComponentPropertyDtStart, dateutil.At(day, tp.StartMinute).Format(localLayout), tzid)
				event.SetProperty(ics.ComponentPropertyDtEnd, dateutil.At(day, tp.EndMinute).Format(localLayout), tzid)
				event.SetProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY;UNTIL="+until)
				event.SetSummary(fmt.Sprintf("%s %s", c.Code, b.Label))
				if b.Location != "" {
					event.SetLocation(b.Location)
				}
				event.SetDescription(description(c, b))
				events++
			}
		}
	}

	if events == 0 {
		return ErrNoEvents
	}
	return ical.SerializeTo(w)
}

func description(c *course.Course, b course.MeetingBlock) string {
	desc := c.Title
	if b.ExternalRef != "" {
		if desc != "" {
			desc += "\n"
		}
		desc += "CRN: " + b.ExternalRef
	}
	return desc
}
