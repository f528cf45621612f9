package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// addTimezone appends a VTIMEZONE for cal.Location covering the term, so the
// TZID on every event resolves inside the file. Observances come from the
// zone's own offset changes between the term start and end.
func addTimezone(ical *ics.Calendar, cal Calendar) {
	tz := &ics.VTimezone{}
	tz.SetProperty(ics.ComponentProperty("TZID"), cal.Location.String())

	start := cal.Range.Start
	tz.Components = append(tz.Components, observance(start, start, start))
	for _, at := range transitions(start, cal.Range.End.AddDate(0, 0, 1)) {
		before := at.Add(-time.Second)
		tz.Components = append(tz.Components, observance(at, before, at))
	}

	ical.Components = append(ical.Components, tz)
}

// observance describes the offset in force from onset on. before is an
// instant just ahead of onset, used for TZOFFSETFROM and the local onset time.
func observance(onset, before, after time.Time) ics.Component {
	_, from := before.Zone()
	name, to := after.Zone()
	local := onset.In(time.FixedZone("", from)).Format(localLayout)

	var base *ics.ComponentBase
	var c ics.Component
	if after.IsDST() {
		d := &ics.Daylight{}
		base, c = &d.ComponentBase, d
	} else {
		s := &ics.Standard{}
		base, c = &s.ComponentBase, s
	}
	base.SetProperty(ics.ComponentProperty("DTSTART"), local)
	base.SetProperty(ics.ComponentProperty("TZOFFSETFROM"), formatOffset(from))
	base.SetProperty(ics.ComponentProperty("TZOFFSETTO"), formatOffset(to))
	if name != "" {
		base.SetProperty(ics.ComponentProperty("TZNAME"), name)
	}
	return c
}

// transitions returns the instants in [from, to) where the UTC offset changes.
func transitions(from, to time.Time) []time.Time {
	var out []time.Time
	prev := from
	_, off := prev.Zone()
	for t := from.Add(time.Hour); t.Before(to); t = t.Add(time.Hour) {
		if _, o := t.Zone(); o != off {
			out = append(out, firstWithOffset(prev, t, o))
			off = o
		}
		prev = t
	}
	return out
}

// firstWithOffset narrows (lo, hi] down to the first second carrying offset.
func firstWithOffset(lo, hi time.Time, offset int) time.Time {
	for hi.Sub(lo) > time.Second {
		mid := lo.Add(hi.Sub(lo) / 2).Truncate(time.Second)
		if _, o := mid.Zone(); o == offset {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d%02d", sign, seconds/3600, seconds%3600/60)
}
