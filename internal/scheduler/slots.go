package scheduler

import (
	"fmt"
	"math"

	"github.com/javiermolinar/semester/internal/course"
)

// Selection identifies one lecture plus an optional tutorial for a course.
type Selection struct {
	Lecture  string // e.g. "Lec 001"
	Tutorial string // e.g. "Tut 004", empty when the lecture stands alone
}

func (s Selection) String() string {
	if s.Tutorial == "" {
		return s.Lecture
	}
	return s.Lecture + " + " + s.Tutorial
}

// SlotKind tags a calendar slot as coming from the lecture or the tutorial.
type SlotKind string

const (
	SlotLecture  SlotKind = "lecture"
	SlotTutorial SlotKind = "tutorial"
)

// CalendarSlot is a displayable interval on the Monday-Friday grid.
type CalendarSlot struct {
	Day       int     // 1=Monday .. 5=Friday
	StartHour float64 // decimal hours, 10.5 = 10:30
	EndHour   float64
	Kind      SlotKind
	Label     string
	Location  string
}

// Occurrence converts the slot back to a raw weekly occurrence.
func (s CalendarSlot) Occurrence() course.TimePoint {
	return course.TimePoint{
		Day:         s.Day + 1,
		StartMinute: int(math.Round(s.StartHour * 60)),
		EndMinute:   int(math.Round(s.EndHour * 60)),
	}
}

func (s CalendarSlot) String() string {
	tp := s.Occurrence()
	return fmt.Sprintf("%s %s %s-%s", s.Label, course.DayName(tp.Day),
		course.MinutesToTime(tp.StartMinute), course.MinutesToTime(tp.EndMinute))
}

// Materialize returns the weekday calendar slots of a selection. A nil
// selection, an unavailable term or a label that no longer exists yields an
// empty result: stale selections must not break the display.
func Materialize(c *course.Course, term string, sel *Selection) []CalendarSlot {
	lec, tut, ok := lookup(c, term, sel)
	if !ok {
		return nil
	}
	slots := appendSlots(nil, lec, SlotLecture)
	if tut != nil {
		slots = appendSlots(slots, tut, SlotTutorial)
	}
	return slots
}

// Occurrences returns the raw occurrences of a selection on all seven days.
// Occupied sets are built from this so weekend meetings still conflict.
func Occurrences(c *course.Course, term string, sel *Selection) []course.TimePoint {
	lec, tut, ok := lookup(c, term, sel)
	if !ok {
		return nil
	}
	return occurrencesOf(lec, tut)
}

// SelectedBlocks returns the lecture block of sel followed by its tutorial
// block, if any. Stale selections yield nothing.
func SelectedBlocks(c *course.Course, term string, sel *Selection) []course.MeetingBlock {
	lec, tut, ok := lookup(c, term, sel)
	if !ok {
		return nil
	}
	out := []course.MeetingBlock{*lec}
	if tut != nil {
		out = append(out, *tut)
	}
	return out
}

// ValidateSelection reports ErrUnknownSelection unless sel is one of the
// combinations its lecture group offers, and the term error when the course
// left the term.
func ValidateSelection(c *course.Course, term string, sel Selection) error {
	groups, err := GroupsForTerm(c, term)
	if err != nil {
		return resolveErr(c, term, err)
	}
	for _, g := range groups {
		for _, s := range g.Selections() {
			if s == sel {
				return nil
			}
		}
	}
	return resolveErr(c, term, fmt.Errorf("%s: %w", sel, ErrUnknownSelection))
}

func lookup(c *course.Course, term string, sel *Selection) (lec, tut *course.MeetingBlock, ok bool) {
	if sel == nil || sel.Lecture == "" {
		return nil, nil, false
	}
	blocks, err := BlocksForTerm(c, term)
	if err != nil {
		return nil, nil, false
	}
	for i := range blocks {
		b := &blocks[i]
		switch {
		case b.Kind.IsLecture() && b.Label == sel.Lecture && lec == nil:
			lec = b
		case !b.Kind.IsLecture() && sel.Tutorial != "" && b.Label == sel.Tutorial && tut == nil:
			tut = b
		}
	}
	if lec == nil || (sel.Tutorial != "" && tut == nil) {
		return nil, nil, false
	}
	return lec, tut, true
}

func occurrencesOf(lec, tut *course.MeetingBlock) []course.TimePoint {
	n := len(lec.Occurrences)
	if tut != nil {
		n += len(tut.Occurrences)
	}
	out := make([]course.TimePoint, 0, n)
	out = append(out, lec.Occurrences...)
	if tut != nil {
		out = append(out, tut.Occurrences...)
	}
	return out
}

func appendSlots(dst []CalendarSlot, b *course.MeetingBlock, kind SlotKind) []CalendarSlot {
	for _, tp := range b.Occurrences {
		day, ok := course.CalendarDay(tp.Day)
		if !ok {
			continue
		}
		dst = append(dst, CalendarSlot{
			Day:       day,
			StartHour: float64(tp.StartMinute) / 60.0,
			EndHour:   float64(tp.EndMinute) / 60.0,
			Kind:      kind,
			Label:     b.Label,
			Location:  b.Location,
		})
	}
	return dst
}
