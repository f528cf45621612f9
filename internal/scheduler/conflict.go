package scheduler

import "github.com/javiermolinar/semester/internal/course"

// Clash is one candidate occurrence overlapping one occupied occurrence.
type Clash struct {
	Candidate course.TimePoint
	Occupied  course.TimePoint
}

// HasConflict returns true if any candidate occurrence overlaps any occupied one.
// Both sets are a handful of weekly meetings, so a pairwise scan is enough.
func HasConflict(candidate, occupied []course.TimePoint) bool {
	for _, c := range candidate {
		for _, o := range occupied {
			if c.Overlaps(o) {
				return true
			}
		}
	}
	return false
}

// Conflicts returns every overlapping pair, in candidate order.
func Conflicts(candidate, occupied []course.TimePoint) []Clash {
	var out []Clash
	for _, c := range candidate {
		for _, o := range occupied {
			if c.Overlaps(o) {
				out = append(out, Clash{Candidate: c, Occupied: o})
			}
		}
	}
	return out
}

// SlotsConflict checks two sets of materialized calendar slots. Weekend
// meetings never reach calendar slots, so prefer HasConflict on Occurrences.
func SlotsConflict(candidate, occupied []CalendarSlot) bool {
	return HasConflict(slotOccurrences(candidate), slotOccurrences(occupied))
}

func slotOccurrences(slots []CalendarSlot) []course.TimePoint {
	out := make([]course.TimePoint, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Occurrence())
	}
	return out
}
