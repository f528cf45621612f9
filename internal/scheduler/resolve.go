package scheduler

import "github.com/javiermolinar/semester/internal/course"

// Option is one enumerable combination with its conflict status, for pickers.
type Option struct {
	Selection   Selection
	Group       int // index of the lecture group
	Occurrences []course.TimePoint
	Clashes     []Clash
}

// Conflicting returns true if the option overlaps the occupied set.
func (o Option) Conflicting() bool {
	return len(o.Clashes) > 0
}

// Resolve picks the first combination of the course that does not overlap
// occupied. Lecture groups are tried in catalog order; within a group the
// lecture alone when it has no tutorials, otherwise each tutorial in catalog
// order. The search is first-fit and deterministic.
//
// Failures are returned as *ResolveError wrapping ErrTermUnavailable,
// ErrNoSectionsForTerm or ErrNoFreeCombination.
func Resolve(c *course.Course, term string, occupied []course.TimePoint) (Selection, error) {
	groups, err := GroupsForTerm(c, term)
	if err != nil {
		return Selection{}, resolveErr(c, term, err)
	}

	for _, g := range groups {
		if len(g.Tutorials) == 0 {
			if !HasConflict(occurrencesOf(&g.Lecture, nil), occupied) {
				return Selection{Lecture: g.Lecture.Label}, nil
			}
			continue
		}
		for i := range g.Tutorials {
			if !HasConflict(occurrencesOf(&g.Lecture, &g.Tutorials[i]), occupied) {
				return Selection{Lecture: g.Lecture.Label, Tutorial: g.Tutorials[i].Label}, nil
			}
		}
	}

	return Selection{}, resolveErr(c, term, ErrNoFreeCombination)
}

// Options enumerates every combination in the order Resolve tries them and
// flags the ones that overlap occupied.
func Options(c *course.Course, term string, occupied []course.TimePoint) ([]Option, error) {
	groups, err := GroupsForTerm(c, term)
	if err != nil {
		return nil, resolveErr(c, term, err)
	}

	var out []Option
	for gi, g := range groups {
		if len(g.Tutorials) == 0 {
			occ := occurrencesOf(&g.Lecture, nil)
			out = append(out, Option{
				Selection:   Selection{Lecture: g.Lecture.Label},
				Group:       gi,
				Occurrences: occ,
				Clashes:     Conflicts(occ, occupied),
			})
			continue
		}
		for i := range g.Tutorials {
			occ := occurrencesOf(&g.Lecture, &g.Tutorials[i])
			out = append(out, Option{
				Selection:   Selection{Lecture: g.Lecture.Label, Tutorial: g.Tutorials[i].Label},
				Group:       gi,
				Occurrences: occ,
				Clashes:     Conflicts(occ, occupied),
			})
		}
	}
	return out, nil
}
