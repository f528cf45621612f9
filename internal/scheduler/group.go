package scheduler

import "github.com/javiermolinar/semester/internal/course"

// LectureGroup is one lecture block plus the tutorial-like blocks that pair
// with it. An empty Tutorials list means the lecture is selectable alone.
type LectureGroup struct {
	Lecture   course.MeetingBlock
	Tutorials []course.MeetingBlock
}

// GroupByLecture partitions blocks into lecture groups in catalog order.
//
// Each non-lecture block joins the group of the nearest lecture before it.
// Non-lecture blocks listed ahead of every lecture join the first group.
// Every tutorial-like block therefore lands in exactly one group, and the
// order inside a group is the catalog order used for tie-breaking.
//
// Returns ErrNoSectionsForTerm when no lecture-kind block exists.
func GroupByLecture(blocks []course.MeetingBlock) ([]LectureGroup, error) {
	var (
		groups  []LectureGroup
		leading []course.MeetingBlock
	)
	for _, b := range blocks {
		if b.Kind.IsLecture() {
			groups = append(groups, LectureGroup{Lecture: b})
			continue
		}
		if len(groups) == 0 {
			leading = append(leading, b)
			continue
		}
		last := &groups[len(groups)-1]
		last.Tutorials = append(last.Tutorials, b)
	}

	if len(groups) == 0 {
		return nil, ErrNoSectionsForTerm
	}
	if len(leading) > 0 {
		groups[0].Tutorials = append(leading, groups[0].Tutorials...)
	}
	return groups, nil
}

// GroupsForTerm combines BlocksForTerm and GroupByLecture.
func GroupsForTerm(c *course.Course, term string) ([]LectureGroup, error) {
	blocks, err := BlocksForTerm(c, term)
	if err != nil {
		return nil, err
	}
	return GroupByLecture(blocks)
}

// Selections lists every fully specified combination of the group: the
// lecture alone when it has no tutorials, otherwise one per tutorial.
func (g LectureGroup) Selections() []Selection {
	if len(g.Tutorials) == 0 {
		return []Selection{{Lecture: g.Lecture.Label}}
	}
	out := make([]Selection, 0, len(g.Tutorials))
	for _, t := range g.Tutorials {
		out = append(out, Selection{Lecture: g.Lecture.Label, Tutorial: t.Label})
	}
	return out
}
