// Package course defines the catalog domain types for semester.
package course

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrEmptyCode       = errors.New("course code cannot be empty")
	ErrEmptyLabel      = errors.New("block label cannot be empty")
	ErrInvalidDay      = errors.New("day must be between 1 (Sunday) and 7 (Saturday)")
	ErrEndBeforeStart  = errors.New("end minute must be after start minute")
	ErrMinuteOutOfDay  = errors.New("minute must be within a single day")
	ErrEmptyTermName   = errors.New("term name cannot be empty")
	ErrDuplicateLabel  = errors.New("duplicate block label in term")
	ErrInvalidTimeForm = errors.New("time must be in HH:MM format")
)

// BlockKind classifies a meeting block by the first word of its label.
type BlockKind int

const (
	KindOther BlockKind = iota
	KindLecture
	KindTutorial
	KindLab
)

func (k BlockKind) String() string {
	switch k {
	case KindLecture:
		return "lecture"
	case KindTutorial:
		return "tutorial"
	case KindLab:
		return "lab"
	default:
		return "other"
	}
}

// IsLecture reports whether the block is lecture-kind. Every other kind pairs
// with a lecture the way a tutorial does.
func (k BlockKind) IsLecture() bool {
	return k == KindLecture
}

// ClassifyLabel derives the BlockKind from a label such as "Lec 001" or "Tut 004".
// Only the first whitespace-separated word is inspected.
func ClassifyLabel(label string) BlockKind {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return KindOther
	}
	switch {
	case strings.EqualFold(fields[0], "Lec"):
		return KindLecture
	case strings.EqualFold(fields[0], "Tut"):
		return KindTutorial
	case strings.EqualFold(fields[0], "Lab"):
		return KindLab
	default:
		return KindOther
	}
}

// MeetingBlock is one scheduled section of a course within a term,
// e.g. "Lec 001" meeting Monday and Wednesday.
type MeetingBlock struct {
	Label       string
	Kind        BlockKind // derived from Label at ingestion
	Location    string
	Campus      string
	ExternalRef string // registration reference (CRN), opaque
	Occurrences []TimePoint
}

// NewBlock creates a MeetingBlock with its kind derived from the label.
func NewBlock(label, location, externalRef string, occurrences ...TimePoint) MeetingBlock {
	return MeetingBlock{
		Label:       label,
		Kind:        ClassifyLabel(label),
		Location:    location,
		ExternalRef: externalRef,
		Occurrences: occurrences,
	}
}

// Validate checks the block label and every occurrence.
func (b MeetingBlock) Validate() error {
	if strings.TrimSpace(b.Label) == "" {
		return ErrEmptyLabel
	}
	for i, tp := range b.Occurrences {
		if err := tp.Validate(); err != nil {
			return fmt.Errorf("%s occurrence %d: %w", b.Label, i+1, err)
		}
	}
	return nil
}

// TermSchedule holds the blocks a course offers in one academic term.
type TermSchedule struct {
	Term   string
	Blocks []MeetingBlock
}

// Instructor teaches a course in a given term.
type Instructor struct {
	Name string
	Term string
}

// Course is a catalog entry. Schedule keeps catalog order.
type Course struct {
	Code        string
	Title       string
	Description string
	Terms       []string
	Instructors []Instructor
	Schedule    []TermSchedule
}

// Validate checks the invariants the scheduler relies on: non-empty code,
// well-formed occurrences and unique labels within each term.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return ErrEmptyCode
	}
	for _, ts := range c.Schedule {
		if ts.Term == "" {
			return fmt.Errorf("%s: %w", c.Code, ErrEmptyTermName)
		}
		seen := make(map[string]bool, len(ts.Blocks))
		for _, b := range ts.Blocks {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("%s %s: %w", c.Code, ts.Term, err)
			}
			if seen[b.Label] {
				return fmt.Errorf("%s %s %s: %w", c.Code, ts.Term, b.Label, ErrDuplicateLabel)
			}
			seen[b.Label] = true
		}
	}
	return nil
}

// Term returns the schedule for the given term name. The match is exact.
func (c *Course) Term(name string) (TermSchedule, bool) {
	if c == nil {
		return TermSchedule{}, false
	}
	for _, ts := range c.Schedule {
		if ts.Term == name {
			return ts, true
		}
	}
	return TermSchedule{}, false
}

// OfferedIn returns true if the course lists any block for the term.
func (c *Course) OfferedIn(term string) bool {
	ts, ok := c.Term(term)
	return ok && len(ts.Blocks) > 0
}

// TermNames returns the term names that carry a schedule, in catalog order.
func (c *Course) TermNames() []string {
	names := make([]string, 0, len(c.Schedule))
	for _, ts := range c.Schedule {
		names = append(names, ts.Term)
	}
	return names
}

// InstructorsFor returns the instructor names for a term.
func (c *Course) InstructorsFor(term string) []string {
	var names []string
	for _, in := range c.Instructors {
		if in.Term == term {
			names = append(names, in.Name)
		}
	}
	return names
}
