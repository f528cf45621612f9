// Package scheduler resolves section conflicts: it groups a course's blocks
// into lecture/tutorial combinations, materializes a chosen combination into
// calendar slots and picks the first combination that fits an occupied week.
//
// Every function is pure. Callers own the occupied set and serialize additions.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/semester/internal/course"
)

// Resolution failures. They are values for the caller to present, never faults.
var (
	ErrTermUnavailable   = errors.New("course is not offered in this term")
	ErrNoSectionsForTerm = errors.New("no lecture section found for this term")
	ErrNoFreeCombination = errors.New("no section combination fits the current schedule")
	ErrUnknownSelection  = errors.New("selection references a section that no longer exists")
)

// ResolveError ties a resolution failure to the course and term it concerns.
type ResolveError struct {
	Code string
	Term string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Code, e.Term, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func resolveErr(c *course.Course, term string, err error) error {
	code := ""
	if c != nil {
		code = c.Code
	}
	return &ResolveError{Code: code, Term: term, Err: err}
}

// BlocksForTerm returns the blocks listed under term, in catalog order.
// The term name must match exactly. A course without blocks for the term
// returns ErrTermUnavailable.
func BlocksForTerm(c *course.Course, term string) ([]course.MeetingBlock, error) {
	ts, ok := c.Term(term)
	if !ok || len(ts.Blocks) == 0 {
		return nil, ErrTermUnavailable
	}
	return ts.Blocks, nil
}
