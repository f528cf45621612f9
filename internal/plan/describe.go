package plan

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/semester/internal/scheduler"
)

// Describe turns a resolution or plan failure into a sentence for the user.
// It returns false for any other error.
func Describe(err error) (string, bool) {
	var rerr *scheduler.ResolveError
	if errors.As(err, &rerr) {
		switch {
		case errors.Is(err, scheduler.ErrNoFreeCombination):
			return fmt.Sprintf("no section of %s fits your current %s schedule", rerr.Code, rerr.Term), true
		case errors.Is(err, scheduler.ErrTermUnavailable):
			return fmt.Sprintf("%s is not offered in %s", rerr.Code, rerr.Term), true
		case errors.Is(err, scheduler.ErrNoSectionsForTerm):
			return fmt.Sprintf("%s has no lecture section in %s", rerr.Code, rerr.Term), true
		case errors.Is(err, scheduler.ErrUnknownSelection):
			return fmt.Sprintf("%s has no such section in %s", rerr.Code, rerr.Term), true
		}
		return rerr.Error(), true
	}
	if errors.Is(err, ErrAlreadyAdded) || errors.Is(err, ErrNotInPlan) || errors.Is(err, ErrConflict) {
		return err.Error(), true
	}
	return "", false
}
