package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/semester/internal/catalog"
	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/debuglog"
	"github.com/javiermolinar/semester/internal/plan"
)

// describe turns a domain failure into a message for the user. It returns
// false for faults that should abort the command.
func describe(err error) (string, bool) {
	if msg, ok := plan.Describe(err); ok {
		return msg, true
	}
	for _, target := range []error{catalog.ErrCourseNotFound, catalog.ErrEmptyQuery, errNoCatalog} {
		if errors.Is(err, target) {
			return err.Error(), true
		}
	}
	return "", false
}

// occurrences formats meetings as "Mon 10:00-11:30, Wed 10:00-11:30".
func occurrences(tps []course.TimePoint) string {
	parts := make([]string, 0, len(tps))
	for _, tp := range tps {
		parts = append(parts, tp.String())
	}
	return strings.Join(parts, ", ")
}

// termSlug turns "Fall 2025" into "fall-2025".
func termSlug(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), "-"))
}

// report prints domain failures for the user and passes faults through.
func (a *App) report(cmd *cobra.Command, err error) error {
	msg, ok := describe(err)
	if !ok {
		return err
	}
	debuglog.Error(cmd.Name(), err)
	fmt.Fprintln(cmd.OutOrStdout(), formatWarn("✗ "+msg))
	return nil
}
