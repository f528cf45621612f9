package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/plan"
	"github.com/javiermolinar/semester/internal/scheduler"
	"github.com/javiermolinar/semester/internal/tui/view"
)

func (a *App) showCmd() *cobra.Command {
	var term string
	var listOnly bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the weekly timetable",
		Long: `Display the Monday to Friday grid of the plan followed by the list of
courses and their sections. Overlapping meetings are marked with "!".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, p, err := a.loadPlan(cmd.Context(), a.term(term))
			if err != nil {
				return a.report(cmd, err)
			}

			out := cmd.OutOrStdout()
			weeks := p.Week()
			if len(weeks) == 0 {
				fmt.Fprintf(out, "No courses in %s yet. Add one with 'semester add <code>'.\n", p.Term())
				terms, err := a.store.ListTerms(cmd.Context())
				if err != nil {
					return err
				}
				if len(terms) > 0 {
					fmt.Fprintln(out, formatMuted("Saved plans: "+strings.Join(terms, ", ")))
				}
				return nil
			}

			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(p.Term()))
			if !listOnly {
				fmt.Fprintln(out, view.RenderWeek(a.weekGrid(weeks)))
				fmt.Fprintln(out)
			}
			printCourseList(cmd, p.Term(), weeks)
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to show (default from config)")
	cmd.Flags().BoolVar(&listOnly, "list", false, "Only list the courses")
	return cmd
}

// weekGrid sizes the grid to the configured hours and the terminal.
func (a *App) weekGrid(weeks []plan.CourseWeek) view.WeekGrid {
	start, err := course.ParseClock(a.config.Planner.GridStart)
	if err != nil {
		start = 8 * 60
	}
	end, err := course.ParseClock(a.config.Planner.GridEnd)
	if err != nil {
		end = 21 * 60
	}

	// time column plus borders take about 12 cells
	colW := (termWidth() - 12) / len(view.DayHeaders)
	colW = max(10, min(colW, 24))

	return view.WeekGrid{
		Start:    start,
		End:      end,
		Step:     view.DefaultStep,
		ColWidth: colW,
		Slots:    view.SlotsFromPlan(weeks),
	}
}

func printCourseList(cmd *cobra.Command, term string, weeks []plan.CourseWeek) {
	out := cmd.OutOrStdout()
	for _, w := range weeks {
		code := formatCode(w.Entry.CourseCode)
		if w.Course == nil {
			fmt.Fprintf(out, "%s %s\n", code, formatWarn("(no longer in the catalog)"))
			continue
		}
		sel := w.Entry.Selection
		blocks := scheduler.SelectedBlocks(w.Course, term, &sel)
		if blocks == nil {
			fmt.Fprintf(out, "%s %s %s\n", code, sel, formatWarn("(sections no longer in the catalog, pick new ones)"))
			continue
		}
		fmt.Fprintf(out, "%s %s  %s\n", code, w.Course.Title, formatMuted(sel.String()))
		if names := w.Course.InstructorsFor(term); len(names) > 0 {
			fmt.Fprintln(out, formatMuted("    "+strings.Join(names, ", ")))
		}
		for _, b := range blocks {
			line := fmt.Sprintf("    %-8s %s", b.Label, occurrences(b.Occurrences))
			if b.Location != "" {
				line += " @ " + b.Location
			}
			fmt.Fprintln(out, formatMuted(line))
		}
	}
}
