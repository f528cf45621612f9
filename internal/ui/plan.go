package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/semester/internal/debuglog"
	"github.com/javiermolinar/semester/internal/scheduler"
)

func (a *App) addCmd() *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "add <code>...",
		Short: "Add courses, picking sections that fit",
		Long: `Add one or more courses to the plan. Each course gets the first lecture
and tutorial combination that does not overlap the courses already in
the plan. Courses are added one at a time in the order given.

Example:
  semester add "COMP 202" "MATH 133"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.loadPlan(cmd.Context(), a.term(term))
			if err != nil {
				return a.report(cmd, err)
			}

			out := cmd.OutOrStdout()
			for _, code := range args {
				entry, err := p.Add(cmd.Context(), code)
				if err != nil {
					if rerr := a.report(cmd, err); rerr != nil {
						return rerr
					}
					continue
				}
				debuglog.Event("ADD", map[string]any{
					"term":      p.Term(),
					"course":    entry.CourseCode,
					"selection": entry.Selection.String(),
				})
				fmt.Fprintf(out, "%s %s: %s\n", formatOK("✓ Added"), formatCode(entry.CourseCode), entry.Selection)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to plan (default from config)")
	return cmd
}

func (a *App) pickCmd() *cobra.Command {
	var term string
	var sel scheduler.Selection
	var force bool

	cmd := &cobra.Command{
		Use:   "pick <code>",
		Short: "Choose the sections of a course by hand",
		Long: `Set the lecture and tutorial of a course, adding it to the plan if needed.

The choice is rejected if it overlaps another course, unless --force
is given. Use 'semester sections <code>' to list the combinations.

Example:
  semester pick "COMP 202" --lecture "Lec 001" --tutorial "Tut 003"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.loadPlan(cmd.Context(), a.term(term))
			if err != nil {
				return a.report(cmd, err)
			}

			entry, err := p.Pick(cmd.Context(), args[0], sel, force)
			if err != nil {
				return a.report(cmd, err)
			}
			debuglog.Event("PICK", map[string]any{
				"term":      p.Term(),
				"course":    entry.CourseCode,
				"selection": entry.Selection.String(),
				"force":     force,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", formatOK("✓ Updated"), formatCode(entry.CourseCode), entry.Selection)
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to plan (default from config)")
	cmd.Flags().StringVar(&sel.Lecture, "lecture", "", "Lecture section label, e.g. \"Lec 001\"")
	cmd.Flags().StringVar(&sel.Tutorial, "tutorial", "", "Tutorial section label, empty for none")
	cmd.Flags().BoolVar(&force, "force", false, "Keep the choice even if it overlaps another course")
	_ = cmd.MarkFlagRequired("lecture")
	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:     "remove <code>",
		Aliases: []string{"rm"},
		Short:   "Remove a course from the plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.loadPlan(cmd.Context(), a.term(term))
			if err != nil {
				return a.report(cmd, err)
			}
			if err := p.Remove(cmd.Context(), args[0]); err != nil {
				return a.report(cmd, err)
			}
			debuglog.Event("REMOVE", map[string]any{"term": p.Term(), "course": args[0]})
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatOK("✓ Removed"), formatCode(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to plan (default from config)")
	return cmd
}

func (a *App) sectionsCmd() *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "sections <code>",
		Short: "List section combinations and their conflicts",
		Long: `List every lecture and tutorial combination of a course in the order
smart add tries them. Combinations that overlap other courses in the
plan are flagged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, p, err := a.loadPlan(cmd.Context(), a.term(term))
			if err != nil {
				return a.report(cmd, err)
			}
			c, err := cat.Get(args[0])
			if err != nil {
				return a.report(cmd, err)
			}
			opts, err := p.Options(c.Code)
			if err != nil {
				return a.report(cmd, err)
			}

			var current *scheduler.Selection
			for _, e := range p.Entries() {
				if e.CourseCode == c.Code {
					sel := e.Selection
					current = &sel
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n\n", formatCode(c.Code), formatHeader(c.Title), p.Term())
			for i, o := range opts {
				marker := " "
				if current != nil && *current == o.Selection {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %2d. %-20s %s\n", marker, i+1, o.Selection, formatMuted(occurrences(o.Occurrences)))
				for _, cl := range o.Clashes {
					fmt.Fprintf(out, "       %s %s overlaps %s\n", formatConflict("conflict:"), cl.Candidate, cl.Occupied)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to plan (default from config)")
	return cmd
}
