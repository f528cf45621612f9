package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/semester/internal/debuglog"
	"github.com/javiermolinar/semester/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var term string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the plan as an iCalendar file",
		Long: `Write the plan as weekly recurring events, from the first to the last
day of classes configured for the term under [[terms]].

Example:
  semester export --out fall.ics
  semester export --out -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, p, err := a.loadPlan(cmd.Context(), a.term(term))
			if err != nil {
				return a.report(cmd, err)
			}

			out := cmd.OutOrStdout()
			tc, ok := a.config.Term(p.Term())
			if !ok {
				fmt.Fprintln(out, formatWarn(fmt.Sprintf("✗ no dates configured for %s, add a [[terms]] entry to the config", p.Term())))
				return nil
			}
			cal, err := export.NewCalendar(p.Term(), tc.Start, tc.End, a.config.Export.Timezone)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := export.WriteICS(&buf, p.Entries(), cat, cal); err != nil {
				if errors.Is(err, export.ErrNoEvents) {
					fmt.Fprintln(out, formatWarn("✗ "+err.Error()))
					return nil
				}
				return fmt.Errorf("writing calendar: %w", err)
			}

			if outPath == "-" {
				_, err := out.Write(buf.Bytes())
				return err
			}
			if outPath == "" {
				outPath = termSlug(p.Term()) + ".ics"
			}
			if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			debuglog.Event("EXPORT", map[string]any{"term": p.Term(), "path": outPath, "bytes": buf.Len()})
			fmt.Fprintf(out, "%s %s\n", formatOK("✓ Wrote"), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to export (default from config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file, - for stdout (default <term>.ics)")
	return cmd
}

func (a *App) crnsCmd() *cobra.Command {
	var term string
	var copyList bool

	cmd := &cobra.Command{
		Use:   "crns",
		Short: "List the registration numbers of the plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, p, err := a.loadPlan(cmd.Context(), a.term(term))
			if err != nil {
				return a.report(cmd, err)
			}

			out := cmd.OutOrStdout()
			refs := export.References(p.Entries(), cat, p.Term())
			if len(refs) == 0 {
				fmt.Fprintf(out, "No registration numbers in %s.\n", p.Term())
				return nil
			}
			for _, r := range refs {
				fmt.Fprintf(out, "%-10s %-8s %s\n", r.CourseCode, r.Label, r.CRN)
			}

			if copyList {
				if err := clipboard.WriteAll(export.CRNList(refs)); err != nil {
					fmt.Fprintln(out, formatWarn("✗ clipboard unavailable: "+err.Error()))
					return nil
				}
				fmt.Fprintln(out, formatOK("✓ Copied to clipboard"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to list (default from config)")
	cmd.Flags().BoolVar(&copyList, "copy", false, "Copy the numbers to the clipboard")
	return cmd
}
