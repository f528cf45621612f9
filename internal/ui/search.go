package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) searchCmd() *cobra.Command {
	var term string
	var limit int
	var anyTerm bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by code or title",
		Example: `  semester search comp
  semester search "linear algebra" --term "Winter 2026"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog(cmd.Context())
			if err != nil {
				return a.report(cmd, err)
			}

			query := strings.Join(args, " ")
			filter := a.term(term)
			if anyTerm {
				filter = ""
			}
			found, err := cat.Search(query, filter, limit)
			if err != nil {
				return a.report(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintf(out, "No courses match %q.\n", query)
				return nil
			}
			for _, c := range found {
				fmt.Fprintf(out, "%-10s %s %s\n", formatCode(c.Code), c.Title,
					formatMuted("["+strings.Join(c.TermNames(), ", ")+"]"))
				if filter == "" {
					continue
				}
				if names := c.InstructorsFor(filter); len(names) > 0 {
					fmt.Fprintln(out, formatMuted("           "+strings.Join(names, ", ")))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Only courses offered this term (default from config)")
	cmd.Flags().BoolVar(&anyTerm, "any-term", false, "Search every term")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results (1-50)")
	return cmd
}
