package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/semester/internal/courseinfo"
)

func (a *App) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <code>",
		Short: "Fetch the public course page",
		Long: `Look a course up on the configured course site and print its title,
description, prerequisites and credits.

Example:
  semester info "COMP 202"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := courseinfo.NewClient(a.config.Info.BaseURL, a.config.Timeout())
			info, err := client.Fetch(cmd.Context(), args[0])
			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, courseinfo.ErrNotFound), errors.Is(err, courseinfo.ErrEmptyResponse):
				fmt.Fprintln(out, formatWarn(fmt.Sprintf("✗ %s: %v", args[0], err)))
				return nil
			case err != nil:
				return err
			}

			fmt.Fprintf(out, "%s %s\n", formatCode(info.CourseCode), formatHeader(info.Title))
			fmt.Fprintln(out, formatMuted(info.URL))
			if info.Credits > 0 {
				fmt.Fprintf(out, "Credits: %g\n", info.Credits)
			}
			if info.Prerequisites != "" {
				fmt.Fprintf(out, "%s\n", info.Prerequisites)
			}
			if info.Description != "" {
				fmt.Fprintf(out, "\n%s\n", info.Description)
			}
			return nil
		},
	}
}
