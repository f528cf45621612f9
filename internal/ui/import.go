package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/semester/internal/catalog"
	"github.com/javiermolinar/semester/internal/debuglog"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a course catalog",
		Long: `Replace the stored course catalog with the contents of a JSON or CSV file.

Courses you already added keep their sections. A section that no longer
exists is shown as stale until you pick a new one.

Example:
  semester import ~/Downloads/courses.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("catalog file does not exist: %s", path)
				}
				return fmt.Errorf("checking catalog file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("catalog path is a directory: %s", path)
			}

			courses, err := catalog.ReadFile(path)
			if err != nil {
				return err
			}
			cat, err := catalog.New(courses)
			if err != nil {
				return fmt.Errorf("invalid catalog: %w", err)
			}

			if err := a.ensureStore(); err != nil {
				return err
			}
			if err := a.store.ReplaceCatalog(cmd.Context(), cat.Courses()); err != nil {
				return err
			}

			terms := cat.Terms()
			debuglog.Event("IMPORT", map[string]any{
				"path":    path,
				"courses": cat.Len(),
				"terms":   terms,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d courses from %s\n", cat.Len(), path)
			if len(terms) > 0 {
				fmt.Fprintf(out, "Terms: %s\n", strings.Join(terms, ", "))
			}
			return nil
		},
	}
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
