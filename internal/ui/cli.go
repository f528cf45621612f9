// Package ui implements the semester command line.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/semester/internal/catalog"
	"github.com/javiermolinar/semester/internal/config"
	"github.com/javiermolinar/semester/internal/db"
	"github.com/javiermolinar/semester/internal/debuglog"
	"github.com/javiermolinar/semester/internal/plan"
	"github.com/javiermolinar/semester/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

var errNoCatalog = errors.New("no catalog imported yet, run 'semester import <file>' first")

// App holds the CLI application state.
type App struct {
	config     *config.Config
	configPath string
	store      *db.SQLite // opened on first use
	root       *cobra.Command
	debug      bool // Enable debug logging
	noColor    bool
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, configPath: config.DefaultConfigPath()}

	a.root = &cobra.Command{
		Use:   "semester",
		Short: "Plan a conflict-free university timetable",
		Long: `Semester builds a weekly timetable from a course catalog.

Add courses and it picks the first lecture and tutorial combination
that fits the courses you already have. Run without arguments for
the interactive planner.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.noColor || !a.config.UI.Color {
				DisableColor()
			}
			return debuglog.Init(a.debug, debuglog.DefaultPath)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			debuglog.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			term := a.config.Planner.DefaultTerm
			cat, p, err := a.loadPlan(cmd.Context(), term)
			if err != nil {
				return err
			}
			return tui.Run(cat, p, a.config)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to "+debuglog.DefaultPath)
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.searchCmd())
	a.root.AddCommand(a.sectionsCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.pickCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.infoCmd())
	a.root.AddCommand(a.crnsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "semester %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database, if it was opened.
func (a *App) Close() error {
	debuglog.Close()
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// ensureStore opens the database on first use.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.store = store
	return nil
}

func (a *App) openCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if err := a.ensureStore(); err != nil {
		return nil, err
	}
	n, err := a.store.CountCourses(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errNoCatalog
	}
	return catalog.Open(ctx, a.store)
}

func (a *App) loadPlan(ctx context.Context, term string) (*catalog.Catalog, *plan.Plan, error) {
	cat, err := a.openCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := plan.Load(ctx, term, cat, a.store)
	if err != nil {
		return nil, nil, err
	}
	return cat, p, nil
}

// term returns the flag value, or the configured default term.
func (a *App) term(flag string) string {
	if flag != "" {
		return flag
	}
	return a.config.Planner.DefaultTerm
}
