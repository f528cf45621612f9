package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/semester/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  semester config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), a.configPath)
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Planner.DefaultTerm = promptValue(reader, out, "Default term", cfg.Planner.DefaultTerm)
	cfg.Planner.GridStart = promptValue(reader, out, "Grid start", cfg.Planner.GridStart)
	cfg.Planner.GridEnd = promptValue(reader, out, "Grid end", cfg.Planner.GridEnd)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Info.BaseURL = promptValue(reader, out, "Course info URL", cfg.Info.BaseURL)
	cfg.Export.Timezone = promptValue(reader, out, "Calendar timezone", cfg.Export.Timezone)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[planner]")
	fmt.Fprintf(out, "  default_term     = %s\n", cfg.Planner.DefaultTerm)
	fmt.Fprintf(out, "  grid_start       = %s\n", cfg.Planner.GridStart)
	fmt.Fprintf(out, "  grid_end         = %s\n", cfg.Planner.GridEnd)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[info]")
	fmt.Fprintf(out, "  base_url         = %s\n", cfg.Info.BaseURL)
	fmt.Fprintf(out, "  timeout_seconds  = %d\n", cfg.Info.TimeoutSeconds)
	fmt.Fprintln(out, "\n[export]")
	fmt.Fprintf(out, "  timezone         = %s\n", cfg.Export.Timezone)
	for _, t := range cfg.Terms {
		fmt.Fprintln(out, "\n[[terms]]")
		fmt.Fprintf(out, "  name             = %s\n", t.Name)
		fmt.Fprintf(out, "  start            = %s\n", t.Start)
		fmt.Fprintf(out, "  end              = %s\n", t.End)
	}
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  color            = %t\n", cfg.UI.Color)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}
