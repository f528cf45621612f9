// Package tui provides the interactive planner: search the catalog, smart-add
// courses and watch the week fill up.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/semester/internal/catalog"
	"github.com/javiermolinar/semester/internal/config"
	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/plan"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeWeek   Mode = iota // grid and course list
	ModeSearch             // prompt focused, results listed
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	catalog *catalog.Catalog
	plan    *plan.Plan
	config  *config.Config

	mode Mode

	// Search state
	prompt       textinput.Model
	results      []*course.Course
	resultCursor int

	planCursor int // selected entry in the course list

	statusMsg   string
	statusError bool

	// Terminal dimensions
	width  int
	height int
}

// New creates a model over an opened catalog and a loaded plan.
func New(cat *catalog.Catalog, p *plan.Plan, cfg *config.Config) Model {
	prompt := textinput.New()
	prompt.Placeholder = "course code or title, /remove, /copy"
	prompt.Prompt = "› "
	prompt.CharLimit = 80

	return Model{
		catalog: cat,
		plan:    p,
		config:  cfg,
		prompt:  prompt,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI and blocks until the user quits.
func Run(cat *catalog.Catalog, p *plan.Plan, cfg *config.Config) error {
	program := tea.NewProgram(New(cat, p, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
