package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/semester/internal/catalog"
	"github.com/javiermolinar/semester/internal/debuglog"
	"github.com/javiermolinar/semester/internal/plan"
	"github.com/javiermolinar/semester/internal/tui/commands"
	"github.com/javiermolinar/semester/internal/tui/input"
)

const statusTimeout = 4 * time.Second

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.SearchResultMsg:
		// Drop results of a query the user already typed past.
		if msg.Query != strings.TrimSpace(m.prompt.Value()) {
			return m, nil
		}
		m.results = msg.Courses
		m.resultCursor = 0
		return m, nil

	case commands.CourseAddedMsg:
		debuglog.Event("ADD", map[string]any{
			"term":      m.plan.Term(),
			"course":    msg.Entry.CourseCode,
			"selection": msg.Entry.Selection.String(),
		})
		m.leaveSearch()
		m.planCursor = len(m.plan.Entries()) - 1
		return m.setStatus(fmt.Sprintf("Added %s: %s", msg.Entry.CourseCode, msg.Entry.Selection), false)

	case commands.CourseRemovedMsg:
		debuglog.Event("REMOVE", map[string]any{"term": m.plan.Term(), "course": msg.Code})
		m.leaveSearch()
		m.clampPlanCursor()
		return m.setStatus("Removed "+msg.Code, false)

	case commands.CopiedMsg:
		return m.setStatus(fmt.Sprintf("Copied %d registration numbers", msg.Count), false)

	case commands.ErrMsg:
		debuglog.Error("tui", msg.Err)
		text, ok := plan.Describe(msg.Err)
		if !ok {
			text = "Error: " + msg.Err.Error()
		}
		return m.setStatus(text, true)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusError = false
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	debuglog.Event("KEY", map[string]any{"key": msg.String(), "mode": int(m.mode)})

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModeSearch {
		return m.handleSearchKeys(msg)
	}
	return m.handleWeekKeys(msg)
}

func (m Model) handleWeekKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.plan.Entries()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a", "/":
		m.mode = ModeSearch
		m.prompt.Reset()
		m.results = nil
		return m, m.prompt.Focus()
	case "j", "down":
		if m.planCursor < len(entries)-1 {
			m.planCursor++
		}
	case "k", "up":
		if m.planCursor > 0 {
			m.planCursor--
		}
	case "x", "delete":
		if m.planCursor < len(entries) {
			return m, commands.RemoveCourse(m.plan, entries[m.planCursor].CourseCode)
		}
	case "c":
		return m, commands.CopyCRNs(m.plan, m.catalog)
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveSearch()
		return m, nil
	case "up":
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil
	case "down":
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
		return m, nil
	case "tab":
		if completed, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(completed)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		return m.submitPrompt()
	}

	before := m.prompt.Value()
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	query := strings.TrimSpace(m.prompt.Value())
	if m.prompt.Value() == before {
		return m, cmd
	}
	if _, _, isCommand := input.ParseCommand(query); isCommand || query == "" {
		m.results = nil
		return m, cmd
	}
	return m, tea.Batch(cmd, commands.Search(m.catalog, query, m.plan.Term(), catalog.DefaultSearchLimit))
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	name, arg, isCommand := input.ParseCommand(m.prompt.Value())
	if !isCommand {
		if m.resultCursor >= len(m.results) {
			return m, nil
		}
		return m, commands.AddCourse(m.plan, m.results[m.resultCursor].Code)
	}

	switch name {
	case "/remove":
		if arg == "" {
			return m.setStatus("Usage: /remove <code>", true)
		}
		return m, commands.RemoveCourse(m.plan, arg)
	case "/copy":
		m.leaveSearch()
		return m, commands.CopyCRNs(m.plan, m.catalog)
	case "/quit":
		return m, tea.Quit
	}
	return m.setStatus("Unknown command "+name, true)
}

func (m *Model) leaveSearch() {
	m.mode = ModeWeek
	m.prompt.Blur()
	m.prompt.Reset()
	m.results = nil
	m.resultCursor = 0
}

func (m *Model) clampPlanCursor() {
	n := len(m.plan.Entries())
	if m.planCursor >= n {
		m.planCursor = n - 1
	}
	if m.planCursor < 0 {
		m.planCursor = 0
	}
}

func (m Model) setStatus(text string, isError bool) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusError = isError
	return m, commands.ClearStatusAfter(statusTimeout)
}
