package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/scheduler"
	"github.com/javiermolinar/semester/internal/tui/input"
	"github.com/javiermolinar/semester/internal/tui/view"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("semester · " + m.plan.Term()))
	b.WriteString("\n\n")

	if m.mode == ModeSearch {
		b.WriteString(m.renderSearch())
	} else {
		b.WriteString(m.renderWeek())
	}

	if m.statusMsg != "" {
		style := statusStyle
		if m.statusError {
			style = errorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderWeek() string {
	weeks := m.plan.Week()
	if len(weeks) == 0 {
		return mutedStyle.Render("No courses yet. Press a to search the catalog.") + "\n"
	}

	var b strings.Builder
	b.WriteString(view.RenderWeek(m.grid(view.SlotsFromPlan(weeks))))
	b.WriteString("\n\n")
	for i, w := range weeks {
		cursor := "  "
		codeStyle := mutedStyle
		if i == m.planCursor {
			cursor = "› "
			codeStyle = selectedStyle
		}
		line := cursor + codeStyle.Render(w.Entry.CourseCode) + " " + w.Entry.Selection.String()
		sel := w.Entry.Selection
		if w.Course == nil || scheduler.SelectedBlocks(w.Course, m.plan.Term(), &sel) == nil {
			line += " " + staleStyle.Render("(stale)")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.prompt.View())
	b.WriteString("\n\n")

	if suggestions := input.PromptMatchingCommands(m.prompt.Value(), input.Commands); len(suggestions) > 0 {
		for _, s := range suggestions {
			fmt.Fprintf(&b, "  %-8s %s\n", s.Name, mutedStyle.Render(s.Description))
		}
		return b.String()
	}

	for i, c := range m.results {
		cursor := "  "
		style := mutedStyle
		if i == m.resultCursor {
			cursor = "› "
			style = selectedStyle
		}
		mark := ""
		if m.plan.Has(c.Code) {
			mark = " " + statusStyle.Render("✓")
		}
		b.WriteString(cursor + style.Render(c.Code) + " " + c.Title + mark + "\n")
	}
	return b.String()
}

func (m Model) helpLine() string {
	if m.mode == ModeSearch {
		return "enter add · ↑/↓ select · tab complete · esc back"
	}
	return "a add · j/k select · x remove · c copy CRNs · q quit"
}

// grid sizes the week to the configured hours and the terminal width.
func (m Model) grid(slots []view.WeekSlot) view.WeekGrid {
	start, err := course.ParseClock(m.config.Planner.GridStart)
	if err != nil {
		start = 8 * 60
	}
	end, err := course.ParseClock(m.config.Planner.GridEnd)
	if err != nil {
		end = 21 * 60
	}
	colW := 16
	if m.width > 0 {
		colW = max(10, min((m.width-12)/len(view.DayHeaders), 24))
	}
	return view.WeekGrid{Start: start, End: end, Step: view.DefaultStep, ColWidth: colW, Slots: slots}
}
