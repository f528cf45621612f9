// Package view renders the Monday-Friday week grid of a plan.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/plan"
	"github.com/javiermolinar/semester/internal/scheduler"
)

// DayHeaders are the grid columns, matching calendar days 1..5.
var DayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// DefaultStep is the grid row height in minutes.
const DefaultStep = 30

// CoursePalette colors courses by their position in the plan.
var CoursePalette = []lipgloss.Color{
	"#89b4fa", "#a6e3a1", "#f9e2af", "#f5c2e7",
	"#94e2d5", "#fab387", "#cba6f7", "#74c7ec",
}

var (
	colorConflict = lipgloss.Color("#f38ba8")
	colorText     = lipgloss.Color("#1e1e2e")
	colorMuted    = lipgloss.Color("#6c7086")
	colorBorder   = lipgloss.Color("#585b70")
)

// WeekSlot is one displayable slot tagged with its course.
type WeekSlot struct {
	Course string
	Color  int
	Slot   scheduler.CalendarSlot
}

// Cell is one grid cell after layout.
type Cell struct {
	Text     string
	Color    int
	Filled   bool
	Conflict bool
}

// WeekGrid lays slots out on rows of Step minutes between Start and End.
type WeekGrid struct {
	Start    int // minutes past midnight
	End      int
	Step     int
	ColWidth int
	Slots    []WeekSlot
}

// SlotsFromPlan flattens a materialized plan, coloring by entry order.
func SlotsFromPlan(weeks []plan.CourseWeek) []WeekSlot {
	var out []WeekSlot
	for i, w := range weeks {
		for _, s := range w.Slots {
			out = append(out, WeekSlot{Course: w.Entry.CourseCode, Color: i, Slot: s})
		}
	}
	return out
}

// Rows returns the number of grid rows.
func (g WeekGrid) Rows() int {
	step := g.step()
	if g.End <= g.Start {
		return 0
	}
	return (g.End - g.Start + step - 1) / step
}

func (g WeekGrid) step() int {
	if g.Step <= 0 {
		return DefaultStep
	}
	return g.Step
}

// Cells lays every slot out on the grid. A cell covered by more than one
// slot is a conflict. The first row of a slot shows its course and label,
// the second its location.
func (g WeekGrid) Cells() [][]Cell {
	step := g.step()
	rows := g.Rows()
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, len(DayHeaders))
	}

	for _, ws := range g.Slots {
		col := ws.Slot.Day - 1
		if col < 0 || col >= len(DayHeaders) {
			continue
		}
		occ := ws.Slot.Occurrence()
		k := 0
		for r := 0; r < rows; r++ {
			rowStart := g.Start + r*step
			rowEnd := rowStart + step
			if !(occ.StartMinute < rowEnd && rowStart < occ.EndMinute) {
				continue
			}
			text := ""
			switch k {
			case 0:
				text = ws.Course + " " + ws.Slot.Label
			case 1:
				text = ws.Slot.Location
			}
			k++

			c := &cells[r][col]
			if c.Filled {
				c.Conflict = true
				if !strings.HasPrefix(c.Text, "! ") {
					c.Text = "! " + c.Text
				}
				continue
			}
			*c = Cell{Text: text, Color: ws.Color, Filled: true}
		}
	}
	return cells
}

// RenderWeek draws the grid as a bordered table.
func RenderWeek(g WeekGrid) string {
	colW := g.ColWidth
	if colW <= 0 {
		colW = 16
	}
	cells := g.Cells()
	step := g.step()

	rows := make([][]string, len(cells))
	for r, row := range cells {
		line := make([]string, 0, len(row)+1)
		minute := g.Start + r*step
		label := ""
		if minute%60 == 0 {
			label = course.MinutesToTime(minute)
		}
		line = append(line, label)
		for _, c := range row {
			line = append(line, ansi.Truncate(c.Text, colW, "…"))
		}
		rows[r] = line
	}

	headers := append([]string{""}, DayHeaders...)
	headerStyle := lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	timeStyle := lipgloss.NewStyle().Foreground(colorMuted).Width(5)
	emptyStyle := lipgloss.NewStyle().Width(colW)

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		BorderRow(false).
		BorderColumn(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == 0 {
					return headerStyle.Width(5)
				}
				return headerStyle.Width(colW)
			}
			if col == 0 {
				return timeStyle
			}
			if row < 0 || row >= len(cells) || col-1 >= len(cells[row]) {
				return emptyStyle
			}
			c := cells[row][col-1]
			switch {
			case c.Conflict:
				return emptyStyle.Background(colorConflict).Foreground(colorText).Bold(true)
			case c.Filled:
				return emptyStyle.Background(CoursePalette[c.Color%len(CoursePalette)]).Foreground(colorText)
			default:
				return emptyStyle
			}
		})

	return t.Render()
}
