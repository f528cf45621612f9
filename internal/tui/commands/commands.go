// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/export"
	"github.com/javiermolinar/semester/internal/plan"
)

// Searcher answers catalog searches.
type Searcher interface {
	Search(query, term string, limit int) ([]*course.Course, error)
}

// SearchResultMsg is sent when a search completes.
type SearchResultMsg struct {
	Query   string
	Courses []*course.Course
	Err     error
}

// CourseAddedMsg is sent when smart add stored a course.
type CourseAddedMsg struct {
	Entry plan.Entry
}

// CourseRemovedMsg is sent when a course left the plan.
type CourseRemovedMsg struct {
	Code string
}

// CopiedMsg is sent when registration numbers reached the clipboard.
type CopiedMsg struct {
	Count int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Search runs a catalog search for query in term.
func Search(cat Searcher, query, term string, limit int) tea.Cmd {
	return func() tea.Msg {
		courses, err := cat.Search(query, term, limit)
		return SearchResultMsg{Query: query, Courses: courses, Err: err}
	}
}

// AddCourse smart-adds code to p.
func AddCourse(p *plan.Plan, code string) tea.Cmd {
	return func() tea.Msg {
		entry, err := p.Add(context.Background(), code)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return CourseAddedMsg{Entry: entry}
	}
}

// RemoveCourse removes code from p.
func RemoveCourse(p *plan.Plan, code string) tea.Cmd {
	return func() tea.Msg {
		if err := p.Remove(context.Background(), code); err != nil {
			return ErrMsg{Err: err}
		}
		return CourseRemovedMsg{Code: code}
	}
}

// CopyCRNs copies the registration numbers of p to the clipboard.
func CopyCRNs(p *plan.Plan, cat plan.Catalog) tea.Cmd {
	return func() tea.Msg {
		refs := export.References(p.Entries(), cat, p.Term())
		if err := clipboard.WriteAll(export.CRNList(refs)); err != nil {
			return ErrMsg{Err: err}
		}
		return CopiedMsg{Count: len(refs)}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
