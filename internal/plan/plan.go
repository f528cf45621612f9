// Package plan keeps the courses a student added for one term, each with its
// chosen lecture and tutorial, and applies smart add on top of the scheduler.
package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/scheduler"
)

// Plan errors.
var (
	ErrAlreadyAdded = errors.New("course is already in the plan")
	ErrNotInPlan    = errors.New("course is not in the plan")
	ErrConflict     = errors.New("selection conflicts with the current schedule")
)

// Catalog looks courses up by code.
type Catalog interface {
	Get(code string) (*course.Course, error)
}

// Repository persists plan entries per term.
type Repository interface {
	// ListSelections returns the entries of term in add order.
	ListSelections(ctx context.Context, term string) ([]Entry, error)

	// SaveSelection inserts e, or updates its selection if the course is
	// already stored for term. Updates keep the original position.
	SaveSelection(ctx context.Context, term string, e Entry) error

	// DeleteSelection removes a course from term.
	DeleteSelection(ctx context.Context, term, code string) error
}

// Entry is one added course with its selection.
type Entry struct {
	CourseCode string
	Selection  scheduler.Selection
	AddedAt    time.Time
}

// CourseWeek is the materialized week of one entry.
type CourseWeek struct {
	Entry  Entry
	Course *course.Course
	Slots  []scheduler.CalendarSlot
}

// Plan is a term-scoped ordered set of entries. Mutations are serialized.
type Plan struct {
	term    string
	catalog Catalog
	repo    Repository
	now     func() time.Time

	mu      sync.Mutex
	entries []Entry
}

// New returns an empty plan for term. A nil repo keeps the plan in memory.
func New(term string, cat Catalog, repo Repository) *Plan {
	return &Plan{
		term:    term,
		catalog: cat,
		repo:    repo,
		now:     time.Now,
	}
}

// Load returns the plan for term with the entries stored in repo.
func Load(ctx context.Context, term string, cat Catalog, repo Repository) (*Plan, error) {
	p := New(term, cat, repo)
	if repo == nil {
		return p, nil
	}
	entries, err := repo.ListSelections(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("loading plan for %s: %w", term, err)
	}
	p.entries = entries
	return p, nil
}

// Term returns the term the plan is scoped to.
func (p *Plan) Term() string {
	return p.term
}

// Entries returns a copy of the entries in add order.
func (p *Plan) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Has reports whether code is in the plan.
func (p *Plan) Has(code string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexOf(code) >= 0
}

// Add looks the course up, resolves the first selection that fits the rest of
// the plan and stores it. Resolution failures come back as
// *scheduler.ResolveError and leave the plan unchanged.
func (p *Plan) Add(ctx context.Context, code string) (Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, err := p.catalog.Get(code)
	if err != nil {
		return Entry{}, err
	}
	if p.indexOf(c.Code) >= 0 {
		return Entry{}, fmt.Errorf("%s: %w", c.Code, ErrAlreadyAdded)
	}

	sel, err := scheduler.Resolve(c, p.term, p.occupied(c.Code))
	if err != nil {
		return Entry{}, err
	}

	e := Entry{CourseCode: c.Code, Selection: sel, AddedAt: p.now()}
	if err := p.save(ctx, e); err != nil {
		return Entry{}, err
	}
	p.entries = append(p.entries, e)
	return e, nil
}

// Pick stores an explicit selection for code, adding the course if needed.
// Labels must exist in the catalog. A selection overlapping the rest of the
// plan is rejected with ErrConflict unless force is set.
func (p *Plan) Pick(ctx context.Context, code string, sel scheduler.Selection, force bool) (Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, err := p.catalog.Get(code)
	if err != nil {
		return Entry{}, err
	}
	if err := scheduler.ValidateSelection(c, p.term, sel); err != nil {
		return Entry{}, err
	}

	if !force {
		occ := scheduler.Occurrences(c, p.term, &sel)
		if clashes := scheduler.Conflicts(occ, p.occupied(c.Code)); len(clashes) > 0 {
			return Entry{}, fmt.Errorf("%s %s: %w (%s against %s)",
				c.Code, sel, ErrConflict, clashes[0].Candidate, clashes[0].Occupied)
		}
	}

	idx := p.indexOf(c.Code)
	e := Entry{CourseCode: c.Code, Selection: sel, AddedAt: p.now()}
	if idx >= 0 {
		e.AddedAt = p.entries[idx].AddedAt
	}
	if err := p.save(ctx, e); err != nil {
		return Entry{}, err
	}
	if idx >= 0 {
		p.entries[idx] = e
	} else {
		p.entries = append(p.entries, e)
	}
	return e, nil
}

// Remove drops code from the plan.
func (p *Plan) Remove(ctx context.Context, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.indexOf(code)
	if idx < 0 {
		return fmt.Errorf("%s: %w", code, ErrNotInPlan)
	}
	stored := p.entries[idx].CourseCode
	if p.repo != nil {
		if err := p.repo.DeleteSelection(ctx, p.term, stored); err != nil {
			return fmt.Errorf("removing %s: %w", stored, err)
		}
	}
	p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
	return nil
}

// Options lists every combination of code for the section picker, flagging
// the ones that overlap the rest of the plan. The course itself is left out
// of the occupied set, so its current selection shows as free.
func (p *Plan) Options(code string) ([]scheduler.Option, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, err := p.catalog.Get(code)
	if err != nil {
		return nil, err
	}
	return scheduler.Options(c, p.term, p.occupied(c.Code))
}

// Week materializes every entry in add order. Entries whose course or
// selection is no longer in the catalog yield no slots.
func (p *Plan) Week() []CourseWeek {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]CourseWeek, 0, len(p.entries))
	for _, e := range p.entries {
		c, err := p.catalog.Get(e.CourseCode)
		if err != nil {
			out = append(out, CourseWeek{Entry: e})
			continue
		}
		sel := e.Selection
		out = append(out, CourseWeek{
			Entry:  e,
			Course: c,
			Slots:  scheduler.Materialize(c, p.term, &sel),
		})
	}
	return out
}

// Occupied returns the raw occurrences of every entry except exclude.
func (p *Plan) Occupied(exclude string) []course.TimePoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.occupied(exclude)
}

// occupied must be called with p.mu held.
func (p *Plan) occupied(exclude string) []course.TimePoint {
	var out []course.TimePoint
	for _, e := range p.entries {
		if sameCode(e.CourseCode, exclude) {
			continue
		}
		c, err := p.catalog.Get(e.CourseCode)
		if err != nil {
			continue
		}
		sel := e.Selection
		out = append(out, scheduler.Occurrences(c, p.term, &sel)...)
	}
	return out
}

func (p *Plan) indexOf(code string) int {
	for i, e := range p.entries {
		if sameCode(e.CourseCode, code) {
			return i
		}
	}
	return -1
}

func (p *Plan) save(ctx context.Context, e Entry) error {
	if p.repo == nil {
		return nil
	}
	if err := p.repo.SaveSelection(ctx, p.term, e); err != nil {
		return fmt.Errorf("saving %s: %w", e.CourseCode, err)
	}
	return nil
}

func sameCode(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}
