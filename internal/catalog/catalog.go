// Package catalog loads course catalogs and answers lookups and searches.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/semester/internal/course"
)

// Search limits, matching the course search endpoint of the web app.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// Domain errors.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrDuplicateCode  = errors.New("course code listed twice")
	ErrEmptyQuery     = errors.New("search query cannot be empty")
)

// Store persists an imported catalog.
type Store interface {
	// ReplaceCatalog swaps the stored catalog for courses.
	ReplaceCatalog(ctx context.Context, courses []*course.Course) error

	// LoadCatalog returns every stored course in import order.
	LoadCatalog(ctx context.Context) ([]*course.Course, error)
}

// Catalog is an immutable, ordered set of courses indexed by code.
type Catalog struct {
	courses []*course.Course
	byCode  map[string]*course.Course
}

// New validates courses and builds a Catalog that keeps their order.
func New(courses []*course.Course) (*Catalog, error) {
	c := &Catalog{
		courses: make([]*course.Course, 0, len(courses)),
		byCode:  make(map[string]*course.Course, len(courses)),
	}
	for _, crs := range courses {
		if err := crs.Validate(); err != nil {
			return nil, err
		}
		key := normalizeCode(crs.Code)
		if _, ok := c.byCode[key]; ok {
			return nil, fmt.Errorf("%s: %w", crs.Code, ErrDuplicateCode)
		}
		c.byCode[key] = crs
		c.courses = append(c.courses, crs)
	}
	return c, nil
}

// Open loads the catalog held by store.
func Open(ctx context.Context, store Store) (*Catalog, error) {
	courses, err := store.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return New(courses)
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Courses returns every course in catalog order.
func (c *Catalog) Courses() []*course.Course {
	return c.courses
}

// Get returns the course with the given code, ignoring case and extra spaces.
func (c *Catalog) Get(code string) (*course.Course, error) {
	crs, ok := c.byCode[normalizeCode(code)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", code, ErrCourseNotFound)
	}
	return crs, nil
}

// Search returns courses whose code or title contains query, case-insensitively,
// in catalog order. When term is set, courses not offered that term are left out.
// A limit outside 1..MaxSearchLimit falls back to the nearest bound,
// zero means DefaultSearchLimit.
func (c *Catalog) Search(query, term string, limit int) ([]*course.Course, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyQuery
	}
	switch {
	case limit == 0:
		limit = DefaultSearchLimit
	case limit < 0:
		limit = 1
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}

	var out []*course.Course
	for _, crs := range c.courses {
		if len(out) == limit {
			break
		}
		if term != "" && !crs.OfferedIn(term) {
			continue
		}
		if strings.Contains(strings.ToLower(crs.Code), q) || strings.Contains(strings.ToLower(crs.Title), q) {
			out = append(out, crs)
		}
	}
	return out, nil
}

// Terms returns every term name with a schedule, in first-seen order.
func (c *Catalog) Terms() []string {
	seen := make(map[string]bool)
	var out []string
	for _, crs := range c.courses {
		for _, name := range crs.TermNames() {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), " "))
}
