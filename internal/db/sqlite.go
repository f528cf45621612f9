// Package db provides SQLite storage for the imported catalog and saved plans.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/semester/internal/catalog"
	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/plan"
)

// SQLite implements catalog.Store and plan.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// courseColumns holds the nested parts of a course as stored JSON columns.
// They use the catalog export encoding so block kinds are re-derived on load.
type courseColumns struct {
	Terms       json.RawMessage `json:"terms"`
	Instructors json.RawMessage `json:"instructors"`
	Schedule    json.RawMessage `json:"schedule"`
}

// ReplaceCatalog swaps the stored catalog for courses in a single transaction.
// Saved selections are kept; stale ones materialize to nothing.
func (s *SQLite) ReplaceCatalog(ctx context.Context, courses []*course.Course) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("clearing courses: %w", err)
	}

	query := `
		INSERT INTO courses (code, position, title, description, terms, instructors, schedule)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range courses {
		cols, err := encodeColumns(c)
		if err != nil {
			return fmt.Errorf("encoding course %s: %w", c.Code, err)
		}
		_, err = stmt.ExecContext(ctx,
			c.Code,
			i,
			c.Title,
			c.Description,
			string(cols.Terms),
			string(cols.Instructors),
			string(cols.Schedule),
		)
		if err != nil {
			return fmt.Errorf("inserting course %s: %w", c.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// LoadCatalog returns every stored course in import order.
func (s *SQLite) LoadCatalog(ctx context.Context) ([]*course.Course, error) {
	query := `
		SELECT code, title, description, terms, instructors, schedule
		FROM courses
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []*course.Course
	for rows.Next() {
		var (
			code, title, description string
			terms, instructors, sch  string
		)
		if err := rows.Scan(&code, &title, &description, &terms, &instructors, &sch); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}

		c, err := decodeCourse(code, title, description, courseColumns{
			Terms:       json.RawMessage(terms),
			Instructors: json.RawMessage(instructors),
			Schedule:    json.RawMessage(sch),
		})
		if err != nil {
			return nil, fmt.Errorf("decoding course %s: %w", code, err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}

	return courses, nil
}

// CountCourses returns the number of stored courses.
func (s *SQLite) CountCourses(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return n, nil
}

// ListSelections returns the plan entries of term in add order.
func (s *SQLite) ListSelections(ctx context.Context, term string) ([]plan.Entry, error) {
	query := `
		SELECT course_code, lecture, tutorial, added_at
		FROM selections
		WHERE term = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("querying selections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []plan.Entry
	for rows.Next() {
		var (
			e       plan.Entry
			addedAt string
		)
		if err := rows.Scan(&e.CourseCode, &e.Selection.Lecture, &e.Selection.Tutorial, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning selection: %w", err)
		}
		e.AddedAt, err = time.Parse(time.RFC3339, addedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing added at: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating selections: %w", err)
	}

	return entries, nil
}

// SaveSelection inserts e at the end of term, or replaces the lecture and
// tutorial of an entry already stored for the course.
func (s *SQLite) SaveSelection(ctx context.Context, term string, e plan.Entry) error {
	query := `
		INSERT INTO selections (term, course_code, lecture, tutorial, position, added_at)
		VALUES (?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM selections WHERE term = ?),
			?)
		ON CONFLICT(term, course_code) DO UPDATE SET
			lecture  = excluded.lecture,
			tutorial = excluded.tutorial
	`

	_, err := s.db.ExecContext(ctx, query,
		term,
		e.CourseCode,
		e.Selection.Lecture,
		e.Selection.Tutorial,
		term,
		e.AddedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving selection: %w", err)
	}

	return nil
}

// DeleteSelection removes a course from term.
func (s *SQLite) DeleteSelection(ctx context.Context, term, code string) error {
	query := `DELETE FROM selections WHERE term = ? AND course_code = ?`

	result, err := s.db.ExecContext(ctx, query, term, code)
	if err != nil {
		return fmt.Errorf("deleting selection: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%s: %w", code, plan.ErrNotInPlan)
	}

	return nil
}

// ListTerms returns the terms that have saved selections.
func (s *SQLite) ListTerms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT term FROM selections ORDER BY term`)
	if err != nil {
		return nil, fmt.Errorf("querying terms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var terms []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating terms: %w", err)
	}
	return terms, nil
}

func encodeColumns(c *course.Course) (courseColumns, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return courseColumns{}, err
	}
	var cols courseColumns
	if err := json.Unmarshal(data, &cols); err != nil {
		return courseColumns{}, err
	}
	cols.Terms = orEmptyList(cols.Terms)
	cols.Instructors = orEmptyList(cols.Instructors)
	cols.Schedule = orEmptyList(cols.Schedule)
	return cols, nil
}

func decodeCourse(code, title, description string, cols courseColumns) (*course.Course, error) {
	doc := struct {
		CourseCode  string          `json:"course_code"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Terms       json.RawMessage `json:"terms"`
		Instructors json.RawMessage `json:"instructors"`
		Schedule    json.RawMessage `json:"schedule"`
	}{code, title, description, cols.Terms, cols.Instructors, cols.Schedule}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var c course.Course
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func orEmptyList(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("[]")
	}
	return raw
}

var (
	_ catalog.Store   = (*SQLite)(nil)
	_ plan.Repository = (*SQLite)(nil)
)
