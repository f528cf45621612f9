package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/javiermolinar/semester/internal/course"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor CSV.
var ErrUnsupportedFormat = errors.New("catalog file must be .json or .csv")

// Row is one occurrence of a block in the flat CSV catalog format.
type Row struct {
	CourseCode  string `csv:"course_code"`
	Title       string `csv:"title"`
	Term        string `csv:"term"`
	Section     string `csv:"section"`
	Location    string `csv:"location"`
	ExternalRef string `csv:"crn"`
	Day         int    `csv:"day"`
	Start       string `csv:"start"`
	End         string `csv:"end"`
}

// ReadFile loads courses from a .json or .csv catalog file.
func ReadFile(path string) ([]*course.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ReadJSON decodes a catalog export: a JSON array of courses.
func ReadJSON(r io.Reader) ([]*course.Course, error) {
	var courses []*course.Course
	if err := json.NewDecoder(r).Decode(&courses); err != nil {
		return nil, fmt.Errorf("decoding catalog JSON: %w", err)
	}
	out := courses[:0]
	for _, c := range courses {
		if c == nil || c.Code == "" {
			continue // entries without a code cannot be planned
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadCSV decodes the flat CSV format. Rows are folded in file order: a new
// course, term or section starts the first time its key appears.
// A row with an empty day carries a section without meetings.
func ReadCSV(r io.Reader) ([]*course.Course, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("decoding catalog CSV: %w", err)
	}
	return foldRows(rows)
}

func foldRows(rows []*Row) ([]*course.Course, error) {
	var (
		courses []*course.Course
		byCode  = make(map[string]*course.Course)
	)
	for i, row := range rows {
		line := i + 2 // header is line 1
		code := strings.TrimSpace(row.CourseCode)
		if code == "" {
			return nil, fmt.Errorf("line %d: %w", line, course.ErrEmptyCode)
		}
		if row.Term == "" {
			return nil, fmt.Errorf("line %d: %w", line, course.ErrEmptyTermName)
		}

		crs, ok := byCode[code]
		if !ok {
			crs = &course.Course{Code: code, Title: row.Title}
			byCode[code] = crs
			courses = append(courses, crs)
		}
		ts := termOf(crs, row.Term)
		blk := blockOf(ts, row)

		if row.Day == 0 {
			continue
		}
		start, err := course.ParseClock(row.Start)
		if err != nil {
			return nil, fmt.Errorf("line %d start: %w", line, err)
		}
		end, err := course.ParseClock(row.End)
		if err != nil {
			return nil, fmt.Errorf("line %d end: %w", line, err)
		}
		tp := course.TimePoint{Day: row.Day, StartMinute: start, EndMinute: end}
		if err := tp.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		blk.Occurrences = append(blk.Occurrences, tp)
	}
	return courses, nil
}

func termOf(c *course.Course, name string) *course.TermSchedule {
	for i := range c.Schedule {
		if c.Schedule[i].Term == name {
			return &c.Schedule[i]
		}
	}
	c.Schedule = append(c.Schedule, course.TermSchedule{Term: name})
	c.Terms = append(c.Terms, name)
	return &c.Schedule[len(c.Schedule)-1]
}

func blockOf(ts *course.TermSchedule, row *Row) *course.MeetingBlock {
	for i := range ts.Blocks {
		if ts.Blocks[i].Label == row.Section {
			return &ts.Blocks[i]
		}
	}
	ts.Blocks = append(ts.Blocks, course.NewBlock(row.Section, row.Location, row.ExternalRef))
	return &ts.Blocks[len(ts.Blocks)-1]
}
