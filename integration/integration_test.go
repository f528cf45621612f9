package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/semester/internal/catalog"
	"github.com/javiermolinar/semester/internal/course"
	"github.com/javiermolinar/semester/internal/db"
	"github.com/javiermolinar/semester/internal/export"
	"github.com/javiermolinar/semester/internal/plan"
)

const fall = "Fall 2025"

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// readCatalog loads the catalog fixtures shipped with the catalog package.
func readCatalog(t *testing.T, names ...string) []*course.Course {
	t.Helper()
	var out []*course.Course
	for _, name := range names {
		courses, err := catalog.ReadFile(filepath.Join("..", "internal", "catalog", "testdata", name))
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		out = append(out, courses...)
	}
	return out
}

// importCatalog stores courses and reopens them from the database.
func importCatalog(t *testing.T, repo *db.SQLite, courses []*course.Course) *catalog.Catalog {
	t.Helper()
	ctx := context.Background()
	if _, err := catalog.New(courses); err != nil {
		t.Fatalf("invalid catalog: %v", err)
	}
	if err := repo.ReplaceCatalog(ctx, courses); err != nil {
		t.Fatalf("failed to store catalog: %v", err)
	}
	cat, err := catalog.Open(ctx, repo)
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	return cat
}

func TestImportAddReload(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	cat := importCatalog(t, repo, readCatalog(t, "catalog.json", "catalog.csv"))
	if cat.Len() != 4 {
		t.Fatalf("expected 4 courses, got %d", cat.Len())
	}

	p, err := plan.Load(ctx, fall, cat, repo)
	if err != nil {
		t.Fatalf("failed to load plan: %v", err)
	}
	for _, code := range []string{"COMP 202", "MATH 133", "PHYS 101"} {
		if _, err := p.Add(ctx, code); err != nil {
			t.Fatalf("Add(%s) failed: %v", code, err)
		}
	}
	if _, err := p.Add(ctx, "ECON 208"); err == nil {
		t.Error("expected ECON 208 to be unavailable in Fall 2025")
	}

	// A second session sees the same plan in add order.
	reloaded, err := plan.Load(ctx, fall, cat, repo)
	if err != nil {
		t.Fatalf("failed to reload plan: %v", err)
	}
	entries := reloaded.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"COMP 202", "MATH 133", "PHYS 101"}
	for i, e := range entries {
		if e.CourseCode != want[i] {
			t.Errorf("entry %d: got %s, want %s", i, e.CourseCode, want[i])
		}
	}
	if entries[0].Selection.Tutorial != "Tut 001" {
		t.Errorf("COMP 202 selection: got %s", entries[0].Selection)
	}

	// Every materialized slot of the plan is free of overlaps.
	var occupied []course.TimePoint
	for _, w := range reloaded.Week() {
		for _, s := range w.Slots {
			tp := s.Occurrence()
			for _, o := range occupied {
				if tp.Overlaps(o) {
					t.Errorf("%s %s overlaps %s", w.Entry.CourseCode, tp, o)
				}
			}
			occupied = append(occupied, tp)
		}
	}
}

func TestReimportKeepsStaleSelections(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	cat := importCatalog(t, repo, readCatalog(t, "catalog.json", "catalog.csv"))
	p, err := plan.Load(ctx, fall, cat, repo)
	if err != nil {
		t.Fatalf("failed to load plan: %v", err)
	}
	for _, code := range []string{"COMP 202", "PHYS 101"} {
		if _, err := p.Add(ctx, code); err != nil {
			t.Fatalf("Add(%s) failed: %v", code, err)
		}
	}

	// The new catalog drops COMP 202.
	cat = importCatalog(t, repo, readCatalog(t, "catalog.csv"))
	p, err = plan.Load(ctx, fall, cat, repo)
	if err != nil {
		t.Fatalf("failed to reload plan: %v", err)
	}

	weeks := p.Week()
	if len(weeks) != 2 {
		t.Fatalf("expected stale entry to be kept, got %d entries", len(weeks))
	}
	if weeks[0].Course != nil || len(weeks[0].Slots) != 0 {
		t.Errorf("expected COMP 202 to have no course and no slots, got %+v", weeks[0])
	}
	if len(weeks[1].Slots) == 0 {
		t.Error("expected PHYS 101 slots")
	}

	cal, err := export.NewCalendar(fall, "2025-09-02", "2025-12-03", "America/Montreal")
	if err != nil {
		t.Fatalf("NewCalendar failed: %v", err)
	}
	var buf bytes.Buffer
	if err := export.WriteICS(&buf, p.Entries(), cat, cal); err != nil {
		t.Fatalf("WriteICS failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "COMP 202") {
		t.Error("stale course exported")
	}
	if !strings.Contains(out, "SUMMARY:PHYS 101 Lec 001") {
		t.Errorf("expected PHYS 101 lecture, got:\n%s", out)
	}

	if err := p.Remove(ctx, "COMP 202"); err != nil {
		t.Fatalf("removing stale entry failed: %v", err)
	}
	terms, err := repo.ListTerms(ctx)
	if err != nil {
		t.Fatalf("ListTerms failed: %v", err)
	}
	if len(terms) != 1 || terms[0] != fall {
		t.Errorf("unexpected terms %v", terms)
	}
}
