package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS courses (
			code        TEXT PRIMARY KEY,
			position    INTEGER NOT NULL,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			terms       TEXT NOT NULL DEFAULT '[]',
			instructors TEXT NOT NULL DEFAULT '[]',
			schedule    TEXT NOT NULL DEFAULT '[]',
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS selections (
			term        TEXT NOT NULL,
			course_code TEXT NOT NULL,
			lecture     TEXT NOT NULL,
			tutorial    TEXT NOT NULL DEFAULT '',
			position    INTEGER NOT NULL,
			added_at    TEXT NOT NULL,
			PRIMARY KEY (term, course_code)
		);

		CREATE INDEX IF NOT EXISTS idx_courses_position ON courses(position);
		CREATE INDEX IF NOT EXISTS idx_selections_term ON selections(term, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
