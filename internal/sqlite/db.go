package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema on a fresh database
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    position INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Contributors table
-- Dates are stored as YYYY-MM-DD strings, empty string when unset.
CREATE TABLE contributors (
    project_id TEXT NOT NULL,
    id TEXT NOT NULL,
    email TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('pending', 'assigned')),
    result TEXT NOT NULL DEFAULT '' CHECK(result IN ('', 'passed', 'failed')),
    date_added TEXT NOT NULL DEFAULT '',
    date_assigned TEXT NOT NULL DEFAULT '',
    date_completed TEXT NOT NULL DEFAULT '',
    date_archived TEXT NOT NULL DEFAULT '',
    archived INTEGER NOT NULL DEFAULT 0,
    sort_key INTEGER NOT NULL,
    PRIMARY KEY (project_id, id),
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE UNIQUE INDEX idx_contributor_email ON contributors(project_id, email COLLATE NOCASE);
CREATE INDEX idx_contributor_partition ON contributors(project_id, archived, sort_key);

-- Settings key/value table (current project selection)
CREATE TABLE settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
