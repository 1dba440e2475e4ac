package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"contributors",
		"settings",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestContributorsTable verifies the contributors table constraints
func TestContributorsTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, name, position) VALUES (?, ?, ?)`,
		"p1", "Test Project", 1)
	require.NoError(t, err)

	// Insert a contributor
	_, err = db.ExecContext(ctx,
		`INSERT INTO contributors (project_id, id, email, status, result, date_added, sort_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"p1", "CB001", "alice@example.com", "pending", "", "2026-08-29", 1)
	require.NoError(t, err)

	// Foreign key constraint - should fail with invalid project_id
	_, err = db.ExecContext(ctx,
		`INSERT INTO contributors (project_id, id, email, status, result, sort_key)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"invalid", "CB002", "bob@example.com", "pending", "", 2)
	require.Error(t, err, "should fail with invalid project_id")

	// Status constraint - should fail with invalid status
	_, err = db.ExecContext(ctx,
		`INSERT INTO contributors (project_id, id, email, status, result, sort_key)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"p1", "CB002", "bob@example.com", "done", "", 2)
	require.Error(t, err, "should fail with invalid status")

	// Email uniqueness is case-insensitive within a project
	_, err = db.ExecContext(ctx,
		`INSERT INTO contributors (project_id, id, email, status, result, sort_key)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"p1", "CB002", "ALICE@example.com", "pending", "", 2)
	require.Error(t, err, "should fail on duplicate email")
}

// TestSettingsTable verifies the settings key/value table
func TestSettingsTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)`, "current_project", "p1")
	require.NoError(t, err)

	var value string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, "current_project").Scan(&value)
	require.NoError(t, err)
	require.Equal(t, "p1", value)
}
