package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rostralabs/rostra/internal/domain/project"
	"github.com/rostralabs/rostra/internal/repository"
)

const currentProjectKey = "current_project"

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

var _ project.Repository = (*ProjectRepository)(nil)

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project at the end of the list order
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, name, position, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM projects), ?)
	`

	_, err := r.db.ExecContext(ctx, query, proj.ID, proj.Name, proj.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	var proj project.Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, position, created_at FROM projects WHERE id = ?`, id).Scan(
		&proj.ID, &proj.Name, &proj.Position, &proj.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &proj, nil
}

// GetByName retrieves a project by its exact name
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	var proj project.Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, position, created_at FROM projects WHERE name = ?`, name).Scan(
		&proj.ID, &proj.Name, &proj.Position, &proj.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project by name: %w", err)
	}
	return &proj, nil
}

// List returns all projects in creation order
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, position, created_at FROM projects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	list := []project.Project{}
	for rows.Next() {
		var proj project.Project
		if err := rows.Scan(&proj.ID, &proj.Name, &proj.Position, &proj.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		list = append(list, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return list, nil
}

// Delete removes a project. Its contributors must be deleted first.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Current returns the ID of the currently selected project, or
// repository.ErrNotFound when no selection has been made.
func (r *ProjectRepository) Current(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, currentProjectKey).Scan(&id)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get current project: %w", err)
	}
	return id, nil
}

// SetCurrent records the currently selected project
func (r *ProjectRepository) SetCurrent(ctx context.Context, id string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := r.db.ExecContext(ctx, query, currentProjectKey, id); err != nil {
		return fmt.Errorf("failed to set current project: %w", err)
	}
	return nil
}
