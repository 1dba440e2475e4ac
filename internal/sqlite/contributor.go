package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/repository"
)

// ContributorRepository implements contributor.Repository for SQLite
type ContributorRepository struct {
	db *DB
}

var _ contributor.Repository = (*ContributorRepository)(nil)

// NewContributorRepository creates a new ContributorRepository
func NewContributorRepository(db *DB) *ContributorRepository {
	return &ContributorRepository{db: db}
}

const contributorColumns = `id, email, status, result, date_added, date_assigned, date_completed, date_archived`

func scanContributor(row interface{ Scan(...any) error }) (*contributor.Contributor, contributor.Partition, error) {
	var c contributor.Contributor
	var archived int
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.Status,
		&c.Result,
		&c.DateAdded,
		&c.DateAssigned,
		&c.DateCompleted,
		&c.DateArchived,
		&archived,
	)
	if err != nil {
		return nil, "", err
	}
	part := contributor.PartitionActive
	if archived != 0 {
		part = contributor.PartitionArchived
	}
	return &c, part, nil
}

// Insert adds a contributor to the active partition, at the end of the order
func (r *ContributorRepository) Insert(ctx context.Context, projectID string, c *contributor.Contributor) error {
	query := `
		INSERT INTO contributors (
			project_id, id, email, status, result,
			date_added, date_assigned, date_completed, date_archived,
			archived, sort_key
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0,
			(SELECT COALESCE(MAX(sort_key), 0) + 1 FROM contributors WHERE project_id = ?))
	`

	_, err := r.db.ExecContext(ctx, query,
		projectID,
		c.ID,
		c.Email,
		c.Status,
		c.Result,
		c.DateAdded,
		c.DateAssigned,
		c.DateCompleted,
		c.DateArchived,
		projectID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to insert contributor: %w", err)
	}

	return nil
}

// Update rewrites a contributor's fields in place, keeping its partition and order
func (r *ContributorRepository) Update(ctx context.Context, projectID string, c *contributor.Contributor) error {
	query := `
		UPDATE contributors
		SET email = ?, status = ?, result = ?,
		    date_added = ?, date_assigned = ?, date_completed = ?, date_archived = ?
		WHERE project_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Email,
		c.Status,
		c.Result,
		c.DateAdded,
		c.DateAssigned,
		c.DateCompleted,
		c.DateArchived,
		projectID,
		c.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to update contributor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Find retrieves a contributor by ID from either partition
func (r *ContributorRepository) Find(ctx context.Context, projectID, id string) (*contributor.Contributor, contributor.Partition, error) {
	query := fmt.Sprintf(`
		SELECT %s, archived FROM contributors
		WHERE project_id = ? AND id = ?
	`, contributorColumns)

	c, part, err := scanContributor(r.db.QueryRowContext(ctx, query, projectID, id))
	if err == sql.ErrNoRows {
		return nil, "", repository.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to find contributor: %w", err)
	}

	return c, part, nil
}

// FindByEmail retrieves a contributor by email, matching case-insensitively
func (r *ContributorRepository) FindByEmail(ctx context.Context, projectID, email string) (*contributor.Contributor, contributor.Partition, error) {
	query := fmt.Sprintf(`
		SELECT %s, archived FROM contributors
		WHERE project_id = ? AND email = ? COLLATE NOCASE
	`, contributorColumns)

	c, part, err := scanContributor(r.db.QueryRowContext(ctx, query, projectID, email))
	if err == sql.ErrNoRows {
		return nil, "", repository.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to find contributor by email: %w", err)
	}

	return c, part, nil
}

// List returns one partition of a project's roster in insertion order
func (r *ContributorRepository) List(ctx context.Context, projectID string, p contributor.Partition) ([]contributor.Contributor, error) {
	query := fmt.Sprintf(`
		SELECT %s, archived FROM contributors
		WHERE project_id = ? AND archived = ?
		ORDER BY sort_key
	`, contributorColumns)

	archived := 0
	if p == contributor.PartitionArchived {
		archived = 1
	}

	rows, err := r.db.QueryContext(ctx, query, projectID, archived)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	defer rows.Close()

	list := []contributor.Contributor{}
	for rows.Next() {
		c, _, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contributor: %w", err)
		}
		list = append(list, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	return list, nil
}

// Move shifts a contributor to the given partition, placing it at the end
// of that partition's order and setting its archived date.
func (r *ContributorRepository) Move(ctx context.Context, projectID, id string, to contributor.Partition, dateArchived string) error {
	archived := 0
	if to == contributor.PartitionArchived {
		archived = 1
	}

	query := `
		UPDATE contributors
		SET archived = ?, date_archived = ?,
		    sort_key = (SELECT COALESCE(MAX(sort_key), 0) + 1 FROM contributors WHERE project_id = ?)
		WHERE project_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(ctx, query, archived, dateArchived, projectID, projectID, id)
	if err != nil {
		return fmt.Errorf("failed to move contributor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check move result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a contributor permanently
func (r *ContributorRepository) Delete(ctx context.Context, projectID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM contributors WHERE project_id = ? AND id = ?`, projectID, id)
	if err != nil {
		return fmt.Errorf("failed to delete contributor: %w", err)
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

// Count returns the number of contributors across both partitions
func (r *ContributorRepository) Count(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contributors WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contributors: %w", err)
	}
	return count, nil
}

// ExistsID reports whether a contributor ID is already taken in the project
func (r *ContributorRepository) ExistsID(ctx context.Context, projectID, id string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contributors WHERE project_id = ? AND id = ?`, projectID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check contributor id: %w", err)
	}
	return exists > 0, nil
}

// ReplaceAll atomically replaces a project's entire roster with the snapshot
func (r *ContributorRepository) ReplaceAll(ctx context.Context, projectID string, snap contributor.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM contributors WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	insert := `
		INSERT INTO contributors (
			project_id, id, email, status, result,
			date_added, date_assigned, date_completed, date_archived,
			archived, sort_key
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	sortKey := 0
	write := func(list []contributor.Contributor, archived int) error {
		for _, c := range list {
			sortKey++
			if _, err := tx.ExecContext(ctx, insert,
				projectID, c.ID, c.Email, c.Status, c.Result,
				c.DateAdded, c.DateAssigned, c.DateCompleted, c.DateArchived,
				archived, sortKey,
			); err != nil {
				if isUniqueViolation(err) {
					return repository.ErrConflict
				}
				return fmt.Errorf("failed to insert contributor: %w", err)
			}
		}
		return nil
	}

	if err := write(snap.Active, 0); err != nil {
		return err
	}
	if err := write(snap.Archived, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit roster: %w", err)
	}

	return nil
}

// DeleteAll removes every contributor in a project
func (r *ContributorRepository) DeleteAll(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM contributors WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to delete contributors: %w", err)
	}
	return nil
}
