package project

import (
	"context"

	"github.com/rostralabs/rostra/internal/domain/contributor"
)

// Repository provides persistence for project metadata and the current
// selection. Implementations report absence with repository.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	GetByName(ctx context.Context, name string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Delete(ctx context.Context, id string) error
	Current(ctx context.Context) (string, error)
	SetCurrent(ctx context.Context, id string) error
}

// Roster is the slice of the contributor store the project service drives
// when whole record sets are swapped, seeded, or destroyed.
type Roster interface {
	ReplaceSnapshot(ctx context.Context, projectID string, snap contributor.Snapshot) error
	DeleteAll(ctx context.Context, projectID string) error
	SeedSample(ctx context.Context, projectID string) error
}
