package contributor

import "context"

// Repository provides persistence for contributor records. Implementations
// report absence with repository.ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, projectID string, c *Contributor) error
	Update(ctx context.Context, projectID string, c *Contributor) error
	Find(ctx context.Context, projectID, id string) (*Contributor, Partition, error)
	FindByEmail(ctx context.Context, projectID, email string) (*Contributor, Partition, error)
	List(ctx context.Context, projectID string, p Partition) ([]Contributor, error)
	Move(ctx context.Context, projectID, id string, to Partition, dateArchived string) error
	Delete(ctx context.Context, projectID, id string) error
	Count(ctx context.Context, projectID string) (int, error)
	ExistsID(ctx context.Context, projectID, id string) (bool, error)
	ReplaceAll(ctx context.Context, projectID string, snap Snapshot) error
	DeleteAll(ctx context.Context, projectID string) error
}
