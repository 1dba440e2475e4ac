package mocks

import (
	"context"

	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ContributorRepository is a mock for contributor.Repository.
type ContributorRepository struct {
	mock.Mock
}

func (m *ContributorRepository) Insert(ctx context.Context, projectID string, c *contributor.Contributor) error {
	args := m.Called(ctx, projectID, c)
	return args.Error(0)
}

func (m *ContributorRepository) Update(ctx context.Context, projectID string, c *contributor.Contributor) error {
	args := m.Called(ctx, projectID, c)
	return args.Error(0)
}

func (m *ContributorRepository) Find(ctx context.Context, projectID, id string) (*contributor.Contributor, contributor.Partition, error) {
	args := m.Called(ctx, projectID, id)
	if c, ok := args.Get(0).(*contributor.Contributor); ok {
		return c, args.Get(1).(contributor.Partition), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *ContributorRepository) FindByEmail(ctx context.Context, projectID, email string) (*contributor.Contributor, contributor.Partition, error) {
	args := m.Called(ctx, projectID, email)
	if c, ok := args.Get(0).(*contributor.Contributor); ok {
		return c, args.Get(1).(contributor.Partition), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *ContributorRepository) List(ctx context.Context, projectID string, p contributor.Partition) ([]contributor.Contributor, error) {
	args := m.Called(ctx, projectID, p)
	if list, ok := args.Get(0).([]contributor.Contributor); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContributorRepository) Move(ctx context.Context, projectID, id string, to contributor.Partition, dateArchived string) error {
	args := m.Called(ctx, projectID, id, to, dateArchived)
	return args.Error(0)
}

func (m *ContributorRepository) Delete(ctx context.Context, projectID, id string) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

func (m *ContributorRepository) Count(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *ContributorRepository) ExistsID(ctx context.Context, projectID, id string) (bool, error) {
	args := m.Called(ctx, projectID, id)
	return args.Bool(0), args.Error(1)
}

func (m *ContributorRepository) ReplaceAll(ctx context.Context, projectID string, snap contributor.Snapshot) error {
	args := m.Called(ctx, projectID, snap)
	return args.Error(0)
}

func (m *ContributorRepository) DeleteAll(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	args := m.Called(ctx, name)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) Current(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *ProjectRepository) SetCurrent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Roster is a mock for project.Roster.
type Roster struct {
	mock.Mock
}

func (m *Roster) ReplaceSnapshot(ctx context.Context, projectID string, snap contributor.Snapshot) error {
	args := m.Called(ctx, projectID, snap)
	return args.Error(0)
}

func (m *Roster) DeleteAll(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *Roster) SeedSample(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}
