package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/domain/project"
	"github.com/rostralabs/rostra/internal/repository"
	"github.com/rostralabs/rostra/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Bootstrap_FreshInstall(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	roster := &mocks.Roster{}

	repo.On("List", ctx).Return([]project.Project{}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	roster.On("SeedSample", ctx, mock.Anything).Return(nil)
	repo.On("SetCurrent", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, roster, nil)
	proj, err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	require.Equal(t, "Default", proj.Name)
	require.NotEmpty(t, proj.ID)
	repo.AssertExpectations(t)
	roster.AssertExpectations(t)
}

func TestService_Bootstrap_KeepsValidSelection(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	roster := &mocks.Roster{}

	list := []project.Project{
		{ID: "p1", Name: "First", CreatedAt: time.Now()},
		{ID: "p2", Name: "Second", CreatedAt: time.Now()},
	}
	repo.On("List", ctx).Return(list, nil)
	repo.On("Current", ctx).Return("p2", nil)

	svc := project.NewService(repo, roster, nil)
	proj, err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	require.Equal(t, "p2", proj.ID)
	repo.AssertNotCalled(t, "SetCurrent", mock.Anything, mock.Anything)
	roster.AssertNotCalled(t, "SeedSample", mock.Anything, mock.Anything)
}

func TestService_Bootstrap_RepairsDanglingSelection(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	roster := &mocks.Roster{}

	list := []project.Project{{ID: "p1", Name: "First", CreatedAt: time.Now()}}
	repo.On("List", ctx).Return(list, nil)
	repo.On("Current", ctx).Return("deleted-id", nil)
	repo.On("SetCurrent", ctx, "p1").Return(nil)

	svc := project.NewService(repo, roster, nil)
	proj, err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	require.Equal(t, "p1", proj.ID)
	repo.AssertExpectations(t)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}

	repo.On("GetByName", ctx, "Roster Q3").Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("SetCurrent", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, &mocks.Roster{}, nil)
	proj, err := svc.Create(ctx, "  Roster Q3  ")
	require.NoError(t, err)
	require.Equal(t, "Roster Q3", proj.Name)
	repo.AssertExpectations(t)
}

func TestService_Create_Errors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("GetByName", ctx, "Taken").Return(&project.Project{ID: "p1", Name: "Taken"}, nil)

	svc := project.NewService(repo, &mocks.Roster{}, nil)

	_, err := svc.Create(ctx, "   ")
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, "Taken")
	require.ErrorIs(t, err, project.ErrProjectExists)
}

func TestService_Switch(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}

	repo.On("GetByName", ctx, "Second").Return(&project.Project{ID: "p2", Name: "Second"}, nil)
	repo.On("GetByName", ctx, "Missing").Return(nil, repository.ErrNotFound)
	repo.On("SetCurrent", ctx, "p2").Return(nil)

	svc := project.NewService(repo, &mocks.Roster{}, nil)

	proj, err := svc.Switch(ctx, "Second")
	require.NoError(t, err)
	require.Equal(t, "p2", proj.ID)

	_, err = svc.Switch(ctx, "Missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestService_Current(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}

	repo.On("Current", ctx).Return("p1", nil).Once()
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", Name: "First"}, nil)

	svc := project.NewService(repo, &mocks.Roster{}, nil)
	proj, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "First", proj.Name)

	repo.On("Current", ctx).Return("", repository.ErrNotFound).Once()
	_, err = svc.Current(ctx)
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	roster := &mocks.Roster{}

	list := []project.Project{
		{ID: "p1", Name: "First"},
		{ID: "p2", Name: "Second"},
	}
	repo.On("List", ctx).Return(list, nil)
	repo.On("GetByName", ctx, "Second").Return(&list[1], nil)
	roster.On("DeleteAll", ctx, "p2").Return(nil)
	repo.On("Delete", ctx, "p2").Return(nil)
	repo.On("Current", ctx).Return("p2", nil)
	repo.On("SetCurrent", ctx, "p1").Return(nil)

	svc := project.NewService(repo, roster, nil)
	current, err := svc.Delete(ctx, "Second")
	require.NoError(t, err)
	require.Equal(t, "p1", current.ID)
	roster.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_Delete_KeepsUnrelatedSelection(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	roster := &mocks.Roster{}

	list := []project.Project{
		{ID: "p1", Name: "First"},
		{ID: "p2", Name: "Second"},
	}
	repo.On("List", ctx).Return(list, nil)
	repo.On("GetByName", ctx, "Second").Return(&list[1], nil)
	roster.On("DeleteAll", ctx, "p2").Return(nil)
	repo.On("Delete", ctx, "p2").Return(nil)
	repo.On("Current", ctx).Return("p1", nil)

	svc := project.NewService(repo, roster, nil)
	current, err := svc.Delete(ctx, "Second")
	require.NoError(t, err)
	require.Equal(t, "p1", current.ID)
	repo.AssertNotCalled(t, "SetCurrent", mock.Anything, mock.Anything)
}

func TestService_Delete_LastProject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return([]project.Project{{ID: "p1", Name: "Only"}}, nil)

	svc := project.NewService(repo, &mocks.Roster{}, nil)
	_, err := svc.Delete(ctx, "Only")
	require.ErrorIs(t, err, project.ErrLastProject)
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	roster := &mocks.Roster{}

	snap := contributor.Snapshot{
		Active: []contributor.Contributor{{ID: "CB001", Email: "a@x.com", Status: contributor.StatusPending}},
	}
	repo.On("GetByName", ctx, "Imported").Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("SetCurrent", ctx, mock.Anything).Return(nil)
	roster.On("ReplaceSnapshot", ctx, mock.Anything, snap).Return(nil)

	svc := project.NewService(repo, roster, nil)
	proj, err := svc.Import(ctx, "Imported", snap)
	require.NoError(t, err)
	require.Equal(t, "Imported", proj.Name)
	roster.AssertExpectations(t)
}

func TestService_ImportShared_ReusesSameName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	roster := &mocks.Roster{}

	list := []project.Project{{ID: "p1", Name: "Team Roster"}}
	repo.On("List", ctx).Return(list, nil)
	repo.On("SetCurrent", ctx, "p1").Return(nil)

	svc := project.NewService(repo, roster, nil)

	// Name comparison is trimmed and case-insensitive; the existing roster
	// is kept and the payload discarded
	proj, err := svc.ImportShared(ctx, "  team roster ", contributor.Snapshot{
		Active: []contributor.Contributor{{ID: "CB001", Email: "a@x.com", Status: contributor.StatusPending}},
	})
	require.NoError(t, err)
	require.Equal(t, "p1", proj.ID)
	roster.AssertNotCalled(t, "ReplaceSnapshot", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ImportShared_DefaultName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	roster := &mocks.Roster{}

	repo.On("List", ctx).Return([]project.Project{}, nil)
	repo.On("GetByName", ctx, "Shared Project").Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("SetCurrent", ctx, mock.Anything).Return(nil)
	roster.On("ReplaceSnapshot", ctx, mock.Anything, mock.Anything).Return(nil)

	svc := project.NewService(repo, roster, nil)
	proj, err := svc.ImportShared(ctx, "   ", contributor.Snapshot{})
	require.NoError(t, err)
	require.Equal(t, "Shared Project", proj.Name)
}
