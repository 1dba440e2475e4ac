package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/repository"
)

// Service manages the project list, the current selection, and wholesale
// roster swaps on import and deletion.
type Service struct {
	repo   Repository
	roster Roster
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, roster Roster, logger *slog.Logger) *Service {
	return &Service{repo: repo, roster: roster, logger: logger}
}

// Bootstrap ensures a usable state at startup: a fresh installation gets a
// "Default" project seeded with the sample dataset; otherwise the persisted
// selection is validated and repaired if it points nowhere.
func (s *Service) Bootstrap(ctx context.Context) (*Project, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	if len(list) == 0 {
		proj := &Project{
			ID:        uuid.NewString(),
			Name:      "Default",
			CreatedAt: time.Now(),
		}
		if err := s.repo.Create(ctx, proj); err != nil {
			return nil, fmt.Errorf("creating default project: %w", err)
		}
		if err := s.roster.SeedSample(ctx, proj.ID); err != nil {
			return nil, err
		}
		if err := s.repo.SetCurrent(ctx, proj.ID); err != nil {
			return nil, fmt.Errorf("selecting default project: %w", err)
		}
		if s.logger != nil {
			s.logger.Info("seeded default project", "project", proj.ID)
		}
		return proj, nil
	}

	currentID, err := s.repo.Current(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading current project: %w", err)
	}
	for i := range list {
		if list[i].ID == currentID {
			return &list[i], nil
		}
	}

	if err := s.repo.SetCurrent(ctx, list[0].ID); err != nil {
		return nil, fmt.Errorf("selecting project: %w", err)
	}
	return &list[0], nil
}

// Create adds a new empty project with a unique name and selects it.
func (s *Service) Create(ctx context.Context, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, ErrProjectExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking project name: %w", err)
	}

	proj := &Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	if err := s.repo.SetCurrent(ctx, proj.ID); err != nil {
		return nil, fmt.Errorf("selecting project: %w", err)
	}
	return proj, nil
}

// List returns all projects in insertion order.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// Current returns the selected project.
func (s *Service) Current(ctx context.Context) (*Project, error) {
	id, err := s.repo.Current(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading current project: %w", err)
	}
	return s.Get(ctx, id)
}

// Get fetches a project by id.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Switch selects a project by name.
func (s *Service) Switch(ctx context.Context, name string) (*Project, error) {
	proj, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if err := s.repo.SetCurrent(ctx, proj.ID); err != nil {
		return nil, fmt.Errorf("selecting project: %w", err)
	}
	return proj, nil
}

// Delete destroys a project and its roster. The last remaining project cannot
// be deleted; if the deleted project was selected, the first remaining one is.
func (s *Service) Delete(ctx context.Context, name string) (*Project, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if len(list) <= 1 {
		return nil, ErrLastProject
	}

	proj, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	if err := s.roster.DeleteAll(ctx, proj.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, proj.ID); err != nil {
		return nil, fmt.Errorf("deleting project: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("project deleted", "project", proj.ID, "name", proj.Name)
	}

	currentID, err := s.repo.Current(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading current project: %w", err)
	}
	for i := range list {
		if list[i].ID == proj.ID {
			continue
		}
		if list[i].ID == currentID {
			return &list[i], nil
		}
	}

	for i := range list {
		if list[i].ID != proj.ID {
			if err := s.repo.SetCurrent(ctx, list[i].ID); err != nil {
				return nil, fmt.Errorf("selecting project: %w", err)
			}
			return &list[i], nil
		}
	}
	return nil, ErrProjectNotFound
}

// Import creates a new project holding the given snapshot and selects it.
// The name must not collide with an existing project.
func (s *Service) Import(ctx context.Context, name string, snap contributor.Snapshot) (*Project, error) {
	proj, err := s.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.roster.ReplaceSnapshot(ctx, proj.ID, snap); err != nil {
		return nil, err
	}
	return proj, nil
}

// ImportShared loads a shared snapshot. When a project with the same name
// already exists (trimmed, case-insensitive), it is selected as-is and the
// payload is discarded; otherwise a new project is created from the snapshot.
func (s *Service) ImportShared(ctx context.Context, name string, snap contributor.Snapshot) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Shared Project"
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	for i := range list {
		if strings.EqualFold(strings.TrimSpace(list[i].Name), name) {
			if err := s.repo.SetCurrent(ctx, list[i].ID); err != nil {
				return nil, fmt.Errorf("selecting project: %w", err)
			}
			return &list[i], nil
		}
	}

	return s.Import(ctx, name, snap)
}
