package contributor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rostralabs/rostra/internal/repository"
)

// Service is the contributor store for a project's active and archived
// partitions. Every mutation persists through the repository before returning.
// Mutations serialize through a single mutex so the duplicate check and the
// following write of Add never interleave.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewService creates a new contributor service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) today() string {
	return s.now().Format(DateLayout)
}

// Add records a new contributor, or folds a result-bearing target into an
// existing record with the same email when that record has no conflicting
// result. Rejecting conflicts return ErrDuplicateEmail or ErrConflictingResult
// and leave the store unchanged.
func (s *Service) Add(ctx context.Context, projectID, email string, target Target) (*Contributor, error) {
	if !target.Valid() {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, _, err := s.repo.FindByEmail(ctx, projectID, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up email: %w", err)
	}

	switch Classify(existing, target) {
	case ConflictDuplicate:
		return nil, ErrDuplicateEmail
	case ConflictResult:
		return nil, ErrConflictingResult
	case ConflictUpdate:
		existing.Result = target.Result()
		existing.Status = StatusAssigned
		if existing.DateAssigned == "" {
			existing.DateAssigned = s.today()
		}
		existing.DateCompleted = s.today()
		if err := s.repo.Update(ctx, projectID, existing); err != nil {
			return nil, fmt.Errorf("updating contributor: %w", err)
		}
		return existing, nil
	}

	id, err := s.generateID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	c := &Contributor{
		ID:        id,
		Email:     email,
		Status:    StatusPending,
		DateAdded: today,
	}
	if target != TargetPending {
		c.Status = StatusAssigned
		c.DateAssigned = today
	}
	if target.IsResult() {
		c.Result = target.Result()
		c.DateCompleted = today
	}

	if err := s.repo.Insert(ctx, projectID, c); err != nil {
		return nil, fmt.Errorf("creating contributor: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("contributor added", "project", projectID, "id", c.ID, "target", target)
	}
	return c, nil
}

// UpdateStatus mutates one stage of an active record. Demoting the assignment
// stage to pending wipes the assignment date, result, and completion date.
// Setting a result promotes the record to assigned, stamping the assignment
// date if unset, and stamps the completion date; clearing a result clears the
// completion date only. Archived records are not mutable in place.
func (s *Service) UpdateStatus(ctx context.Context, projectID, id string, kind UpdateKind, value string) (*Contributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, partition, err := s.repo.Find(ctx, projectID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContributorNotFound
		}
		return nil, fmt.Errorf("loading contributor: %w", err)
	}
	if partition != PartitionActive {
		return nil, ErrContributorNotFound
	}

	switch kind {
	case UpdateAssignment:
		status := Status(value)
		if status != StatusPending && status != StatusAssigned {
			return nil, ErrInvalidInput
		}
		if status == StatusAssigned && c.Status == StatusPending {
			c.DateAssigned = s.today()
		}
		if status == StatusPending {
			c.DateAssigned = ""
			c.Result = ResultNone
			c.DateCompleted = ""
		}
		c.Status = status
	case UpdateResult:
		result := Result(value)
		if result != ResultNone && result != ResultPassed && result != ResultFailed {
			return nil, ErrInvalidInput
		}
		previous := c.Result
		c.Result = result
		if result != ResultNone {
			if c.DateAssigned == "" {
				c.Status = StatusAssigned
				c.DateAssigned = s.today()
			}
			c.DateCompleted = s.today()
		} else if previous != ResultNone {
			c.DateCompleted = ""
		}
	default:
		return nil, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, projectID, c); err != nil {
		return nil, fmt.Errorf("updating contributor: %w", err)
	}
	return c, nil
}

// Archive moves an active record to the archived partition, stamping the
// archive date. All other fields are preserved verbatim.
func (s *Service) Archive(ctx context.Context, projectID, id string) (*Contributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, partition, err := s.repo.Find(ctx, projectID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContributorNotFound
		}
		return nil, fmt.Errorf("loading contributor: %w", err)
	}
	if partition != PartitionActive {
		return nil, ErrContributorNotFound
	}

	c.DateArchived = s.today()
	if err := s.repo.Move(ctx, projectID, id, PartitionArchived, c.DateArchived); err != nil {
		return nil, fmt.Errorf("archiving contributor: %w", err)
	}
	return c, nil
}

// Restore moves an archived record back to the active partition, clearing the
// archive date.
func (s *Service) Restore(ctx context.Context, projectID, id string) (*Contributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, partition, err := s.repo.Find(ctx, projectID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContributorNotFound
		}
		return nil, fmt.Errorf("loading contributor: %w", err)
	}
	if partition != PartitionArchived {
		return nil, ErrContributorNotFound
	}

	c.DateArchived = ""
	if err := s.repo.Move(ctx, projectID, id, PartitionActive, ""); err != nil {
		return nil, fmt.Errorf("restoring contributor: %w", err)
	}
	return c, nil
}

// Remove permanently deletes a record from whichever partition holds it.
// An absent id is not an error.
func (s *Service) Remove(ctx context.Context, projectID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Delete(ctx, projectID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("removing contributor: %w", err)
	}
	return nil
}

// FindByEmail returns the record matching the email case-insensitively,
// searching both partitions.
func (s *Service) FindByEmail(ctx context.Context, projectID, email string) (*Contributor, error) {
	c, _, err := s.repo.FindByEmail(ctx, projectID, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContributorNotFound
		}
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	return c, nil
}

// List returns one partition in list order, filtered by opts.
func (s *Service) List(ctx context.Context, projectID string, partition Partition, opts ListOptions) ([]Contributor, error) {
	all, err := s.repo.List(ctx, projectID, partition)
	if err != nil {
		return nil, fmt.Errorf("listing contributors: %w", err)
	}
	if opts == (ListOptions{}) {
		return all, nil
	}
	filtered := make([]Contributor, 0, len(all))
	for _, c := range all {
		if opts.matches(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Snapshot returns the project's full record set.
func (s *Service) Snapshot(ctx context.Context, projectID string) (Snapshot, error) {
	active, err := s.repo.List(ctx, projectID, PartitionActive)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing active contributors: %w", err)
	}
	archived, err := s.repo.List(ctx, projectID, PartitionArchived)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing archived contributors: %w", err)
	}
	return Snapshot{Active: active, Archived: archived}, nil
}

// ReplaceSnapshot swaps the project's full record set in one transaction.
func (s *Service) ReplaceSnapshot(ctx context.Context, projectID string, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ReplaceAll(ctx, projectID, snap); err != nil {
		return fmt.Errorf("replacing contributors: %w", err)
	}
	return nil
}

// DeleteAll clears the project's record set.
func (s *Service) DeleteAll(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteAll(ctx, projectID); err != nil {
		return fmt.Errorf("clearing contributors: %w", err)
	}
	return nil
}

// GenerateID produces the lowest-numbered unused id, searching upward from
// count(active)+count(archived)+1 past any collisions.
func (s *Service) GenerateID(ctx context.Context, projectID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateID(ctx, projectID)
}

func (s *Service) generateID(ctx context.Context, projectID string) (string, error) {
	count, err := s.repo.Count(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("counting contributors: %w", err)
	}
	for n := count + 1; ; n++ {
		id := fmt.Sprintf("%s%03d", IDPrefix, n)
		exists, err := s.repo.ExistsID(ctx, projectID, id)
		if err != nil {
			return "", fmt.Errorf("checking id: %w", err)
		}
		if !exists {
			return id, nil
		}
	}
}
