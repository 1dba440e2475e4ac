package contributor

import (
	"context"
	"fmt"
)

// sampleSnapshot is the fixed dataset a fresh installation is seeded with.
// Kept stable for demos and tests.
func sampleSnapshot() Snapshot {
	return Snapshot{
		Active: []Contributor{
			{
				ID:           "CB001",
				Email:        "alice.smith@example.com",
				Status:       StatusAssigned,
				DateAdded:    "2025-08-29",
				DateAssigned: "2025-08-29",
			},
			{
				ID:            "CB002",
				Email:         "bob.jones@example.com",
				Status:        StatusAssigned,
				Result:        ResultPassed,
				DateAdded:     "2025-08-28",
				DateAssigned:  "2025-08-28",
				DateCompleted: "2025-08-29",
			},
			{
				ID:            "CB003",
				Email:         "charlie.wilson@example.com",
				Status:        StatusAssigned,
				Result:        ResultFailed,
				DateAdded:     "2025-08-27",
				DateAssigned:  "2025-08-27",
				DateCompleted: "2025-08-28",
			},
			{
				ID:        "CB004",
				Email:     "diana.clark@example.com",
				Status:    StatusPending,
				DateAdded: "2025-08-29",
			},
		},
		Archived: []Contributor{
			{
				ID:            "CB005",
				Email:         "archived.user@example.com",
				Status:        StatusAssigned,
				Result:        ResultPassed,
				DateAdded:     "2025-08-25",
				DateAssigned:  "2025-08-25",
				DateCompleted: "2025-08-26",
				DateArchived:  "2025-08-26",
			},
		},
	}
}

// SeedSample replaces the project's record set with the sample dataset and
// persists it immediately.
func (s *Service) SeedSample(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ReplaceAll(ctx, projectID, sampleSnapshot()); err != nil {
		return fmt.Errorf("seeding sample data: %w", err)
	}
	return nil
}
