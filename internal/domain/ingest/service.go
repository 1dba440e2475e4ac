package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rostralabs/rostra/internal/domain/contributor"
)

// Store is the slice of the contributor store the ingestion engine needs:
// an email lookup for classification and the add operation for apply.
type Store interface {
	FindByEmail(ctx context.Context, projectID, email string) (*contributor.Contributor, error)
	Add(ctx context.Context, projectID, email string, target contributor.Target) (*contributor.Contributor, error)
}

// Service drives a batch through parse, classify, and apply.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new ingestion service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ParseBulk splits newline-delimited input, one email per line, and classifies
// each non-blank line against the current store state. Input with no non-blank
// lines is a structural error.
func (s *Service) ParseBulk(ctx context.Context, projectID, raw string, target contributor.Target) ([]Candidate, error) {
	var candidates []Candidate
	for i, line := range strings.Split(raw, "\n") {
		email := strings.TrimSpace(line)
		if email == "" {
			continue
		}
		c, err := s.classify(ctx, projectID, i+1, email, target)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyInput
	}
	return candidates, nil
}

// ParseCSV locates the email column in the header row (first column whose
// lower-cased name contains "email"), comma-splits the remaining non-blank
// lines positionally, and classifies each row with a non-empty email cell.
// Quoted fields are not supported. Missing header, missing data rows, or a
// missing email column are structural errors producing no candidates.
func (s *Service) ParseCSV(ctx context.Context, projectID, raw string, target contributor.Target) ([]Candidate, error) {
	lines := strings.Split(raw, "\n")

	headerIdx := -1
	rows := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headerIdx == -1 {
			headerIdx = i
			continue
		}
		rows++
	}
	if headerIdx == -1 || rows == 0 {
		return nil, ErrEmptyCSV
	}

	emailIdx := -1
	for i, col := range strings.Split(lines[headerIdx], ",") {
		if strings.Contains(strings.ToLower(strings.TrimSpace(col)), "email") {
			emailIdx = i
			break
		}
	}
	if emailIdx == -1 {
		return nil, ErrMissingEmailColumn
	}

	var candidates []Candidate
	for i := headerIdx + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		parts := strings.Split(lines[i], ",")
		email := ""
		if emailIdx < len(parts) {
			email = strings.TrimSpace(parts[emailIdx])
		}
		if email == "" {
			continue
		}
		c, err := s.classify(ctx, projectID, i+1, email, target)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// classify checks the email format, then checks the candidate against the
// current store state. Entries are not checked against each other: a doubled
// new email classifies valid twice and the second add surfaces as a per-line
// failure during apply.
func (s *Service) classify(ctx context.Context, projectID string, lineNo int, email string, target contributor.Target) (Candidate, error) {
	c := Candidate{LineNumber: lineNo, Email: email}
	if contributor.IsValidEmail(email) {
		c.Valid = true
	} else {
		c.Error = MsgInvalidEmail
	}

	existing, err := s.store.FindByEmail(ctx, projectID, email)
	if err != nil && !errors.Is(err, contributor.ErrContributorNotFound) {
		return Candidate{}, err
	}

	switch contributor.Classify(existing, target) {
	case contributor.ConflictDuplicate:
		c.Duplicate = true
		c.Valid = false
		c.Error = MsgDuplicateEmail
	case contributor.ConflictResult:
		c.Duplicate = true
		c.Valid = false
		c.Error = MsgConflictingResult
	}
	return c, nil
}

// Apply adds every valid, non-duplicate candidate sequentially in input order.
// Individual failures are collected and never abort the batch. progress, when
// non-nil, is called after each processed entry.
func (s *Service) Apply(ctx context.Context, projectID string, candidates []Candidate, target contributor.Target, progress func(done, total int)) Result {
	var pending []Candidate
	var res Result
	for _, c := range candidates {
		if c.Duplicate {
			res.Duplicates++
			continue
		}
		if c.Valid {
			pending = append(pending, c)
		}
	}

	for i, c := range pending {
		if _, err := s.store.Add(ctx, projectID, c.Email, target); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("Line %d: %s", c.LineNumber, applyMessage(err)))
		} else {
			res.Succeeded++
		}
		if progress != nil {
			progress(i+1, len(pending))
		}
	}

	if s.logger != nil {
		s.logger.Info("batch applied",
			"project", projectID,
			"succeeded", res.Succeeded,
			"duplicates", res.Duplicates,
			"failed", res.Failed,
		)
	}
	return res
}

func applyMessage(err error) string {
	switch {
	case errors.Is(err, contributor.ErrDuplicateEmail):
		return MsgDuplicateEmail
	case errors.Is(err, contributor.ErrConflictingResult):
		return MsgConflictingResult
	default:
		return err.Error()
	}
}
