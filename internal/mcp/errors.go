package mcp

import (
	"errors"
	"fmt"

	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/domain/ingest"
	"github.com/rostralabs/rostra/internal/domain/project"
	"github.com/rostralabs/rostra/internal/share"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, contributor.ErrContributorNotFound):
		return &APIError{Code: "CONTRIBUTOR_NOT_FOUND", Message: "contributor not found", RecoveryHint: "Check the ID with list_contributors"}
	case errors.Is(err, contributor.ErrDuplicateEmail):
		return &APIError{Code: "DUPLICATE_EMAIL", Message: "Duplicate email"}
	case errors.Is(err, contributor.ErrConflictingResult):
		return &APIError{Code: "CONFLICTING_RESULT", Message: "Email already has conflicting result"}
	case errors.Is(err, contributor.ErrInvalidEmail):
		return &APIError{Code: "INVALID_EMAIL", Message: "Invalid email format"}
	case errors.Is(err, contributor.ErrInvalidInput), errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid input"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the name with list_projects"}
	case errors.Is(err, project.ErrProjectExists):
		return &APIError{Code: "PROJECT_EXISTS", Message: "a project with this name already exists"}
	case errors.Is(err, project.ErrLastProject):
		return &APIError{Code: "LAST_PROJECT", Message: "cannot delete the last project"}
	case errors.Is(err, ingest.ErrEmptyInput):
		return &APIError{Code: "EMPTY_INPUT", Message: "no email addresses found in input"}
	case errors.Is(err, ingest.ErrEmptyCSV):
		return &APIError{Code: "EMPTY_CSV", Message: "CSV contains no data rows"}
	case errors.Is(err, ingest.ErrMissingEmailColumn):
		return &APIError{Code: "MISSING_EMAIL_COLUMN", Message: "no email column found in CSV header"}
	case errors.Is(err, share.ErrMalformedPayload):
		return &APIError{Code: "MALFORMED_PAYLOAD", Message: "share payload could not be decoded"}
	case errors.Is(err, share.ErrMalformedImport):
		return &APIError{Code: "MALFORMED_IMPORT", Message: "import document could not be parsed"}
	default:
		return nil
	}
}

// mapErr converts a domain error to its API form, passing through errors
// that have no mapping.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if api := MapError(err); api != nil {
		return api
	}
	return err
}
