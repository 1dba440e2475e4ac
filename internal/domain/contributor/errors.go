package contributor

import "errors"

var (
	// ErrContributorNotFound indicates the id is absent from the required partition.
	ErrContributorNotFound = errors.New("contributor not found")
	// ErrDuplicateEmail indicates the email already belongs to another record.
	ErrDuplicateEmail = errors.New("contributor with this email already exists")
	// ErrConflictingResult indicates the email already carries a different result.
	ErrConflictingResult = errors.New("email already has conflicting result")
	// ErrInvalidEmail indicates the email fails the format check.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidInput indicates invalid input for contributor operations.
	ErrInvalidInput = errors.New("invalid contributor input")
)
