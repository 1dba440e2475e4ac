package ingest

import "errors"

var (
	// ErrEmptyInput indicates bulk text with no non-blank lines.
	ErrEmptyInput = errors.New("no entries to process")
	// ErrEmptyCSV indicates CSV input without a header row plus one data row.
	ErrEmptyCSV = errors.New("csv must have a header row and at least one data row")
	// ErrMissingEmailColumn indicates no CSV header names an email column.
	ErrMissingEmailColumn = errors.New("csv must have an email column")
)

// Per-candidate classification messages, surfaced verbatim in previews and
// batch summaries.
const (
	MsgInvalidEmail      = "Invalid email format"
	MsgDuplicateEmail    = "Duplicate email"
	MsgConflictingResult = "Email already has conflicting result"
)
