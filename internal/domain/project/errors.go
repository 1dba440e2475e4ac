package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectExists indicates a project with that name already exists.
	ErrProjectExists = errors.New("project already exists")
	// ErrLastProject indicates the last remaining project cannot be deleted.
	ErrLastProject = errors.New("cannot delete the last project")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
)
