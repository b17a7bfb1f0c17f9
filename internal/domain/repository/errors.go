package repository

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrAssigneeNotMember is returned when a task write names an
	// assignee or reviewer without authority over the task's board.
	ErrAssigneeNotMember = errors.New("assigned user has no authority over board")

	// ErrDuplicateEmail is returned when creating a user with an email
	// that is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)
