package task

import "errors"

// Sentinel errors for task operations.
var (
	// ErrTaskNotFound is returned when no task with the id is owned by the caller.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTitleRequired is returned when a task is created without a title.
	ErrTitleRequired = errors.New("title is required")

	// ErrInvalidTaskID is returned when a task id is not a positive integer.
	ErrInvalidTaskID = errors.New("invalid task id")

	// ErrOwnerRequired is returned when a request carries no owner identity.
	ErrOwnerRequired = errors.New("owner is required")
)
