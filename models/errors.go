package models

import "errors"

var (
	// ErrValidation is returned when a required field is empty or a selector is missing.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidPriority is returned for priorities outside 1..3.
	ErrInvalidPriority = errors.New("invalid priority: must be one of 1, 2 or 3")
	// ErrInvalidDate is returned when a due date cannot be parsed or does not exist.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidTaskData is returned when a stored task mapping is missing a key.
	ErrInvalidTaskData = errors.New("invalid task data")
)
