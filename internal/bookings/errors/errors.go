package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrTimeConflict = errors.New("booking time conflicts with existing booking")

	// ErrNoRowsChanged means a conditional status update matched nothing.
	ErrNoRowsChanged = errors.New("booking status was not changed")
)
