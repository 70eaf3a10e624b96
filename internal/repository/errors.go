package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrRangeConflict is returned when a booking insert or extension
	// loses the transactional overlap re-check.
	ErrRangeConflict = errors.New("requested range conflicts with an existing booking")
)
