package repositories

import "errors"

var (
	// ErrNotFound is wrapped by repositories when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned when the commit-time stock check
	// fails for a line; the whole placement is rolled back.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrReferentialConflict is returned when a coffee cannot be removed
	// because order lines referencing it could not be cleared first.
	ErrReferentialConflict = errors.New("coffee is referenced by existing order lines")
)
