package repositories

import "errors"

var (
	// ErrNotFound indicates a requested record is missing
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists
	ErrAlreadyExists = errors.New("record already exists")
)
