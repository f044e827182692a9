package store

import "errors"

var (
	// ErrNotFound is returned by Get for an unknown id.
	ErrNotFound = errors.New("registration not found")
	// ErrDuplicate is returned by Save when the id is already stored.
	ErrDuplicate = errors.New("registration already exists")
	// ErrUnsupportedURL is returned by Open for an unknown scheme.
	ErrUnsupportedURL = errors.New("unsupported database url")
)
