package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateUsername is returned when a username collides with an existing one, ignoring case.
	ErrDuplicateUsername = errors.New("duplicate username")
	// ErrDuplicateEmail is returned when an email collides with an existing one, ignoring case.
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrInvalidID is returned for identifiers that are not 24-character hex object ids.
	ErrInvalidID = errors.New("invalid document id")
)
