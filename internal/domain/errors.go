package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidRequest indicates a request that will never succeed as
	// submitted. Callers should not retry it unchanged.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates the actor has no rights over the target entity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidTransition indicates a disallowed or stale status change.
	// The targeted row is left untouched.
	ErrInvalidTransition = errors.New("invalid transition")
)
