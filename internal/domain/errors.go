package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an entity ID is malformed or non-positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidRatingType is returned when a rating type is not part of the
	// closed rating enumeration.
	ErrInvalidRatingType = errors.New("invalid rating type")

	// ErrEmptyQueue is returned when a session queue operation is attempted
	// on an exhausted queue.
	ErrEmptyQueue = errors.New("session queue is exhausted")
)
