package srs

import "errors"

// Sentinel errors for the srs package. Check with errors.Is.
var (
	// ErrInvalidRating is returned when a rating is outside [1, 5].
	// The rating is never clamped; the caller gets the state back unchanged.
	ErrInvalidRating = errors.New("srs: rating must be between 1 and 5")

	// ErrInvariantViolation is returned when a card enters Schedule with a
	// difficulty below MinEaseFactor. That can only happen if the persisted
	// record was corrupted, so it fails loudly instead of repairing.
	ErrInvariantViolation = errors.New("srs: difficulty below minimum ease factor")
)
