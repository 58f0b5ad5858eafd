package repositories

import "errors"

// Sentinel errors surfaced to the service layer. Check with errors.Is.
var (
	ErrFlashcardNotFound   = errors.New("flashcard not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionAlreadyEnded = errors.New("session already ended")
)
