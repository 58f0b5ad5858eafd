package models

import (
	"time"

	"github.com/mycelium/backend/internal/srs"
)

// ReviewRequest is the body of POST /flashcards/{id}/review.
type ReviewRequest struct {
	Rating         int    `json:"rating"`
	ResponseTimeMS *int64 `json:"response_time_ms,omitempty"`
}

// ReviewResponse carries the card's schedule after a graded review.
type ReviewResponse struct {
	FlashcardID string    `json:"flashcard_id"`
	Schedule    srs.State `json:"schedule"`
}

// CreateFlashcardRequest is the body of POST /flashcards.
type CreateFlashcardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// DueFlashcard is the trimmed card view returned by the due-cards endpoint.
// The back is included so clients can reveal the answer without a second
// round trip.
type DueFlashcard struct {
	ID          string  `json:"id"`
	Front       string  `json:"front"`
	Back        string  `json:"back"`
	Difficulty  float64 `json:"difficulty"`
	ReviewCount int     `json:"review_count"`
}

// ScheduleResponse is the forward-looking review load returned by the
// schedule endpoint.
type ScheduleResponse struct {
	Schedule          []srs.DayLoad `json:"schedule"`
	TotalDue          int           `json:"total_due"`
	NewCardsAvailable int           `json:"new_cards_available"`
}

// StartSessionRequest is the body of POST /sessions.
type StartSessionRequest struct {
	SessionType string `json:"session_type"`
}

// StartSessionResponse is returned when a session is opened.
type StartSessionResponse struct {
	SessionID string    `json:"session_id"`
	StartTime time.Time `json:"start_time"`
}

// EndSessionRequest is the body of POST /sessions/{id}/end.
type EndSessionRequest struct {
	CardsReviewed  int `json:"cards_reviewed"`
	CorrectAnswers int `json:"correct_answers"`
}
