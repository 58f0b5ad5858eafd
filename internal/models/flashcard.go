package models

import (
	"time"

	"github.com/mycelium/backend/internal/srs"
)

// Flashcard represents a single card owned by a user, together with its
// spaced-repetition schedule state.
type Flashcard struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Schedule  srs.State `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
}

// ScheduleState implements srs.Scheduled.
func (f Flashcard) ScheduleState() srs.State { return f.Schedule }

// Review represents one logged review of a flashcard. ResponseTimeMS is nil
// when the client did not report a response time.
type Review struct {
	ID             string    `json:"id"`
	FlashcardID    string    `json:"flashcard_id"`
	UserID         string    `json:"user_id"`
	Rating         int       `json:"rating"`
	ResponseTimeMS *int64    `json:"response_time_ms,omitempty"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}
