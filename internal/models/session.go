package models

import "time"

// LearningSession represents one study session. EndTime is nil while the
// session is still open; ending a session is its only mutation.
type LearningSession struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	SessionType    string     `json:"session_type"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	CardsReviewed  int        `json:"cards_reviewed"`
	CorrectAnswers int        `json:"correct_answers"`
}

// Ended reports whether the session has already been closed.
func (s LearningSession) Ended() bool { return s.EndTime != nil }
