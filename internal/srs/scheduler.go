// Package srs implements the SM-2 spaced-repetition core: the per-card
// schedule state, the review transition function, due-set queries and
// statistics aggregation. Everything in this package is pure; callers supply
// the current time and own persistence.
package srs

import (
	"math"
	"time"
)

const (
	// InitialEaseFactor is the ease factor assigned to a card that has
	// never been reviewed.
	InitialEaseFactor = 2.5

	// MinEaseFactor is the floor below which the ease factor never drops.
	MinEaseFactor = 1.3
)

// Rating is a 1-5 self-assessment of recall quality for one review.
// Ratings of 3 and above count as a successful recall.
type Rating int

const (
	MinRating Rating = 1
	MaxRating Rating = 5

	// passingRating is the lowest rating that counts as a correct answer.
	passingRating Rating = 3
)

// Valid reports whether the rating is within the accepted [1, 5] range.
func (r Rating) Valid() bool {
	return r >= MinRating && r <= MaxRating
}

// Correct reports whether the rating counts as a successful recall.
func (r Rating) Correct() bool {
	return r >= passingRating
}

// State holds the scheduling fields of a single flashcard. The zero value is
// not a valid state; use NewState for cards that have never been reviewed.
type State struct {
	Difficulty   float64   `json:"difficulty"`
	IntervalDays int       `json:"interval_days"`
	ReviewCount  int       `json:"review_count"`
	SuccessRate  float64   `json:"success_rate"`
	NextReview   time.Time `json:"next_review"`
	LastReview   time.Time `json:"last_review,omitzero"`
}

// NewState returns the schedule state for a card that has never been
// reviewed: initial ease factor, immediately due.
func NewState(now time.Time) State {
	return State{
		Difficulty: InitialEaseFactor,
		NextReview: now,
	}
}

// Due reports whether the card is due for review at the given time.
func (s State) Due(now time.Time) bool {
	return !s.NextReview.After(now)
}

// Schedule applies one review to a card's schedule state and returns the new
// state. It is a pure transition: the input state is never mutated, and on
// error it is returned unchanged.
//
// The transition follows SM-2. A correct answer (rating >= 3) grows the
// interval (1 day, then 6 days, then interval*ease truncated to whole days)
// and nudges the ease factor by 0.1 - (5-q)*(0.08 + (5-q)*0.02). An
// incorrect answer resets the interval to 1 day and drops the ease factor by
// 0.2. The ease factor never goes below MinEaseFactor.
func Schedule(state State, rating Rating, now time.Time) (State, error) {
	if !rating.Valid() {
		return state, ErrInvalidRating
	}
	if state.Difficulty < MinEaseFactor {
		return state, ErrInvariantViolation
	}

	next := state

	if rating.Correct() {
		switch {
		case state.ReviewCount == 0:
			next.IntervalDays = 1
		case state.ReviewCount == 1:
			next.IntervalDays = 6
		default:
			// Truncation toward zero is deliberate: a 2.5-ease card at
			// 6 days goes to 15, not 16.
			next.IntervalDays = int(float64(state.IntervalDays) * state.Difficulty)
		}

		q := float64(MaxRating - rating)
		next.Difficulty = math.Max(MinEaseFactor, state.Difficulty+(0.1-q*(0.08+q*0.02)))
	} else {
		next.IntervalDays = 1
		next.Difficulty = math.Max(MinEaseFactor, state.Difficulty-0.2)
	}

	next.NextReview = now.Add(time.Duration(next.IntervalDays) * 24 * time.Hour)
	next.LastReview = now
	next.ReviewCount = state.ReviewCount + 1

	// Incremental running average over the review history. The old rate
	// already reflects ReviewCount-1 reviews, so scale it back up by that
	// count, add this review, and divide by the new count.
	n := float64(next.ReviewCount)
	successful := (n - 1) * (state.SuccessRate / 100)
	if rating.Correct() {
		successful++
	}
	next.SuccessRate = successful / n * 100

	return next, nil
}
