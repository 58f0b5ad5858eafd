package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mycelium/backend/internal/models"
	"github.com/mycelium/backend/internal/srs"
	"go.uber.org/zap"
)

type flashcardRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFlashcardRepository creates a new instance of the FlashcardRepository interface
func NewFlashcardRepository(db *sql.DB, logger *zap.Logger) *flashcardRepository {
	return &flashcardRepository{
		db:     db,
		logger: logger,
	}
}

const flashcardColumns = "id, user_id, front, back, difficulty, interval_days, review_count, success_rate, next_review, last_review, created_at"

// Create inserts a new flashcard with its initial schedule state.
func (r *flashcardRepository) Create(ctx context.Context, card models.Flashcard) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO flashcards (id, user_id, front, back, difficulty, interval_days, review_count, success_rate, next_review, last_review, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		card.ID,
		card.UserID,
		card.Front,
		card.Back,
		card.Schedule.Difficulty,
		card.Schedule.IntervalDays,
		card.Schedule.ReviewCount,
		card.Schedule.SuccessRate,
		card.Schedule.NextReview,
		nullableTime(card.Schedule.LastReview),
		card.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert flashcard", zap.Error(err))
		return fmt.Errorf("failed to insert flashcard: %w", err)
	}
	return nil
}

// GetByID retrieves one of the user's flashcards by its ID.
func (r *flashcardRepository) GetByID(ctx context.Context, id, userID string) (*models.Flashcard, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+flashcardColumns+`
		FROM flashcards
		WHERE id = ? AND user_id = ?
	`, id, userID)

	card, err := scanFlashcard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlashcardNotFound
		}
		r.logger.Error("failed to query flashcard", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to query flashcard: %w", err)
	}
	return card, nil
}

// ListByUser retrieves all flashcards owned by the user in insertion order.
func (r *flashcardRepository) ListByUser(ctx context.Context, userID string) ([]models.Flashcard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+flashcardColumns+`
		FROM flashcards
		WHERE user_id = ?
		ORDER BY created_at
	`, userID)
	if err != nil {
		r.logger.Error("failed to query flashcards", zap.Error(err))
		return nil, fmt.Errorf("failed to query flashcards: %w", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			r.logger.Error("failed to scan flashcard", zap.Error(err))
			return nil, fmt.Errorf("failed to scan flashcard: %w", err)
		}
		cards = append(cards, *card)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return cards, nil
}

// ListDue retrieves up to limit of the user's flashcards whose next review is
// at or before now, in insertion order.
func (r *flashcardRepository) ListDue(ctx context.Context, userID string, now time.Time, limit int) ([]models.Flashcard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+flashcardColumns+`
		FROM flashcards
		WHERE user_id = ? AND next_review <= ?
		ORDER BY created_at
		LIMIT ?
	`, userID, now, limit)
	if err != nil {
		r.logger.Error("failed to query due flashcards", zap.Error(err))
		return nil, fmt.Errorf("failed to query due flashcards: %w", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			r.logger.Error("failed to scan flashcard", zap.Error(err))
			return nil, fmt.Errorf("failed to scan flashcard: %w", err)
		}
		cards = append(cards, *card)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return cards, nil
}

// CountNew counts the user's flashcards that have never been reviewed.
func (r *flashcardRepository) CountNew(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM flashcards
		WHERE user_id = ? AND review_count = 0
	`, userID).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count new flashcards", zap.Error(err))
		return 0, fmt.Errorf("failed to count new flashcards: %w", err)
	}
	return count, nil
}

// Delete removes one of the user's flashcards.
func (r *flashcardRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM flashcards
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		r.logger.Error("failed to delete flashcard", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete flashcard: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrFlashcardNotFound
	}
	return nil
}

// ApplyReview atomically applies a schedule transition to one card and logs
// the review. The card row is locked for the duration of the transaction, so
// concurrent reviews of the same card serialize instead of losing an update.
// The transition itself is supplied by the caller and runs against the state
// read under the lock.
func (r *flashcardRepository) ApplyReview(ctx context.Context, cardID, userID string, review models.Review, apply func(srs.State) (srs.State, error)) (srs.State, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return srs.State{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var state srs.State
	var lastReview sql.NullTime
	err = tx.QueryRowContext(ctx, `
		SELECT difficulty, interval_days, review_count, success_rate, next_review, last_review
		FROM flashcards
		WHERE id = ? AND user_id = ?
		FOR UPDATE
	`, cardID, userID).Scan(
		&state.Difficulty,
		&state.IntervalDays,
		&state.ReviewCount,
		&state.SuccessRate,
		&state.NextReview,
		&lastReview,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return srs.State{}, ErrFlashcardNotFound
		}
		r.logger.Error("failed to lock flashcard for review", zap.Error(err), zap.String("id", cardID))
		return srs.State{}, fmt.Errorf("failed to lock flashcard: %w", err)
	}
	if lastReview.Valid {
		state.LastReview = lastReview.Time
	}

	newState, err := apply(state)
	if err != nil {
		return srs.State{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE flashcards
		SET difficulty = ?, interval_days = ?, review_count = ?, success_rate = ?, next_review = ?, last_review = ?
		WHERE id = ? AND user_id = ?
	`,
		newState.Difficulty,
		newState.IntervalDays,
		newState.ReviewCount,
		newState.SuccessRate,
		newState.NextReview,
		newState.LastReview,
		cardID,
		userID,
	)
	if err != nil {
		r.logger.Error("failed to update flashcard schedule", zap.Error(err), zap.String("id", cardID))
		return srs.State{}, fmt.Errorf("failed to update flashcard schedule: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO flashcard_reviews (id, flashcard_id, user_id, rating, response_time_ms, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		review.ID,
		cardID,
		userID,
		review.Rating,
		nullableInt64(review.ResponseTimeMS),
		review.ReviewedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert review", zap.Error(err), zap.String("flashcard_id", cardID))
		return srs.State{}, fmt.Errorf("failed to insert review: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return srs.State{}, fmt.Errorf("failed to commit review: %w", err)
	}

	return newState, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanFlashcard.
type scanner interface {
	Scan(dest ...any) error
}

func scanFlashcard(s scanner) (*models.Flashcard, error) {
	var card models.Flashcard
	var lastReview sql.NullTime
	if err := s.Scan(
		&card.ID,
		&card.UserID,
		&card.Front,
		&card.Back,
		&card.Schedule.Difficulty,
		&card.Schedule.IntervalDays,
		&card.Schedule.ReviewCount,
		&card.Schedule.SuccessRate,
		&card.Schedule.NextReview,
		&lastReview,
		&card.CreatedAt,
	); err != nil {
		return nil, err
	}
	if lastReview.Valid {
		card.Schedule.LastReview = lastReview.Time
	}
	return &card, nil
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
