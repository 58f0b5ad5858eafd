package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mycelium/backend/internal/models"
	"go.uber.org/zap"
)

type sessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSessionRepository creates a new instance of the SessionRepository interface
func NewSessionRepository(db *sql.DB, logger *zap.Logger) *sessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new learning session.
func (r *sessionRepository) Create(ctx context.Context, session models.LearningSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO learning_sessions (id, user_id, session_type, start_time, end_time, cards_reviewed, correct_answers)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		session.ID,
		session.UserID,
		session.SessionType,
		session.StartTime,
		session.EndTime,
		session.CardsReviewed,
		session.CorrectAnswers,
	)
	if err != nil {
		r.logger.Error("failed to insert session", zap.Error(err))
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetByID retrieves one of the user's learning sessions by its ID.
func (r *sessionRepository) GetByID(ctx context.Context, id, userID string) (*models.LearningSession, error) {
	var session models.LearningSession
	var endTime sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_type, start_time, end_time, cards_reviewed, correct_answers
		FROM learning_sessions
		WHERE id = ? AND user_id = ?
	`, id, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.SessionType,
		&session.StartTime,
		&endTime,
		&session.CardsReviewed,
		&session.CorrectAnswers,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		r.logger.Error("failed to query session", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	if endTime.Valid {
		session.EndTime = &endTime.Time
	}
	return &session, nil
}

// End closes an open session with its final counters. Returns
// ErrSessionAlreadyEnded when the session exists but has an end time, and
// ErrSessionNotFound when it does not exist at all.
func (r *sessionRepository) End(ctx context.Context, id, userID string, endTime time.Time, cardsReviewed, correctAnswers int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE learning_sessions
		SET end_time = ?, cards_reviewed = ?, correct_answers = ?
		WHERE id = ? AND user_id = ? AND end_time IS NULL
	`, endTime, cardsReviewed, correctAnswers, id, userID)
	if err != nil {
		r.logger.Error("failed to end session", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to end session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing matched: distinguish a missing session from an ended one.
	session, err := r.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if session.Ended() {
		return ErrSessionAlreadyEnded
	}
	return ErrSessionNotFound
}
