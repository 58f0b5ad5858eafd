package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mycelium/backend/internal/srs"
	"go.uber.org/zap"
)

type reviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new instance of the ReviewRepository interface
func NewReviewRepository(db *sql.DB, logger *zap.Logger) *reviewRepository {
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

// ListByUser retrieves the user's full review history in chronological order,
// mapped into schedule review records for aggregation. Streak computation
// needs the whole history, so there is no cutoff here.
func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]srs.ReviewRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rating, response_time_ms, reviewed_at
		FROM flashcard_reviews
		WHERE user_id = ?
		ORDER BY reviewed_at
	`, userID)
	if err != nil {
		r.logger.Error("failed to query reviews", zap.Error(err))
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var records []srs.ReviewRecord
	for rows.Next() {
		var record srs.ReviewRecord
		var rating int
		var responseTime sql.NullInt64
		if err := rows.Scan(&rating, &responseTime, &record.ReviewedAt); err != nil {
			r.logger.Error("failed to scan review", zap.Error(err))
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		record.Rating = srs.Rating(rating)
		if responseTime.Valid {
			record.ResponseTimeMS = responseTime.Int64
			record.Timed = true
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}
