package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mycelium/backend/internal/models"
	"github.com/mycelium/backend/internal/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var repoTestNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

// setupMockDB creates a mock database and a test logger
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *zap.Logger, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, logger, cleanup
}

func flashcardRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "front", "back", "difficulty", "interval_days",
		"review_count", "success_rate", "next_review", "last_review", "created_at",
	})
}

func TestFlashcardRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		checkCard     func(*testing.T, *models.Flashcard)
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := flashcardRows().
					AddRow("card-1", "user-1", "犬", "dog", 2.5, 6, 2, 100.0,
						repoTestNow.Add(6*24*time.Hour), repoTestNow, repoTestNow.Add(-48*time.Hour))
				mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE id = \? AND user_id = \?`).
					WithArgs("card-1", "user-1").
					WillReturnRows(rows)
			},
			checkCard: func(t *testing.T, card *models.Flashcard) {
				assert.Equal(t, "card-1", card.ID)
				assert.Equal(t, "犬", card.Front)
				assert.Equal(t, 2, card.Schedule.ReviewCount)
				assert.Equal(t, repoTestNow, card.Schedule.LastReview)
			},
		},
		{
			name: "never reviewed card has zero last review",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := flashcardRows().
					AddRow("card-2", "user-1", "猫", "cat", 2.5, 0, 0, 0.0,
						repoTestNow, nil, repoTestNow)
				mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE id = \? AND user_id = \?`).
					WithArgs("card-2", "user-1").
					WillReturnRows(rows)
			},
			checkCard: func(t *testing.T, card *models.Flashcard) {
				assert.True(t, card.Schedule.LastReview.IsZero())
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE id = \? AND user_id = \?`).
					WithArgs("missing", "user-1").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrFlashcardNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE id = \? AND user_id = \?`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("failed to query flashcard"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, logger, cleanup := setupMockDB(t)
			defer cleanup()
			repo := NewFlashcardRepository(db, logger)

			tt.setupMock(mock)

			id := "card-1"
			switch tt.name {
			case "never reviewed card has zero last review":
				id = "card-2"
			case "not found":
				id = "missing"
			}

			card, err := repo.GetByID(context.Background(), id, "user-1")

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Nil(t, card)
				if errors.Is(tt.expectedError, ErrFlashcardNotFound) {
					assert.ErrorIs(t, err, ErrFlashcardNotFound)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, card)
				tt.checkCard(t, card)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFlashcardRepository_ListDue(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := flashcardRows().
					AddRow("card-1", "user-1", "犬", "dog", 2.5, 1, 1, 100.0,
						repoTestNow.Add(-time.Hour), repoTestNow.Add(-25*time.Hour), repoTestNow.Add(-48*time.Hour)).
					AddRow("card-2", "user-1", "猫", "cat", 2.5, 0, 0, 0.0,
						repoTestNow, nil, repoTestNow.Add(-24*time.Hour))
				mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE user_id = \? AND next_review <= \? ORDER BY created_at LIMIT \?`).
					WithArgs("user-1", repoTestNow, 20).
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "empty result",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE user_id = \? AND next_review <= \? ORDER BY created_at LIMIT \?`).
					WithArgs("user-1", repoTestNow, 20).
					WillReturnRows(flashcardRows())
			},
			expectedCount: 0,
		},
		{
			name: "database query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE user_id = \? AND next_review <= \? ORDER BY created_at LIMIT \?`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "rows iteration error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := flashcardRows().
					AddRow("card-1", "user-1", "犬", "dog", 2.5, 1, 1, 100.0,
						repoTestNow, repoTestNow, repoTestNow).
					RowError(0, errors.New("row error"))
				mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE user_id = \? AND next_review <= \? ORDER BY created_at LIMIT \?`).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, logger, cleanup := setupMockDB(t)
			defer cleanup()
			repo := NewFlashcardRepository(db, logger)

			tt.setupMock(mock)

			cards, err := repo.ListDue(context.Background(), "user-1", repoTestNow, 20)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, cards)
			} else {
				assert.NoError(t, err)
				assert.Len(t, cards, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFlashcardRepository_Create(t *testing.T) {
	db, mock, logger, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewFlashcardRepository(db, logger)

	card := models.Flashcard{
		ID:        "card-1",
		UserID:    "user-1",
		Front:     "犬",
		Back:      "dog",
		Schedule:  srs.NewState(repoTestNow),
		CreatedAt: repoTestNow,
	}

	mock.ExpectExec(`INSERT INTO flashcards`).
		WithArgs(card.ID, card.UserID, card.Front, card.Back,
			card.Schedule.Difficulty, card.Schedule.IntervalDays, card.Schedule.ReviewCount,
			card.Schedule.SuccessRate, card.Schedule.NextReview, sqlmock.AnyArg(), card.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), card)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardRepository_CountNew(t *testing.T) {
	db, mock, logger, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewFlashcardRepository(db, logger)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM flashcards WHERE user_id = \? AND review_count = 0`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountNew(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM flashcards WHERE id = \? AND user_id = \?`).
					WithArgs("card-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM flashcards WHERE id = \? AND user_id = \?`).
					WithArgs("card-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: ErrFlashcardNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, logger, cleanup := setupMockDB(t)
			defer cleanup()
			repo := NewFlashcardRepository(db, logger)

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), "card-1", "user-1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFlashcardRepository_ApplyReview(t *testing.T) {
	responseTime := int64(3200)
	review := models.Review{
		ID:             "review-1",
		FlashcardID:    "card-1",
		UserID:         "user-1",
		Rating:         5,
		ResponseTimeMS: &responseTime,
		ReviewedAt:     repoTestNow,
	}

	stateColumns := []string{"difficulty", "interval_days", "review_count", "success_rate", "next_review", "last_review"}

	t.Run("success", func(t *testing.T) {
		db, mock, logger, cleanup := setupMockDB(t)
		defer cleanup()
		repo := NewFlashcardRepository(db, logger)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE id = \? AND user_id = \? FOR UPDATE`).
			WithArgs("card-1", "user-1").
			WillReturnRows(sqlmock.NewRows(stateColumns).
				AddRow(2.5, 0, 0, 0.0, repoTestNow.Add(-time.Hour), nil))
		mock.ExpectExec(`UPDATE flashcards SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO flashcard_reviews`).
			WithArgs("review-1", "card-1", "user-1", 5, sqlmock.AnyArg(), repoTestNow).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		newState, err := repo.ApplyReview(context.Background(), "card-1", "user-1", review,
			func(state srs.State) (srs.State, error) {
				return srs.Schedule(state, srs.Rating(review.Rating), repoTestNow)
			})

		require.NoError(t, err)
		assert.Equal(t, 1, newState.IntervalDays)
		assert.Equal(t, 1, newState.ReviewCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("card not found rolls back", func(t *testing.T) {
		db, mock, logger, cleanup := setupMockDB(t)
		defer cleanup()
		repo := NewFlashcardRepository(db, logger)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE id = \? AND user_id = \? FOR UPDATE`).
			WithArgs("missing", "user-1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.ApplyReview(context.Background(), "missing", "user-1", review,
			func(state srs.State) (srs.State, error) { return state, nil })

		assert.ErrorIs(t, err, ErrFlashcardNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("transition error rolls back without writing", func(t *testing.T) {
		db, mock, logger, cleanup := setupMockDB(t)
		defer cleanup()
		repo := NewFlashcardRepository(db, logger)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM flashcards WHERE id = \? AND user_id = \? FOR UPDATE`).
			WithArgs("card-1", "user-1").
			WillReturnRows(sqlmock.NewRows(stateColumns).
				AddRow(2.5, 0, 0, 0.0, repoTestNow, nil))
		mock.ExpectRollback()

		_, err := repo.ApplyReview(context.Background(), "card-1", "user-1", review,
			func(state srs.State) (srs.State, error) {
				return srs.Schedule(state, srs.Rating(9), repoTestNow)
			})

		assert.ErrorIs(t, err, srs.ErrInvalidRating)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_End(t *testing.T) {
	endTime := repoTestNow.Add(20 * time.Minute)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE learning_sessions SET end_time = \?, cards_reviewed = \?, correct_answers = \? WHERE id = \? AND user_id = \? AND end_time IS NULL`).
					WithArgs(endTime, 12, 10, "session-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already ended",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE learning_sessions SET`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				rows := sqlmock.NewRows([]string{"id", "user_id", "session_type", "start_time", "end_time", "cards_reviewed", "correct_answers"}).
					AddRow("session-1", "user-1", "review", repoTestNow, repoTestNow.Add(10*time.Minute), 5, 4)
				mock.ExpectQuery(`SELECT (.+) FROM learning_sessions WHERE id = \? AND user_id = \?`).
					WithArgs("session-1", "user-1").
					WillReturnRows(rows)
			},
			expectedError: ErrSessionAlreadyEnded,
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE learning_sessions SET`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT (.+) FROM learning_sessions WHERE id = \? AND user_id = \?`).
					WithArgs("session-1", "user-1").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, logger, cleanup := setupMockDB(t)
			defer cleanup()
			repo := NewSessionRepository(db, logger)

			tt.setupMock(mock)

			err := repo.End(context.Background(), "session-1", "user-1", endTime, 12, 10)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_Create(t *testing.T) {
	db, mock, logger, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewSessionRepository(db, logger)

	session := models.LearningSession{
		ID:          "session-1",
		UserID:      "user-1",
		SessionType: "review",
		StartTime:   repoTestNow,
	}

	mock.ExpectExec(`INSERT INTO learning_sessions`).
		WithArgs(session.ID, session.UserID, session.SessionType, session.StartTime, nil, 0, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), session)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByUser(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		check         func(*testing.T, []srs.ReviewRecord)
	}{
		{
			name: "success with mixed timing",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"rating", "response_time_ms", "reviewed_at"}).
					AddRow(5, 2800, repoTestNow.Add(-48*time.Hour)).
					AddRow(2, nil, repoTestNow.Add(-24*time.Hour))
				mock.ExpectQuery(`SELECT rating, response_time_ms, reviewed_at FROM flashcard_reviews WHERE user_id = \? ORDER BY reviewed_at`).
					WithArgs("user-1").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, records []srs.ReviewRecord) {
				require.Len(t, records, 2)
				assert.Equal(t, srs.Rating(5), records[0].Rating)
				assert.True(t, records[0].Timed)
				assert.Equal(t, int64(2800), records[0].ResponseTimeMS)
				assert.False(t, records[1].Timed)
			},
		},
		{
			name: "empty history",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT rating, response_time_ms, reviewed_at FROM flashcard_reviews`).
					WillReturnRows(sqlmock.NewRows([]string{"rating", "response_time_ms", "reviewed_at"}))
			},
			check: func(t *testing.T, records []srs.ReviewRecord) {
				assert.Len(t, records, 0)
			},
		},
		{
			name: "database query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT rating, response_time_ms, reviewed_at FROM flashcard_reviews`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, logger, cleanup := setupMockDB(t)
			defer cleanup()
			repo := NewReviewRepository(db, logger)

			tt.setupMock(mock)

			records, err := repo.ListByUser(context.Background(), "user-1")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, records)
			} else {
				assert.NoError(t, err)
				tt.check(t, records)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
