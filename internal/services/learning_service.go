package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mycelium/backend/internal/models"
	"github.com/mycelium/backend/internal/srs"
	"go.uber.org/zap"
)

// FlashcardRepository is the interface that wraps methods for flashcard table data access
type FlashcardRepository interface {
	// Create inserts a new flashcard with its initial schedule state.
	Create(ctx context.Context, card models.Flashcard) error
	// GetByID retrieves one of the user's flashcards by its ID.
	GetByID(ctx context.Context, id, userID string) (*models.Flashcard, error)
	// ListByUser retrieves all of the user's flashcards.
	ListByUser(ctx context.Context, userID string) ([]models.Flashcard, error)
	// ListDue retrieves up to limit flashcards due at or before now.
	ListDue(ctx context.Context, userID string, now time.Time, limit int) ([]models.Flashcard, error)
	// CountNew counts flashcards that have never been reviewed.
	CountNew(ctx context.Context, userID string) (int, error)
	// Delete removes one of the user's flashcards.
	Delete(ctx context.Context, id, userID string) error
	// ApplyReview applies a schedule transition to a locked card row and logs
	// the review in the same transaction.
	ApplyReview(ctx context.Context, cardID, userID string, review models.Review, apply func(srs.State) (srs.State, error)) (srs.State, error)
}

// SessionRepository is the interface that wraps methods for learning session data access
type SessionRepository interface {
	Create(ctx context.Context, session models.LearningSession) error
	GetByID(ctx context.Context, id, userID string) (*models.LearningSession, error)
	// End closes an open session with its final counters.
	End(ctx context.Context, id, userID string, endTime time.Time, cardsReviewed, correctAnswers int) error
}

// ReviewRepository is the interface that wraps methods for review history data access
type ReviewRepository interface {
	// ListByUser retrieves the user's full review history in chronological order.
	ListByUser(ctx context.Context, userID string) ([]srs.ReviewRecord, error)
}

const (
	// DefaultDueLimit caps the due-cards endpoint when the client does not ask
	// for a specific batch size.
	DefaultDueLimit = 20
	// MaxDueLimit is the largest batch a single request may fetch.
	MaxDueLimit = 100
	// DefaultStatsDays is the response-time window when the client does not
	// pass one.
	DefaultStatsDays = 30
	// DefaultScheduleDays is the forecast horizon when the client does not
	// pass one.
	DefaultScheduleDays = 7
	// MaxScheduleDays bounds the forecast horizon.
	MaxScheduleDays = 30

	defaultSessionType = "review"
)

type learningService struct {
	cards    FlashcardRepository
	sessions SessionRepository
	reviews  ReviewRepository
	logger   *zap.Logger

	newCardLimit int
	now          func() time.Time
}

// NewLearningService creates a new learning service. newCardLimit caps how
// many never-reviewed cards are offered per day.
func NewLearningService(cards FlashcardRepository, sessions SessionRepository, reviews ReviewRepository, logger *zap.Logger, newCardLimit int) *learningService {
	return &learningService{
		cards:        cards,
		sessions:     sessions,
		reviews:      reviews,
		logger:       logger,
		newCardLimit: newCardLimit,
		now:          time.Now,
	}
}

// GetDueCards retrieves up to limit of the user's flashcards that are due for
// review right now, oldest first.
func (s *learningService) GetDueCards(ctx context.Context, userID string, limit int) ([]models.DueFlashcard, error) {
	if limit <= 0 {
		limit = DefaultDueLimit
	}
	if limit > MaxDueLimit {
		limit = MaxDueLimit
	}

	now := s.now().UTC()
	cards, err := s.cards.ListDue(ctx, userID, now, limit)
	if err != nil {
		s.logger.Error("failed to list due cards", zap.Error(err))
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}

	due := srs.DueNow(cards, now, limit)
	result := make([]models.DueFlashcard, 0, len(due))
	for _, card := range due {
		result = append(result, models.DueFlashcard{
			ID:          card.ID,
			Front:       card.Front,
			Back:        card.Back,
			Difficulty:  card.Schedule.Difficulty,
			ReviewCount: card.Schedule.ReviewCount,
		})
	}

	return result, nil
}

// ReviewCard grades one flashcard and advances its schedule. The rating is
// validated before any storage is touched, so an out-of-range rating leaves
// the card untouched.
func (s *learningService) ReviewCard(ctx context.Context, userID, cardID string, req models.ReviewRequest) (*srs.State, error) {
	rating := srs.Rating(req.Rating)
	if !rating.Valid() {
		return nil, srs.ErrInvalidRating
	}

	now := s.now().UTC()
	review := models.Review{
		ID:             uuid.NewString(),
		FlashcardID:    cardID,
		UserID:         userID,
		Rating:         req.Rating,
		ResponseTimeMS: req.ResponseTimeMS,
		ReviewedAt:     now,
	}

	newState, err := s.cards.ApplyReview(ctx, cardID, userID, review, func(state srs.State) (srs.State, error) {
		return srs.Schedule(state, rating, now)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("flashcard reviewed",
		zap.String("flashcard_id", cardID),
		zap.Int("rating", req.Rating),
		zap.Int("next_interval_days", newState.IntervalDays))

	return &newState, nil
}

// CreateCard creates a new flashcard due immediately.
func (s *learningService) CreateCard(ctx context.Context, userID string, req models.CreateFlashcardRequest) (*models.Flashcard, error) {
	front := strings.TrimSpace(req.Front)
	back := strings.TrimSpace(req.Back)
	if front == "" {
		return nil, fmt.Errorf("front is required")
	}
	if back == "" {
		return nil, fmt.Errorf("back is required")
	}

	now := s.now().UTC()
	card := models.Flashcard{
		ID:        uuid.NewString(),
		UserID:    userID,
		Front:     front,
		Back:      back,
		Schedule:  srs.NewState(now),
		CreatedAt: now,
	}

	if err := s.cards.Create(ctx, card); err != nil {
		s.logger.Error("failed to create flashcard", zap.Error(err))
		return nil, fmt.Errorf("failed to create flashcard: %w", err)
	}

	return &card, nil
}

// ListCards retrieves all of the user's flashcards.
func (s *learningService) ListCards(ctx context.Context, userID string) ([]models.Flashcard, error) {
	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list flashcards", zap.Error(err))
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	return cards, nil
}

// DeleteCard removes one of the user's flashcards.
func (s *learningService) DeleteCard(ctx context.Context, userID, cardID string) error {
	if err := s.cards.Delete(ctx, cardID, userID); err != nil {
		return err
	}
	s.logger.Info("flashcard deleted", zap.String("flashcard_id", cardID))
	return nil
}

// GetStats aggregates the user's learning statistics. days bounds the
// response-time window only; accuracy and streaks always cover the whole
// history.
func (s *learningService) GetStats(ctx context.Context, userID string, days int) (*srs.Stats, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}

	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list flashcards for stats", zap.Error(err))
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}

	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list reviews for stats", zap.Error(err))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	stats := srs.Aggregate(cards, reviews, s.now().UTC(), days)
	return &stats, nil
}

// GetSchedule forecasts the review load for the next days calendar days and
// reports how many new cards are available, capped by the daily limit.
func (s *learningService) GetSchedule(ctx context.Context, userID string, days int) (*models.ScheduleResponse, error) {
	if days <= 0 {
		days = DefaultScheduleDays
	}
	if days > MaxScheduleDays {
		days = MaxScheduleDays
	}

	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list flashcards for schedule", zap.Error(err))
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}

	newCount, err := s.cards.CountNew(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count new flashcards", zap.Error(err))
		return nil, fmt.Errorf("failed to count new flashcards: %w", err)
	}
	if newCount > s.newCardLimit {
		newCount = s.newCardLimit
	}

	summary := srs.DailySchedule(cards, s.now().UTC(), days)

	return &models.ScheduleResponse{
		Schedule:          summary.Days,
		TotalDue:          summary.TotalDue,
		NewCardsAvailable: newCount,
	}, nil
}

// StartSession opens a learning session for the user.
func (s *learningService) StartSession(ctx context.Context, userID string, req models.StartSessionRequest) (*models.LearningSession, error) {
	sessionType := strings.TrimSpace(req.SessionType)
	if sessionType == "" {
		sessionType = defaultSessionType
	}

	session := models.LearningSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		SessionType: sessionType,
		StartTime:   s.now().UTC(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error("failed to start session", zap.Error(err))
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return &session, nil
}

// EndSession closes an open session with its final counters and returns the
// completed session.
func (s *learningService) EndSession(ctx context.Context, userID, sessionID string, req models.EndSessionRequest) (*models.LearningSession, error) {
	if req.CardsReviewed < 0 || req.CorrectAnswers < 0 {
		return nil, fmt.Errorf("session counters must not be negative")
	}
	if req.CorrectAnswers > req.CardsReviewed {
		return nil, fmt.Errorf("correct answers cannot exceed cards reviewed")
	}

	if err := s.sessions.End(ctx, sessionID, userID, s.now().UTC(), req.CardsReviewed, req.CorrectAnswers); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, sessionID, userID)
	if err != nil {
		s.logger.Error("failed to load ended session", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s.logger.Info("session ended",
		zap.String("session_id", sessionID),
		zap.Int("cards_reviewed", req.CardsReviewed),
		zap.Int("correct_answers", req.CorrectAnswers))

	return session, nil
}
