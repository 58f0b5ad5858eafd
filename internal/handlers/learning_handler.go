package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mycelium/backend/internal/middleware"
	"github.com/mycelium/backend/internal/models"
	"github.com/mycelium/backend/internal/repositories"
	"github.com/mycelium/backend/internal/srs"
	"go.uber.org/zap"
)

// LearningService is the interface that wraps methods for spaced-repetition business logic.
type LearningService interface {
	// GetDueCards retrieves up to limit flashcards due for review right now.
	GetDueCards(ctx context.Context, userID string, limit int) ([]models.DueFlashcard, error)
	// ReviewCard grades one flashcard and advances its schedule.
	ReviewCard(ctx context.Context, userID, cardID string, req models.ReviewRequest) (*srs.State, error)
	// CreateCard creates a new flashcard due immediately.
	CreateCard(ctx context.Context, userID string, req models.CreateFlashcardRequest) (*models.Flashcard, error)
	// ListCards retrieves all of the user's flashcards.
	ListCards(ctx context.Context, userID string) ([]models.Flashcard, error)
	// DeleteCard removes one of the user's flashcards.
	DeleteCard(ctx context.Context, userID, cardID string) error
	// GetStats aggregates the user's learning statistics.
	GetStats(ctx context.Context, userID string, days int) (*srs.Stats, error)
	// GetSchedule forecasts the review load for the coming days.
	GetSchedule(ctx context.Context, userID string, days int) (*models.ScheduleResponse, error)
	// StartSession opens a learning session.
	StartSession(ctx context.Context, userID string, req models.StartSessionRequest) (*models.LearningSession, error)
	// EndSession closes an open session with its final counters.
	EndSession(ctx context.Context, userID, sessionID string, req models.EndSessionRequest) (*models.LearningSession, error)
}

// LearningHandler handles HTTP requests for the spaced-repetition API
type LearningHandler struct {
	BaseHandler
	service LearningService
}

// NewLearningHandler creates a new learning handler
func NewLearningHandler(svc LearningService, logger *zap.Logger) *LearningHandler {
	return &LearningHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all learning handler routes. Every route requires
// an authenticated user, so the auth middleware is applied to the whole group.
func (h *LearningHandler) RegisterRoutes(r chi.Router, authMW func(http.Handler) http.Handler) {
	r.Route("/api/v1/learning", func(r chi.Router) {
		r.Use(authMW)
		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", h.GetDueCards)
			r.Post("/", h.CreateCard)
			r.Get("/all", h.ListCards)
			r.Post("/{id}/review", h.ReviewCard)
			r.Delete("/{id}", h.DeleteCard)
		})
		r.Get("/stats", h.GetStats)
		r.Get("/schedule", h.GetSchedule)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.StartSession)
			r.Post("/{id}/end", h.EndSession)
		})
	})
}

// GetDueCards handles GET /api/v1/learning/flashcards
// @Summary Get due flashcards
// @Description Get flashcards that are due for review right now, oldest first
// @Tags learning
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of cards to return, default: 20, max: 100"
// @Success 200 {array} models.DueFlashcard
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/flashcards [get]
func (h *LearningHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			h.respondError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	cards, err := h.service.GetDueCards(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to get due cards", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get due cards")
		return
	}

	h.respondJSON(w, http.StatusOK, cards)
}

// ReviewCard handles POST /api/v1/learning/flashcards/{id}/review
// @Summary Review a flashcard
// @Description Grade a flashcard on a 1-5 scale and advance its review schedule
// @Tags learning
// @Accept json
// @Produce json
// @Param id path string true "Flashcard ID"
// @Param request body models.ReviewRequest true "Review grade"
// @Success 200 {object} models.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/flashcards/{id}/review [post]
func (h *LearningHandler) ReviewCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		h.respondError(w, http.StatusBadRequest, "id parameter is required")
		return
	}

	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.service.ReviewCard(r.Context(), userID, cardID, req)
	if err != nil {
		switch {
		case errors.Is(err, srs.ErrInvalidRating):
			h.respondError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		case errors.Is(err, repositories.ErrFlashcardNotFound):
			h.respondError(w, http.StatusNotFound, "flashcard not found")
		default:
			h.logger.Error("failed to review card", zap.Error(err))
			h.respondError(w, http.StatusInternalServerError, "failed to review card")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, models.ReviewResponse{
		FlashcardID: cardID,
		Schedule:    *state,
	})
}

// CreateCard handles POST /api/v1/learning/flashcards
// @Summary Create a flashcard
// @Description Create a new flashcard that is due for review immediately
// @Tags learning
// @Accept json
// @Produce json
// @Param request body models.CreateFlashcardRequest true "Card content"
// @Success 201 {object} models.Flashcard
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/flashcards [post]
func (h *LearningHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateFlashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.service.CreateCard(r.Context(), userID, req)
	if err != nil {
		if isValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create card", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to create card")
		return
	}

	h.respondJSON(w, http.StatusCreated, card)
}

// ListCards handles GET /api/v1/learning/flashcards/all
// @Summary List all flashcards
// @Description Get all of the user's flashcards regardless of due status
// @Tags learning
// @Accept json
// @Produce json
// @Success 200 {array} models.Flashcard
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/flashcards/all [get]
func (h *LearningHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	cards, err := h.service.ListCards(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list cards", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list cards")
		return
	}

	h.respondJSON(w, http.StatusOK, cards)
}

// DeleteCard handles DELETE /api/v1/learning/flashcards/{id}
// @Summary Delete a flashcard
// @Description Delete one of the user's flashcards and its review history
// @Tags learning
// @Accept json
// @Produce json
// @Param id path string true "Flashcard ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/flashcards/{id} [delete]
func (h *LearningHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		h.respondError(w, http.StatusBadRequest, "id parameter is required")
		return
	}

	if err := h.service.DeleteCard(r.Context(), userID, cardID); err != nil {
		if errors.Is(err, repositories.ErrFlashcardNotFound) {
			h.respondError(w, http.StatusNotFound, "flashcard not found")
			return
		}
		h.logger.Error("failed to delete card", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles GET /api/v1/learning/stats
// @Summary Get learning statistics
// @Description Get aggregated statistics: totals, accuracy, streaks and response times
// @Tags learning
// @Accept json
// @Produce json
// @Param days query int false "Response-time window in days, default: 30"
// @Success 200 {object} srs.Stats
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/stats [get]
func (h *LearningHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	days, err := parseDaysParam(r, 0)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid days parameter")
		return
	}

	stats, err := h.service.GetStats(r.Context(), userID, days)
	if err != nil {
		h.logger.Error("failed to get stats", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

// GetSchedule handles GET /api/v1/learning/schedule
// @Summary Get review schedule
// @Description Forecast the review load per day for the coming days
// @Tags learning
// @Accept json
// @Produce json
// @Param days query int false "Forecast horizon in days, default: 7, max: 30"
// @Success 200 {object} models.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/schedule [get]
func (h *LearningHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	days, err := parseDaysParam(r, 0)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid days parameter")
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), userID, days)
	if err != nil {
		h.logger.Error("failed to get schedule", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get schedule")
		return
	}

	h.respondJSON(w, http.StatusOK, schedule)
}

// StartSession handles POST /api/v1/learning/sessions
// @Summary Start a learning session
// @Description Open a learning session; defaults to a review session when no type is given
// @Tags learning
// @Accept json
// @Produce json
// @Param request body models.StartSessionRequest false "Session type"
// @Success 201 {object} models.StartSessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/sessions [post]
func (h *LearningHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.StartSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	session, err := h.service.StartSession(r.Context(), userID, req)
	if err != nil {
		h.logger.Error("failed to start session", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	h.respondJSON(w, http.StatusCreated, models.StartSessionResponse{
		SessionID: session.ID,
		StartTime: session.StartTime,
	})
}

// EndSession handles POST /api/v1/learning/sessions/{id}/end
// @Summary End a learning session
// @Description Close an open session with its final counters
// @Tags learning
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.EndSessionRequest true "Final session counters"
// @Success 200 {object} models.LearningSession
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/learning/sessions/{id}/end [post]
func (h *LearningHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		h.respondError(w, http.StatusBadRequest, "id parameter is required")
		return
	}

	var req models.EndSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.EndSession(r.Context(), userID, sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSessionNotFound):
			h.respondError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, repositories.ErrSessionAlreadyEnded):
			h.respondError(w, http.StatusConflict, "session already ended")
		case isValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to end session", zap.Error(err))
			h.respondError(w, http.StatusInternalServerError, "failed to end session")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}

// parseDaysParam reads the optional days query parameter. Zero means the
// caller did not pass one, so the service applies its default.
func parseDaysParam(r *http.Request, fallback int) (int, error) {
	daysParam := r.URL.Query().Get("days")
	if daysParam == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(daysParam)
	if err != nil || days < 1 {
		return 0, errors.New("invalid days parameter")
	}
	return days, nil
}

// isValidationError distinguishes user input problems from storage failures.
// Service validation errors are plain, unwrapped errors.
func isValidationError(err error) bool {
	return errors.Unwrap(err) == nil
}
