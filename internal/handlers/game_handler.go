package handlers

import (
	"net/http"
	"time"

	"wordquiz/internal/metrics"
	"wordquiz/internal/service"
)

var startedAt = time.Now()

// GameHandler serves the level, daily word and answer feedback endpoints
type GameHandler struct {
	game     *service.GameService
	feedback *service.FeedbackService
}

// NewGameHandler creates a new game handler
func NewGameHandler(game *service.GameService, feedback *service.FeedbackService) *GameHandler {
	return &GameHandler{
		game:     game,
		feedback: feedback,
	}
}

type levelRequest struct {
	Answers []bool `json:"answers" validate:"required,min=1"`
}

type answerRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// FinishLevel scores a finished level and hands out its rewards
func (h *GameHandler) FinishLevel(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryId")

	var req levelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, ErrInvalidRequestBody, err)
		return
	}

	result, err := h.game.FinishLevel(r.Context(), categoryID, req.Answers)
	if err != nil {
		respondWithServiceError(w, "Error finishing level", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SubmitDailyWord handles the answer to today's daily word
func (h *GameHandler) SubmitDailyWord(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, ErrInvalidRequestBody, err)
		return
	}

	result, err := h.game.SubmitDailyWord(r.Context(), *req.Correct)
	if err != nil {
		respondWithServiceError(w, "Error submitting daily word", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// AnswerFeedback tells the shell which haptic and sound to play
func (h *GameHandler) AnswerFeedback(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, ErrInvalidRequestBody, err)
		return
	}

	feedback, err := h.feedback.ForAnswer(r.Context(), *req.Correct)
	if err != nil {
		respondWithServiceError(w, "Error loading settings", err)
		return
	}
	respondJSON(w, http.StatusOK, feedback)
}

// Health reports liveness with basic host information
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"uptimeSeconds":     int64(time.Since(startedAt).Seconds()),
		"memoryUsedPercent": metrics.MemoryUsedPercent(),
	})
}
