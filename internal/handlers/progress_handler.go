package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"wordquiz/internal/models"
	"wordquiz/internal/service"
	"wordquiz/internal/utils"
	"wordquiz/internal/validation"
)

// ProgressHandler exposes the progress store over JSON
type ProgressHandler struct {
	progress *service.ProgressService
	backup   *service.BackupService
	debug    bool
}

// NewProgressHandler creates a new progress handler. Reset and import are
// only served when debug is true.
func NewProgressHandler(progress *service.ProgressService, backup *service.BackupService, debug bool) *ProgressHandler {
	return &ProgressHandler{
		progress: progress,
		backup:   backup,
		debug:    debug,
	}
}

type scoreRequest struct {
	Points *int `json:"points" validate:"required,min=0"`
}

type categoryResultRequest struct {
	Stars *int `json:"stars" validate:"required,min=0,max=3"`
	Score *int `json:"score" validate:"required,min=0"`
}

type stickerView struct {
	models.Sticker
	Unlocked bool `json:"unlocked"`
}

type categoryView struct {
	models.Category
	Progress models.CategoryProgress `json:"progress"`
}

type dailyWordView struct {
	Date          string `json:"date"`
	Completed     bool   `json:"completed"`
	Streak        int    `json:"streak"`
	QuestionIndex *int   `json:"questionIndex,omitempty"`
}

// GetProgress returns the full progress record
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progress.GetProgress(r.Context())
	if err != nil {
		respondWithServiceError(w, "Error loading progress", err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// AddScore adds points to the total score
func (h *ProgressHandler) AddScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, ErrInvalidRequestBody, err)
		return
	}

	if err := h.progress.AddScore(r.Context(), *req.Points); err != nil {
		respondWithServiceError(w, "Error adding score", err)
		return
	}
	h.GetProgress(w, r)
}

// RecordCategoryResult stores the result of a finished category
func (h *ProgressHandler) RecordCategoryResult(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryId")

	var req categoryResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, ErrInvalidRequestBody, err)
		return
	}

	if err := h.progress.RecordCategoryResult(r.Context(), categoryID, *req.Stars, *req.Score); err != nil {
		respondWithServiceError(w, "Error recording category result", err)
		return
	}
	h.GetProgress(w, r)
}

// ResetProgress restores the default record
func (h *ProgressHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	if !h.debug {
		respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}

	if err := h.progress.ResetProgress(r.Context()); err != nil {
		respondWithServiceError(w, "Error resetting progress", err)
		return
	}
	log.Printf("[DEBUG] Progress reset via API (request %s)", GetRequestID(r.Context()))
	h.GetProgress(w, r)
}

// ExportProgress downloads a backup of the record
func (h *ProgressHandler) ExportProgress(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("wordquiz_backup_%s.json", h.progress.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := h.backup.ExportToWriter(r.Context(), w); err != nil {
		w.Header().Del("Content-Disposition")
		respondWithServiceError(w, "Error exporting progress", err)
		return
	}
}

// ImportProgress replaces the record with an uploaded backup
func (h *ProgressHandler) ImportProgress(w http.ResponseWriter, r *http.Request) {
	if !h.debug {
		respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := h.backup.ImportFromReader(r.Context(), body); err != nil {
		respondWithServiceError(w, "Error importing progress", err)
		return
	}
	log.Printf("[DEBUG] Progress imported via API (request %s)", GetRequestID(r.Context()))
	h.GetProgress(w, r)
}

// ListStickers returns the sticker album with unlocked flags. Unlocked ids
// that are not in the album are listed under "unlocked" only.
func (h *ProgressHandler) ListStickers(w http.ResponseWriter, r *http.Request) {
	unlocked, err := h.progress.GetUnlockedStickers(r.Context())
	if err != nil {
		respondWithServiceError(w, "Error loading stickers", err)
		return
	}

	owned := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		owned[id] = true
	}

	album := make([]stickerView, 0, len(models.Stickers))
	for _, sticker := range models.Stickers {
		album = append(album, stickerView{Sticker: sticker, Unlocked: owned[sticker.ID]})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stickers": album,
		"unlocked": unlocked,
	})
}

// UnlockSticker unlocks one sticker
func (h *ProgressHandler) UnlockSticker(w http.ResponseWriter, r *http.Request) {
	stickerID := r.PathValue("stickerId")

	isNew, err := h.progress.UnlockSticker(r.Context(), stickerID)
	if err != nil {
		respondWithServiceError(w, "Error unlocking sticker", err)
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	respondJSON(w, status, map[string]interface{}{
		"stickerId":     stickerID,
		"newlyUnlocked": isNew,
	})
}

// GetSettings returns the settings toggles
func (h *ProgressHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.progress.GetSettings(r.Context())
	if err != nil {
		respondWithServiceError(w, "Error loading settings", err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings merges the toggles present in the body
func (h *ProgressHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update models.SettingsUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		respondWithServiceError(w, ErrInvalidRequestBody, err)
		return
	}

	if err := h.progress.UpdateSettings(r.Context(), update); err != nil {
		respondWithServiceError(w, "Error updating settings", err)
		return
	}
	h.GetSettings(w, r)
}

// GetDailyWord returns today's daily word state. With ?questions=n it also
// returns the index of today's question.
func (h *ProgressHandler) GetDailyWord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view := dailyWordView{Date: utils.Today(h.progress)}

	if raw := r.URL.Query().Get("questions"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondWithServiceError(w, "", validation.ValidationError{Field: "questions", Message: "questions must be a positive number"})
			return
		}
		index := service.DailyQuestionIndex(h.progress.Now(), n)
		view.QuestionIndex = &index
	}

	var err error
	if view.Completed, view.Streak, err = h.progress.DailyWordStatus(ctx); err != nil {
		respondWithServiceError(w, "Error loading daily word", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// CompleteDailyWord marks today's daily word as done
func (h *ProgressHandler) CompleteDailyWord(w http.ResponseWriter, r *http.Request) {
	if err := h.progress.CompleteDailyWord(r.Context()); err != nil {
		respondWithServiceError(w, "Error completing daily word", err)
		return
	}
	h.GetDailyWord(w, r)
}

// ListCategories returns the category catalog with the best result of each
func (h *ProgressHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progress.GetProgress(r.Context())
	if err != nil {
		respondWithServiceError(w, "Error loading progress", err)
		return
	}

	categories := make([]categoryView, 0, len(models.Categories))
	for _, category := range models.Categories {
		categories = append(categories, categoryView{
			Category: category,
			Progress: progress.CategoryProgress[category.ID],
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
