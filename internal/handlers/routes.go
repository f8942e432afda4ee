package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the API mux wrapped in the logging middleware
func Routes(progress *ProgressHandler, game *GameHandler, middleware *Middleware) http.Handler {
	mux := http.NewServeMux()

	// Progress store
	mux.HandleFunc("GET /api/progress", progress.GetProgress)
	mux.HandleFunc("POST /api/progress/score", middleware.RateLimit(progress.AddScore))
	mux.HandleFunc("POST /api/progress/categories/{categoryId}", middleware.RateLimit(progress.RecordCategoryResult))
	mux.HandleFunc("POST /api/progress/reset", middleware.RateLimit(progress.ResetProgress))
	mux.HandleFunc("GET /api/progress/export", progress.ExportProgress)
	mux.HandleFunc("POST /api/progress/import", middleware.RateLimit(progress.ImportProgress))
	mux.HandleFunc("GET /api/stickers", progress.ListStickers)
	mux.HandleFunc("POST /api/stickers/{stickerId}", middleware.RateLimit(progress.UnlockSticker))
	mux.HandleFunc("GET /api/settings", progress.GetSettings)
	mux.HandleFunc("PATCH /api/settings", middleware.RateLimit(progress.UpdateSettings))
	mux.HandleFunc("GET /api/daily-word", progress.GetDailyWord)
	mux.HandleFunc("POST /api/daily-word/complete", middleware.RateLimit(progress.CompleteDailyWord))
	mux.HandleFunc("GET /api/categories", progress.ListCategories)

	// Game rules
	mux.HandleFunc("POST /api/game/levels/{categoryId}", middleware.RateLimit(game.FinishLevel))
	mux.HandleFunc("POST /api/game/daily-word", middleware.RateLimit(game.SubmitDailyWord))
	mux.HandleFunc("POST /api/game/answer", game.AnswerFeedback)

	// Operations
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", Health)

	return Logging(mux)
}
