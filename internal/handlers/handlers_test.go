package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wordquiz/internal/models"
	"wordquiz/internal/repository"
	"wordquiz/internal/security"
	"wordquiz/internal/service"
	"wordquiz/internal/utils"
)

// failingSaveRepository loads normally but refuses every write
type failingSaveRepository struct {
	*repository.MemoryProgressRepository
}

func (r failingSaveRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	return repository.ErrStorageUnavailable
}

type testServer struct {
	handler http.Handler
	clock   *utils.FixedClock
}

func newTestServer(t *testing.T, repo repository.ProgressRepository, debug bool, rateLimit int) *testServer {
	t.Helper()

	clock := &utils.FixedClock{Time: time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)}
	progress := service.NewProgressService(repo, clock)
	limiter := security.NewRateLimiter(rateLimit, time.Minute)
	t.Cleanup(limiter.Stop)

	handler := Routes(
		NewProgressHandler(progress, service.NewBackupService(progress, "default"), debug),
		NewGameHandler(service.NewGameService(progress), service.NewFeedbackService(progress)),
		NewMiddleware(limiter),
	)
	return &testServer{handler: handler, clock: clock}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.10:4000"
	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(recorder.Body.Bytes())).Decode(dst); err != nil {
		t.Fatalf("failed to decode %q: %v", recorder.Body.String(), err)
	}
}

func TestProgressEndpoints(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)

	rec := srv.do(t, "GET", "/api/progress", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/progress status = %d", rec.Code)
	}
	var progress models.UserProgress
	decodeBody(t, rec, &progress)
	if progress.TotalScore != 120 || len(progress.UnlockedStickers) != 2 {
		t.Errorf("default progress = %+v", progress)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response is missing a request id")
	}

	rec = srv.do(t, "POST", "/api/progress/score", `{"points": 50}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST score status = %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &progress)
	if progress.TotalScore != 170 {
		t.Errorf("TotalScore = %d, want 170", progress.TotalScore)
	}

	srv.do(t, "POST", "/api/progress/categories/synonyms", `{"stars": 2, "score": 50}`)
	rec = srv.do(t, "POST", "/api/progress/categories/synonyms", `{"stars": 1, "score": 80}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST category status = %d: %s", rec.Code, rec.Body.String())
	}
	progress = models.UserProgress{}
	decodeBody(t, rec, &progress)
	want := models.CategoryProgress{Completed: true, Stars: 2, BestScore: 80}
	if got := progress.CategoryProgress["synonyms"]; got != want {
		t.Errorf("synonyms = %+v, want %+v", got, want)
	}
}

func TestRequestValidation(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)

	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		wantField string
	}{
		{name: "missing points", method: "POST", path: "/api/progress/score", body: `{}`, wantField: "points"},
		{name: "negative points", method: "POST", path: "/api/progress/score", body: `{"points": -5}`, wantField: "points"},
		{name: "not json", method: "POST", path: "/api/progress/score", body: `points=5`, wantField: "body"},
		{name: "unknown field", method: "POST", path: "/api/progress/score", body: `{"points": 5, "bonus": 1}`, wantField: "body"},
		{name: "too many stars", method: "POST", path: "/api/progress/categories/space", body: `{"stars": 4, "score": 1}`, wantField: "stars"},
		{name: "missing score", method: "POST", path: "/api/progress/categories/space", body: `{"stars": 1}`, wantField: "score"},
		{name: "no answers", method: "POST", path: "/api/game/levels/space", body: `{"answers": []}`, wantField: "answers"},
		{name: "missing correct", method: "POST", path: "/api/game/daily-word", body: `{}`, wantField: "correct"},
		{name: "bad question count", method: "GET", path: "/api/daily-word?questions=zero", wantField: "questions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
			var body errorResponse
			decodeBody(t, rec, &body)
			if body.Field != tt.wantField {
				t.Errorf("field = %q, want %q (%s)", body.Field, tt.wantField, body.Error)
			}
		})
	}
}

func TestStickerEndpoints(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)

	rec := srv.do(t, "POST", "/api/stickers/perfect_score", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("first unlock status = %d, want 201", rec.Code)
	}
	rec = srv.do(t, "POST", "/api/stickers/perfect_score", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat unlock status = %d, want 200", rec.Code)
	}

	rec = srv.do(t, "GET", "/api/stickers", "")
	var body struct {
		Stickers []stickerView `json:"stickers"`
		Unlocked []string      `json:"unlocked"`
	}
	decodeBody(t, rec, &body)

	if len(body.Stickers) != len(models.Stickers) {
		t.Errorf("album has %d stickers, want %d", len(body.Stickers), len(models.Stickers))
	}
	if len(body.Unlocked) != 3 {
		t.Errorf("unlocked = %v, want 3 ids", body.Unlocked)
	}
	for _, s := range body.Stickers {
		wantUnlocked := s.ID == "welcome" || s.ID == "first_star" || s.ID == "perfect_score"
		if s.Unlocked != wantUnlocked {
			t.Errorf("sticker %s unlocked = %v, want %v", s.ID, s.Unlocked, wantUnlocked)
		}
	}
}

func TestSettingsEndpoints(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)

	rec := srv.do(t, "PATCH", "/api/settings", `{"haptics": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d: %s", rec.Code, rec.Body.String())
	}
	var settings models.Settings
	decodeBody(t, rec, &settings)
	if settings != (models.Settings{Music: true, Sounds: true, Haptics: false}) {
		t.Errorf("settings = %+v", settings)
	}

	rec = srv.do(t, "POST", "/api/game/answer", `{"correct": true}`)
	var feedback service.Feedback
	decodeBody(t, rec, &feedback)
	if feedback != (service.Feedback{Sound: service.FeedbackSuccess}) {
		t.Errorf("feedback = %+v, want sound only", feedback)
	}
}

func TestDailyWordEndpoints(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)

	rec := srv.do(t, "GET", "/api/daily-word?questions=5", "")
	var view dailyWordView
	decodeBody(t, rec, &view)
	if view.Date != "2026-10-19" || view.Completed || view.Streak != 0 {
		t.Errorf("initial daily word = %+v", view)
	}
	if view.QuestionIndex == nil || *view.QuestionIndex != 4 {
		t.Errorf("questionIndex = %v, want 4", view.QuestionIndex)
	}

	rec = srv.do(t, "POST", "/api/game/daily-word", `{"correct": true}`)
	var result service.DailyWordResult
	decodeBody(t, rec, &result)
	if result.PointsEarned != 100 || result.Streak != 1 {
		t.Errorf("daily word result = %+v", result)
	}

	srv.clock.AddDays(1)
	rec = srv.do(t, "POST", "/api/daily-word/complete", "")
	view = dailyWordView{}
	decodeBody(t, rec, &view)
	if !view.Completed || view.Streak != 2 || view.Date != "2026-10-20" {
		t.Errorf("after completing next day = %+v", view)
	}
}

func TestFinishLevelEndpoint(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)

	rec := srv.do(t, "POST", "/api/game/levels/space", `{"answers": [true, true, true]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var result service.LevelResult
	decodeBody(t, rec, &result)
	if result.Score != 150 || result.Stars != 3 {
		t.Errorf("result = %+v", result)
	}
	if len(result.NewStickers) != 2 {
		t.Errorf("NewStickers = %v, want perfect_score and space_explorer", result.NewStickers)
	}

	rec = srv.do(t, "GET", "/api/categories", "")
	var body struct {
		Categories []categoryView `json:"categories"`
	}
	decodeBody(t, rec, &body)
	for _, c := range body.Categories {
		if c.ID == "space" && c.Progress.Stars != 3 {
			t.Errorf("space progress = %+v", c.Progress)
		}
		if c.ID != "space" && c.Progress.Completed {
			t.Errorf("category %s should not be completed", c.ID)
		}
	}
}

func TestResetRequiresDebug(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)
	if rec := srv.do(t, "POST", "/api/progress/reset", ""); rec.Code != http.StatusNotFound {
		t.Errorf("reset without debug status = %d, want 404", rec.Code)
	}

	debugSrv := newTestServer(t, repository.NewMemoryProgressRepository(), true, 0)
	debugSrv.do(t, "POST", "/api/progress/score", `{"points": 30}`)
	rec := debugSrv.do(t, "POST", "/api/progress/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset with debug status = %d", rec.Code)
	}
	var progress models.UserProgress
	decodeBody(t, rec, &progress)
	if progress.TotalScore != 120 {
		t.Errorf("TotalScore after reset = %d, want 120", progress.TotalScore)
	}
}

func TestStorageUnavailableIs503(t *testing.T) {
	repo := failingSaveRepository{repository.NewMemoryProgressRepository()}
	srv := newTestServer(t, repo, false, 0)

	rec := srv.do(t, "POST", "/api/progress/score", `{"points": 10}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	rec = srv.do(t, "GET", "/api/progress", "")
	var progress models.UserProgress
	decodeBody(t, rec, &progress)
	if progress.TotalScore != 120 {
		t.Errorf("failed write changed TotalScore to %d", progress.TotalScore)
	}
}

func TestRateLimitOnWrites(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 2)

	for i := 0; i < 2; i++ {
		if rec := srv.do(t, "POST", "/api/progress/score", `{"points": 1}`); rec.Code != http.StatusOK {
			t.Fatalf("write %d status = %d", i+1, rec.Code)
		}
	}
	if rec := srv.do(t, "POST", "/api/progress/score", `{"points": 1}`); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third write status = %d, want 429", rec.Code)
	}
	if rec := srv.do(t, "GET", "/api/progress", ""); rec.Code != http.StatusOK {
		t.Fatalf("reads are not limited, got %d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)

	rec := srv.do(t, "GET", "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d", rec.Code)
	}
	var health map[string]interface{}
	decodeBody(t, rec, &health)
	if health["status"] != "ok" {
		t.Errorf("health = %v", health)
	}

	srv.do(t, "GET", "/api/progress", "")
	rec = srv.do(t, "GET", "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	for _, name := range []string{"wordquiz_http_requests_total", "wordquiz_http_requests_by_platform_total", "wordquiz_host_memory_used_percent"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Errorf("metrics output is missing %s", name)
		}
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)
	if rec := srv.do(t, "GET", "/api/nothing", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	source := newTestServer(t, repository.NewMemoryProgressRepository(), false, 0)
	source.do(t, "POST", "/api/progress/score", `{"points": 80}`)

	rec := source.do(t, "GET", "/api/progress/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment; filename=wordquiz_backup_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	backup := rec.Body.String()

	if rec := source.do(t, "POST", "/api/progress/import", backup); rec.Code != http.StatusNotFound {
		t.Errorf("import without debug status = %d, want 404", rec.Code)
	}

	target := newTestServer(t, repository.NewMemoryProgressRepository(), true, 0)
	rec = target.do(t, "POST", "/api/progress/import", backup)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body.String())
	}
	var progress models.UserProgress
	decodeBody(t, rec, &progress)
	if progress.TotalScore != 200 {
		t.Errorf("imported TotalScore = %d, want 200", progress.TotalScore)
	}

	if rec := target.do(t, "POST", "/api/progress/import", `{"version":"1.0"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad import status = %d, want 400", rec.Code)
	}
}
