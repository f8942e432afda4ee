package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"wordquiz/internal/models"
	"wordquiz/internal/validation"
)

// LevelResult is the outcome of a finished level
type LevelResult struct {
	CategoryID  string   `json:"categoryId"`
	Score       int      `json:"score"`
	Stars       int      `json:"stars"`
	Correct     int      `json:"correct"`
	Answered    int      `json:"answered"`
	TotalScore  int      `json:"totalScore"`
	NewStickers []string `json:"newStickers"`
}

// DailyWordResult is the outcome of a daily word answer
type DailyWordResult struct {
	Correct       bool     `json:"correct"`
	AlreadyPlayed bool     `json:"alreadyPlayed"`
	PointsEarned  int      `json:"pointsEarned"`
	Streak        int      `json:"streak"`
	NewStickers   []string `json:"newStickers"`
}

// GameService applies the reward rules of a level and of the daily word on
// top of the progress store
type GameService struct {
	progress *ProgressService
}

// NewGameService creates a new game service
func NewGameService(progress *ProgressService) *GameService {
	return &GameService{progress: progress}
}

// FinishLevel scores a completed level from its answers in order, records the
// category result and unlocks the earned stickers
func (s *GameService) FinishLevel(ctx context.Context, categoryID string, answers []bool) (*LevelResult, error) {
	if err := validation.ValidateID("categoryId", categoryID); err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, validation.ValidationError{Field: "answers", Message: "at least one answer is required"}
	}

	run := models.NewLevelRun(categoryID)
	for _, correct := range answers {
		run.Answer(correct)
	}

	if err := s.progress.RecordCategoryResult(ctx, categoryID, run.Stars, run.Score); err != nil {
		return nil, fmt.Errorf("failed to record level result: %w", err)
	}

	result := &LevelResult{
		CategoryID:  categoryID,
		Score:       run.Score,
		Stars:       run.Stars,
		Correct:     run.Correct,
		Answered:    run.Answered,
		NewStickers: []string{},
	}

	rewards := []string{}
	if run.IsPerfect() {
		rewards = append(rewards, models.StickerPerfectScore)
	}
	if category := models.CategoryByID(categoryID); category != nil {
		rewards = append(rewards, category.StickerID)
	}
	unlocked, err := s.unlockAll(ctx, rewards)
	if err != nil {
		return nil, err
	}
	result.NewStickers = append(result.NewStickers, unlocked...)

	progress, err := s.progress.GetProgress(ctx)
	if err != nil {
		return nil, err
	}
	if progress.TotalScore >= models.ScoreMilestone {
		unlocked, err := s.unlockAll(ctx, []string{models.StickerScore500})
		if err != nil {
			return nil, err
		}
		result.NewStickers = append(result.NewStickers, unlocked...)
	}
	result.TotalScore = progress.TotalScore

	log.Printf("Level finished: category=%s score=%d stars=%d new_stickers=%v", categoryID, run.Score, run.Stars, result.NewStickers)
	return result, nil
}

// dailyStreakStickers maps the streaks that earn a sticker
var dailyStreakStickers = map[int]string{
	3: models.StickerDailyStreak3,
	7: models.StickerDailyStreak7,
}

// SubmitDailyWord handles an answer to today's daily word. A correct answer
// completes the daily word, earns points and may unlock a streak sticker in
// a single store update. Wrong answers and repeats on the same day change
// nothing.
func (s *GameService) SubmitDailyWord(ctx context.Context, correct bool) (*DailyWordResult, error) {
	result := &DailyWordResult{Correct: correct, NewStickers: []string{}}

	if !correct {
		completed, streak, err := s.progress.DailyWordStatus(ctx)
		if err != nil {
			return nil, err
		}
		result.AlreadyPlayed = completed
		result.Streak = streak
		return result, nil
	}

	reward, err := s.progress.CompleteDailyWordWithReward(ctx, models.DailyWordPoints, dailyStreakStickers)
	if err != nil {
		return nil, fmt.Errorf("failed to complete daily word: %w", err)
	}

	result.Streak = reward.Streak
	if !reward.Completed {
		result.AlreadyPlayed = true
		return result, nil
	}

	result.PointsEarned = models.DailyWordPoints
	result.NewStickers = append(result.NewStickers, reward.NewStickers...)

	log.Printf("Daily word completed: streak=%d", result.Streak)
	return result, nil
}

// unlockAll unlocks ids in order and returns the ones that were new
func (s *GameService) unlockAll(ctx context.Context, ids []string) ([]string, error) {
	var unlocked []string
	for _, id := range ids {
		isNew, err := s.progress.UnlockSticker(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to unlock sticker %s: %w", id, err)
		}
		if isNew {
			unlocked = append(unlocked, id)
		}
	}
	return unlocked, nil
}

// DailyQuestionIndex picks the daily word question for a date out of n
// questions: the day of the month modulo n
func DailyQuestionIndex(date time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	return date.Day() % n
}
