package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"wordquiz/internal/metrics"
	"wordquiz/internal/models"
	"wordquiz/internal/repository"
	"wordquiz/internal/utils"
	"wordquiz/internal/validation"
)

// errUnchanged lets an update function report that the record needs no save
var errUnchanged = errors.New("progress unchanged")

// ProgressService owns the progress record of the app user. Calls are
// serialized; the record is loaded from the repository on first use and
// every change is saved before it becomes visible.
type ProgressService struct {
	repo  repository.ProgressRepository
	clock utils.Clock

	mu       sync.Mutex
	progress *models.UserProgress
}

// NewProgressService creates a progress service over repo. A nil clock uses
// the system clock in local time.
func NewProgressService(repo repository.ProgressRepository, clock utils.Clock) *ProgressService {
	if clock == nil {
		clock = utils.NewSystemClock(nil)
	}
	return &ProgressService{
		repo:  repo,
		clock: clock,
	}
}

// Now returns the time of the service clock
func (s *ProgressService) Now() time.Time {
	return s.clock.Now()
}

// current returns the cached record, loading it on first use. Caller holds s.mu.
func (s *ProgressService) current(ctx context.Context) (*models.UserProgress, error) {
	if s.progress != nil {
		return s.progress, nil
	}

	progress, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.progress = progress
	case errors.Is(err, repository.ErrNotFound):
		s.progress = models.DefaultProgress()
	case errors.Is(err, repository.ErrCorruptState):
		log.Printf("Warning: stored progress is unreadable, starting from defaults: %v", err)
		metrics.CorruptStateRecoveries.Inc()
		s.progress = models.DefaultProgress()
	default:
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return s.progress, nil
}

// update applies fn to a copy of the record, saves the copy and only then
// makes it current. If fn or the save fails the record is left untouched.
func (s *ProgressService) update(ctx context.Context, op string, fn func(p *models.UserProgress) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.current(ctx)
	if err != nil {
		metrics.TrackProgressOperation(op, "error")
		return err
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, errUnchanged) {
			metrics.TrackProgressOperation(op, "ok")
			return nil
		}
		metrics.TrackProgressOperation(op, "invalid")
		return err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		metrics.TrackProgressOperation(op, "error")
		return fmt.Errorf("failed to save progress: %w", err)
	}

	s.progress = next
	metrics.TrackProgressOperation(op, "ok")
	return nil
}

// read runs fn against the current record while holding the lock
func (s *ProgressService) read(ctx context.Context, fn func(p *models.UserProgress)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.current(ctx)
	if err != nil {
		return err
	}
	fn(current)
	return nil
}

// GetProgress returns a copy of the full record
func (s *ProgressService) GetProgress(ctx context.Context) (*models.UserProgress, error) {
	var snapshot *models.UserProgress
	err := s.read(ctx, func(p *models.UserProgress) {
		snapshot = p.Clone()
	})
	return snapshot, err
}

// AddScore adds points to the total score. Negative points are rejected.
func (s *ProgressService) AddScore(ctx context.Context, points int) error {
	if err := validation.ValidatePoints(points); err != nil {
		metrics.TrackProgressOperation("add_score", "invalid")
		return err
	}

	return s.update(ctx, "add_score", func(p *models.UserProgress) error {
		p.TotalScore += points
		return nil
	})
}

// RecordCategoryResult marks a category completed and keeps the best stars
// and score seen for it. TotalStars grows by the stars of every call, so
// replaying a category counts its stars again.
func (s *ProgressService) RecordCategoryResult(ctx context.Context, categoryID string, stars, score int) error {
	if err := validation.ValidateCategoryResult(categoryID, stars, score); err != nil {
		metrics.TrackProgressOperation("record_category", "invalid")
		return err
	}

	return s.update(ctx, "record_category", func(p *models.UserProgress) error {
		existing := p.CategoryProgress[categoryID]
		p.CategoryProgress[categoryID] = models.CategoryProgress{
			Completed: true,
			Stars:     max(existing.Stars, stars),
			BestScore: max(existing.BestScore, score),
		}

		if !slices.Contains(p.LevelsCompleted, categoryID) {
			p.LevelsCompleted = append(p.LevelsCompleted, categoryID)
		}

		p.TotalStars += stars
		return nil
	})
}

// UnlockSticker adds a sticker to the collection. It reports whether the
// sticker was newly unlocked; unlocking an owned sticker changes nothing.
func (s *ProgressService) UnlockSticker(ctx context.Context, stickerID string) (bool, error) {
	if err := validation.ValidateID("stickerId", stickerID); err != nil {
		metrics.TrackProgressOperation("unlock_sticker", "invalid")
		return false, err
	}

	unlocked := false
	err := s.update(ctx, "unlock_sticker", func(p *models.UserProgress) error {
		if p.HasSticker(stickerID) {
			return errUnchanged
		}
		p.UnlockedStickers = append(p.UnlockedStickers, stickerID)
		unlocked = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if unlocked {
		metrics.StickersUnlockedTotal.WithLabelValues(stickerID).Inc()
		log.Printf("Sticker unlocked: %s", stickerID)
	}
	return unlocked, nil
}

// GetUnlockedStickers returns a copy of the unlocked sticker ids
func (s *ProgressService) GetUnlockedStickers(ctx context.Context) ([]string, error) {
	var stickers []string
	err := s.read(ctx, func(p *models.UserProgress) {
		stickers = slices.Clone(p.UnlockedStickers)
	})
	return stickers, err
}

// UpdateSettings merges the provided settings; nil fields keep their value
func (s *ProgressService) UpdateSettings(ctx context.Context, update models.SettingsUpdate) error {
	return s.update(ctx, "update_settings", func(p *models.UserProgress) error {
		p.Settings = p.Settings.Apply(update)
		return nil
	})
}

// GetSettings returns the current settings
func (s *ProgressService) GetSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.read(ctx, func(p *models.UserProgress) {
		settings = p.Settings
	})
	return settings, err
}

// CompleteDailyWord records today's daily word. The streak grows when the
// previous completion was yesterday and restarts at 1 otherwise. A second
// completion on the same day is a no-op.
func (s *ProgressService) CompleteDailyWord(ctx context.Context) error {
	today, yesterday := utils.Days(s.clock)

	return s.update(ctx, "complete_daily_word", func(p *models.UserProgress) error {
		if !advanceDailyWord(p, today, yesterday) {
			return errUnchanged
		}
		return nil
	})
}

// DailyReward is what a rewarded daily word completion changed
type DailyReward struct {
	// Completed is false when today's daily word was already done
	Completed   bool
	Streak      int
	NewStickers []string
}

// CompleteDailyWordWithReward completes today's daily word, adds points and
// unlocks the sticker streakStickers lists for the new streak, all in one
// save. A repeat on the same day changes nothing.
func (s *ProgressService) CompleteDailyWordWithReward(ctx context.Context, points int, streakStickers map[int]string) (*DailyReward, error) {
	if err := validation.ValidatePoints(points); err != nil {
		metrics.TrackProgressOperation("daily_reward", "invalid")
		return nil, err
	}

	today, yesterday := utils.Days(s.clock)
	reward := &DailyReward{NewStickers: []string{}}

	err := s.update(ctx, "daily_reward", func(p *models.UserProgress) error {
		reward.Streak = p.DailyWord.Streak
		if !advanceDailyWord(p, today, yesterday) {
			return errUnchanged
		}

		p.TotalScore += points
		if id, ok := streakStickers[p.DailyWord.Streak]; ok && !p.HasSticker(id) {
			p.UnlockedStickers = append(p.UnlockedStickers, id)
			reward.NewStickers = append(reward.NewStickers, id)
		}
		reward.Streak = p.DailyWord.Streak
		reward.Completed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range reward.NewStickers {
		metrics.StickersUnlockedTotal.WithLabelValues(id).Inc()
		log.Printf("Sticker unlocked: %s", id)
	}
	return reward, nil
}

// advanceDailyWord marks today as completed and moves the streak. It reports
// false when today was already completed.
func advanceDailyWord(p *models.UserProgress, today, yesterday string) bool {
	if p.DailyWord.Date == today {
		return false
	}

	if p.DailyWord.Date == yesterday {
		p.DailyWord.Streak++
	} else {
		p.DailyWord.Streak = 1
	}
	p.DailyWord.Date = today
	p.DailyWord.Completed = true
	return true
}

// IsDailyWordCompleted reports whether the daily word was completed today
func (s *ProgressService) IsDailyWordCompleted(ctx context.Context) (bool, error) {
	completed, _, err := s.DailyWordStatus(ctx)
	return completed, err
}

// DailyWordStatus reports today's completion and the streak from one read
func (s *ProgressService) DailyWordStatus(ctx context.Context) (completed bool, streak int, err error) {
	today := utils.Today(s.clock)

	err = s.read(ctx, func(p *models.UserProgress) {
		completed = p.DailyWord.Date == today && p.DailyWord.Completed
		streak = p.DailyWord.Streak
	})
	return completed, streak, err
}

// GetDailyWordStreak returns the streak as of the last completion. A broken
// streak is only reset by the next completion.
func (s *ProgressService) GetDailyWordStreak(ctx context.Context) (int, error) {
	var streak int
	err := s.read(ctx, func(p *models.UserProgress) {
		streak = p.DailyWord.Streak
	})
	return streak, err
}

// ResetProgress replaces the record with the defaults
func (s *ProgressService) ResetProgress(ctx context.Context) error {
	err := s.update(ctx, "reset", func(p *models.UserProgress) error {
		*p = *models.DefaultProgress()
		return nil
	})
	if err == nil {
		log.Println("Progress reset to defaults")
	}
	return err
}

// ReplaceProgress validates and stores a complete record, as used by imports
func (s *ProgressService) ReplaceProgress(ctx context.Context, progress *models.UserProgress) error {
	if err := validation.Progress(progress); err != nil {
		metrics.TrackProgressOperation("replace", "invalid")
		return err
	}

	return s.update(ctx, "replace", func(p *models.UserProgress) error {
		*p = *progress.Clone()
		return nil
	})
}
