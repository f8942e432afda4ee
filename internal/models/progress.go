package models

import (
	"slices"
)

const (
	// DefaultTotalScore is the score a fresh profile starts with
	DefaultTotalScore = 120

	// MaxStars is the best possible result for a category
	MaxStars = 3
)

// DefaultStickers are unlocked for every new profile
var DefaultStickers = []string{StickerWelcome, StickerFirstStar}

// UserProgress is the complete progress record of the single app user.
// Field names in JSON/BSON match the persisted layout.
type UserProgress struct {
	TotalScore       int                         `json:"totalScore" bson:"totalScore" validate:"min=0"`
	TotalStars       int                         `json:"totalStars" bson:"totalStars" validate:"min=0"`
	LevelsCompleted  []string                    `json:"levelsCompleted" bson:"levelsCompleted" validate:"unique,dive,required"`
	CategoryProgress map[string]CategoryProgress `json:"categoryProgress" bson:"categoryProgress" validate:"dive,keys,required,endkeys"`
	UnlockedStickers []string                    `json:"unlockedStickers" bson:"unlockedStickers" validate:"unique,dive,required"`
	Settings         Settings                    `json:"settings" bson:"settings"`
	DailyWord        DailyWord                   `json:"dailyWord" bson:"dailyWord"`
}

// CategoryProgress is the best known result for one category
type CategoryProgress struct {
	Completed bool `json:"completed" bson:"completed"`
	Stars     int  `json:"stars" bson:"stars" validate:"min=0,max=3"`
	BestScore int  `json:"bestScore" bson:"bestScore" validate:"min=0"`
}

// Settings holds the user preference toggles
type Settings struct {
	Music   bool `json:"music" bson:"music"`
	Sounds  bool `json:"sounds" bson:"sounds"`
	Haptics bool `json:"haptics" bson:"haptics"`
}

// SettingsUpdate is a partial settings change; nil fields are left alone
type SettingsUpdate struct {
	Music   *bool `json:"music,omitempty"`
	Sounds  *bool `json:"sounds,omitempty"`
	Haptics *bool `json:"haptics,omitempty"`
}

// DailyWord tracks the daily challenge. Date is YYYY-MM-DD or empty.
type DailyWord struct {
	Date      string `json:"date" bson:"date" validate:"omitempty,calendardate"`
	Completed bool   `json:"completed" bson:"completed"`
	Streak    int    `json:"streak" bson:"streak" validate:"min=0"`
}

// DefaultProgress builds the record a new (or reset) profile starts from
func DefaultProgress() *UserProgress {
	return &UserProgress{
		TotalScore:       DefaultTotalScore,
		TotalStars:       0,
		LevelsCompleted:  []string{},
		CategoryProgress: map[string]CategoryProgress{},
		UnlockedStickers: slices.Clone(DefaultStickers),
		Settings: Settings{
			Music:   true,
			Sounds:  true,
			Haptics: true,
		},
		DailyWord: DailyWord{},
	}
}

// Clone returns a deep copy so callers never share maps or slices with the store
func (p *UserProgress) Clone() *UserProgress {
	if p == nil {
		return nil
	}
	clone := *p
	clone.LevelsCompleted = cloneStrings(p.LevelsCompleted)
	clone.UnlockedStickers = cloneStrings(p.UnlockedStickers)
	clone.CategoryProgress = make(map[string]CategoryProgress, len(p.CategoryProgress))
	for id, cp := range p.CategoryProgress {
		clone.CategoryProgress[id] = cp
	}
	return &clone
}

// Normalize fills nil collections left by decoders that drop empty values
func (p *UserProgress) Normalize() {
	if p.LevelsCompleted == nil {
		p.LevelsCompleted = []string{}
	}
	if p.UnlockedStickers == nil {
		p.UnlockedStickers = []string{}
	}
	if p.CategoryProgress == nil {
		p.CategoryProgress = map[string]CategoryProgress{}
	}
}

// HasSticker reports whether a sticker has been unlocked
func (p *UserProgress) HasSticker(stickerID string) bool {
	return slices.Contains(p.UnlockedStickers, stickerID)
}

// Apply merges a partial settings change into s
func (s Settings) Apply(update SettingsUpdate) Settings {
	if update.Music != nil {
		s.Music = *update.Music
	}
	if update.Sounds != nil {
		s.Sounds = *update.Sounds
	}
	if update.Haptics != nil {
		s.Haptics = *update.Haptics
	}
	return s
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
