package models

const (
	// PointsPerCorrectAnswer is awarded for each correct quiz answer
	PointsPerCorrectAnswer = 50

	// DailyWordPoints is awarded for solving the daily word
	DailyWordPoints = 100

	// ScoreMilestone unlocks StickerScore500
	ScoreMilestone = 500
)

// LevelRun tracks one play-through of a category.
// It starts with full stars; each wrong answer costs one star.
type LevelRun struct {
	CategoryID string
	Score      int
	Stars      int
	Correct    int
	Answered   int
}

// NewLevelRun starts a level attempt
func NewLevelRun(categoryID string) *LevelRun {
	return &LevelRun{
		CategoryID: categoryID,
		Stars:      MaxStars,
	}
}

// Answer records one answer
func (r *LevelRun) Answer(correct bool) {
	r.Answered++
	if correct {
		r.Correct++
		r.Score += PointsPerCorrectAnswer
		return
	}
	if r.Stars > 0 {
		r.Stars--
	}
}

// IsPerfect reports whether no star was lost
func (r *LevelRun) IsPerfect() bool {
	return r.Stars == MaxStars
}
