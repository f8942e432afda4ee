package models

// Sticker ids referenced by the reward rules
const (
	StickerWelcome      = "welcome"
	StickerFirstStar    = "first_star"
	StickerPerfectScore = "perfect_score"
	StickerScore500     = "score_500"
	StickerDailyStreak3 = "daily_streak_3"
	StickerDailyStreak7 = "daily_streak_7"
)

// Sticker is a collectible achievement
type Sticker struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Emoji           string `json:"emoji"`
	Description     string `json:"description"`
	UnlockCondition string `json:"unlockCondition"`
}

// Category is a themed quiz unit
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	Color     string `json:"color"`
	StickerID string `json:"stickerId"`
}

// Categories lists the quiz categories in display order
var Categories = []Category{
	{ID: "synonyms", Name: "Synonyms", Emoji: "🔤", Color: "#4DD9E8", StickerID: "synonym_master"},
	{ID: "opposites", Name: "Opposites", Emoji: "↔️", Color: "#6BCB77", StickerID: "opposite_guru"},
	{ID: "riddles", Name: "Riddles", Emoji: "🧩", Color: "#FFD93D", StickerID: "riddle_solver"},
	{ID: "spelling", Name: "Spelling", Emoji: "🐝", Color: "#4D96FF", StickerID: "spelling_bee"},
	{ID: "animals", Name: "Animals", Emoji: "🦁", Color: "#6BCB77", StickerID: "animal_friend"},
	{ID: "space", Name: "Space", Emoji: "🚀", Color: "#FFD93D", StickerID: "space_explorer"},
}

// Stickers lists every sticker in album order
var Stickers = []Sticker{
	{ID: StickerWelcome, Name: "Welcome!", Emoji: "👋", Description: "You joined the word adventure", UnlockCondition: "Open the app"},
	{ID: StickerFirstStar, Name: "First Star", Emoji: "⭐", Description: "Your very first star", UnlockCondition: "Earn a star"},
	{ID: StickerPerfectScore, Name: "Perfect!", Emoji: "💯", Description: "Finished a level with 3 stars", UnlockCondition: "Finish a level without a mistake"},
	{ID: StickerScore500, Name: "High Scorer", Emoji: "🏆", Description: "Reached 500 points", UnlockCondition: "Reach 500 total points"},
	{ID: StickerDailyStreak3, Name: "On Fire", Emoji: "🔥", Description: "3 daily words in a row", UnlockCondition: "Complete the daily word 3 days in a row"},
	{ID: StickerDailyStreak7, Name: "Word Week", Emoji: "📅", Description: "7 daily words in a row", UnlockCondition: "Complete the daily word 7 days in a row"},
	{ID: "synonym_master", Name: "Synonym Master", Emoji: "🔤", Description: "Completed Synonyms", UnlockCondition: "Finish the Synonyms level"},
	{ID: "opposite_guru", Name: "Opposite Guru", Emoji: "↔️", Description: "Completed Opposites", UnlockCondition: "Finish the Opposites level"},
	{ID: "riddle_solver", Name: "Riddle Solver", Emoji: "🧩", Description: "Completed Riddles", UnlockCondition: "Finish the Riddles level"},
	{ID: "spelling_bee", Name: "Spelling Bee", Emoji: "🐝", Description: "Completed Spelling", UnlockCondition: "Finish the Spelling level"},
	{ID: "animal_friend", Name: "Animal Friend", Emoji: "🦁", Description: "Completed Animals", UnlockCondition: "Finish the Animals level"},
	{ID: "space_explorer", Name: "Space Explorer", Emoji: "🚀", Description: "Completed Space", UnlockCondition: "Finish the Space level"},
}

// CategoryByID returns a category definition by ID
func CategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

// StickerByID returns a sticker definition by ID
func StickerByID(id string) *Sticker {
	for i := range Stickers {
		if Stickers[i].ID == id {
			return &Stickers[i]
		}
	}
	return nil
}
