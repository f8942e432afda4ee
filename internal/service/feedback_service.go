package service

import (
	"context"
)

// Feedback kinds the app shell plays after an answer
const (
	FeedbackSuccess = "success"
	FeedbackError   = "error"
)

// Feedback tells the shell which effects to play. Empty means none.
type Feedback struct {
	Haptic string `json:"haptic,omitempty"`
	Sound  string `json:"sound,omitempty"`
}

// FeedbackService gates answer feedback on the user's settings
type FeedbackService struct {
	progress *ProgressService
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(progress *ProgressService) *FeedbackService {
	return &FeedbackService{progress: progress}
}

// ForAnswer returns the feedback for a correct or wrong answer
func (s *FeedbackService) ForAnswer(ctx context.Context, correct bool) (Feedback, error) {
	settings, err := s.progress.GetSettings(ctx)
	if err != nil {
		return Feedback{}, err
	}

	kind := FeedbackError
	if correct {
		kind = FeedbackSuccess
	}

	var fb Feedback
	if settings.Haptics {
		fb.Haptic = kind
	}
	if settings.Sounds {
		fb.Sound = kind
	}
	return fb, nil
}
