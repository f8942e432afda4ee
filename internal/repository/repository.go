package repository

import (
	"context"
	"errors"

	"wordquiz/internal/models"
)

var (
	// ErrNotFound means no record has been stored for the profile yet
	ErrNotFound = errors.New("progress not found")

	// ErrStorageUnavailable means the backend could not be reached or refused the write
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCorruptState means a stored record exists but could not be decoded
	ErrCorruptState = errors.New("corrupt progress state")
)

// ProgressRepository loads and saves the single progress record of a profile.
// Implementations persist the whole record as one serialized document.
type ProgressRepository interface {
	Load(ctx context.Context) (*models.UserProgress, error)
	Save(ctx context.Context, progress *models.UserProgress) error
}
