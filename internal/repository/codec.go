package repository

import (
	"encoding/json"
	"fmt"

	"wordquiz/internal/models"
	"wordquiz/internal/validation"
)

// encodeProgress serializes the record in the persisted JSON layout
func encodeProgress(progress *models.UserProgress) ([]byte, error) {
	data, err := json.Marshal(progress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress: %w", err)
	}
	return data, nil
}

// decodeProgress parses a stored record. Anything that does not decode into
// a record satisfying the record invariants is reported as ErrCorruptState.
func decodeProgress(data []byte) (*models.UserProgress, error) {
	var progress models.UserProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return checkDecoded(&progress)
}

func checkDecoded(progress *models.UserProgress) (*models.UserProgress, error) {
	progress.Normalize()
	if err := validation.Progress(progress); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return progress, nil
}

func unavailable(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %v", ErrStorageUnavailable, action, err)
}
