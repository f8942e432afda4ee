package repository

import (
	"context"
	"sync"

	"wordquiz/internal/models"
)

// MemoryProgressRepository keeps the record for the lifetime of the process
type MemoryProgressRepository struct {
	mu       sync.RWMutex
	progress *models.UserProgress
}

// NewMemoryProgressRepository creates an empty in-memory repository
func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{}
}

// Load returns a copy of the stored record
func (r *MemoryProgressRepository) Load(ctx context.Context) (*models.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.progress == nil {
		return nil, ErrNotFound
	}
	return r.progress.Clone(), nil
}

// Save stores a copy of the record
func (r *MemoryProgressRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progress.Clone()
	return nil
}
