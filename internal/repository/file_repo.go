package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"wordquiz/internal/models"
)

// FileProgressRepository persists the record as a JSON file on disk
type FileProgressRepository struct {
	path string
	mu   sync.RWMutex
}

// NewFileProgressRepository creates a file-backed repository, creating the parent directory
func NewFileProgressRepository(path string) (*FileProgressRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, unavailable("create progress directory", err)
	}
	return &FileProgressRepository{path: path}, nil
}

// Load reads the record from disk
func (r *FileProgressRepository) Load(ctx context.Context) (*models.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, unavailable("read progress file", err)
	}

	return decodeProgress(data)
}

// Save writes the record through a temp file and rename so a crash never
// leaves a half-written record behind
func (r *FileProgressRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	data, err := encodeProgress(progress)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return unavailable("create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return unavailable("write progress file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return unavailable("sync progress file", err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable("close progress file", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return unavailable("replace progress file", err)
	}
	return nil
}

// Path returns the file the record is stored in
func (r *FileProgressRepository) Path() string {
	return r.path
}
