package repository

import (
	"context"
	"database/sql"
	"errors"

	"wordquiz/internal/database"
	"wordquiz/internal/models"
)

// SQLProgressRepository stores the record as one serialized row in user_progress
type SQLProgressRepository struct {
	db        *database.DB
	profileID string
}

// NewSQLProgressRepository creates a repository for one profile
func NewSQLProgressRepository(db *database.DB, profileID string) *SQLProgressRepository {
	return &SQLProgressRepository{db: db, profileID: profileID}
}

// Load retrieves the record for the profile
func (r *SQLProgressRepository) Load(ctx context.Context) (*models.UserProgress, error) {
	query := "SELECT data FROM user_progress WHERE profile_id = ?"

	var data string
	err := r.db.QueryRowContext(ctx, query, r.profileID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("load progress", err)
	}

	return decodeProgress([]byte(data))
}

// Save inserts or replaces the record for the profile
func (r *SQLProgressRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	data, err := encodeProgress(progress)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, r.db.Dialect.UpsertProgressQuery(), r.profileID, string(data)); err != nil {
		return unavailable("save progress", err)
	}
	return nil
}

