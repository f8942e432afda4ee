package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"wordquiz/internal/config"
	"wordquiz/internal/database"
)

const testMigrationsPath = "../../migrations"

func newSQLiteRepo(t *testing.T, profileID string) (*SQLProgressRepository, *database.DB) {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(testMigrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewSQLProgressRepository(db, profileID), db
}

func TestSQLProgressRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo, _ := newSQLiteRepo(t, "default")

	if _, err := repo.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() before save error = %v, want ErrNotFound", err)
	}

	assertRoundTrip(t, repo)
}

func TestSQLProgressRepositoryKeepsProfilesApart(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	first, db := newSQLiteRepo(t, "first")
	second := NewSQLProgressRepository(db, "second")

	if err := first.Save(ctx, sampleProgress()); err != nil {
		t.Fatal(err)
	}
	if _, err := second.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("second profile Load() error = %v, want ErrNotFound", err)
	}
}

func TestSQLProgressRepositoryCorruptRow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	repo, db := newSQLiteRepo(t, "default")

	if _, err := db.ExecContext(ctx, "INSERT INTO user_progress (profile_id, data) VALUES (?, ?)", "default", "not json"); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Load(ctx); !errors.Is(err, ErrCorruptState) {
		t.Errorf("Load() error = %v, want ErrCorruptState", err)
	}
}

func TestSQLProgressRepositoryClosedDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	repo, db := newSQLiteRepo(t, "default")
	db.Close()

	if _, err := repo.Load(ctx); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Load() error = %v, want ErrStorageUnavailable", err)
	}
	if err := repo.Save(ctx, sampleProgress()); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Save() error = %v, want ErrStorageUnavailable", err)
	}
}

func TestOpenSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := &config.Config{
		StorageBackend: "sqlite",
		DatabasePath:   filepath.Join(t.TempDir(), "open.db"),
		MigrationsPath: testMigrationsPath,
		ProfileID:      "default",
	}
	repo, closeFn, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer closeFn()

	assertRoundTrip(t, repo)
}
