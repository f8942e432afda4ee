package repository

import (
	"context"
	"fmt"
	"log"

	"wordquiz/internal/config"
	"wordquiz/internal/database"
)

// Open builds the progress repository selected by cfg.StorageBackend.
// The returned close function releases the backend's connections.
func Open(ctx context.Context, cfg *config.Config) (ProgressRepository, func() error, error) {
	noop := func() error { return nil }

	var (
		repo    ProgressRepository
		closeFn = noop
	)

	switch cfg.StorageBackend {
	case "memory", "":
		repo = NewMemoryProgressRepository()

	case "file":
		fileRepo, err := NewFileProgressRepository(cfg.ProgressFile)
		if err != nil {
			return nil, noop, err
		}
		repo = fileRepo

	case "sqlite", "sqlite3", "postgres", "postgresql", "mysql":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Println("Migrations completed successfully")
		repo = NewSQLProgressRepository(db, cfg.ProfileID)
		closeFn = db.Close

	case "redis":
		connectCtx, cancel := context.WithTimeout(ctx, cfg.StorageTimeout)
		defer cancel()
		redisRepo, err := NewRedisProgressRepository(connectCtx, cfg.RedisURL, cfg.ProfileID)
		if err != nil {
			return nil, noop, err
		}
		repo = redisRepo
		closeFn = redisRepo.Close

	case "mongo", "mongodb":
		connectCtx, cancel := context.WithTimeout(ctx, cfg.StorageTimeout)
		defer cancel()
		mongoRepo, err := NewMongoProgressRepository(connectCtx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, cfg.ProfileID)
		if err != nil {
			return nil, noop, err
		}
		repo = mongoRepo
		closeFn = mongoRepo.Close

	default:
		return nil, noop, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}

	log.Printf("Progress storage ready (backend: %s, profile: %s)", backendLabel(cfg.StorageBackend), cfg.ProfileID)
	return NewInstrumented(repo, backendLabel(cfg.StorageBackend)), closeFn, nil
}

func backendLabel(backend string) string {
	switch backend {
	case "", "memory":
		return "memory"
	case "sqlite3":
		return "sqlite"
	case "postgresql":
		return "postgres"
	case "mongodb":
		return "mongo"
	}
	return backend
}
