package repository

import (
	"context"
	"errors"

	"wordquiz/internal/metrics"
	"wordquiz/internal/models"
)

// InstrumentedRepository records latency and failures of another repository
type InstrumentedRepository struct {
	next    ProgressRepository
	backend string
}

// NewInstrumented wraps repo with storage metrics labelled by backend
func NewInstrumented(repo ProgressRepository, backend string) *InstrumentedRepository {
	return &InstrumentedRepository{next: repo, backend: backend}
}

func (r *InstrumentedRepository) Load(ctx context.Context) (*models.UserProgress, error) {
	timer := metrics.TrackStorage(r.backend, "load")
	defer timer.ObserveDuration()

	progress, err := r.next.Load(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.StorageErrorsTotal.WithLabelValues(r.backend, "load").Inc()
	}
	return progress, err
}

func (r *InstrumentedRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	timer := metrics.TrackStorage(r.backend, "save")
	defer timer.ObserveDuration()

	err := r.next.Save(ctx, progress)
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(r.backend, "save").Inc()
	}
	return err
}
