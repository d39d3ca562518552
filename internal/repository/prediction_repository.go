package repository

import (
	"context"
	"sync"

	"carprice/internal/entity"
)

type PredictionRepository interface {
	Save(ctx context.Context, p entity.Prediction) error
	// ListByUser returns at most limit records, newest first.
	ListByUser(ctx context.Context, username string, limit int) ([]entity.Prediction, error)
}

// MemoryPredictionRepository keeps the history for the life of the process.
type MemoryPredictionRepository struct {
	mu   sync.RWMutex
	data []entity.Prediction
}

func NewMemoryPredictionRepository() *MemoryPredictionRepository {
	return &MemoryPredictionRepository{
		data: []entity.Prediction{},
	}
}

func (r *MemoryPredictionRepository) Save(ctx context.Context, p entity.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, p)
	return nil
}

func (r *MemoryPredictionRepository) ListByUser(ctx context.Context, username string, limit int) ([]entity.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []entity.Prediction{}
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		if r.data[i].Username == username {
			out = append(out, r.data[i])
		}
	}
	return out, nil
}
