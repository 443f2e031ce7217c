package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
)

var _ domain.SnapshotRepository = (*InMemorySnapshotRepository)(nil)

type InMemorySnapshotRepository struct {
	snap  *domain.Snapshot
	saves int

	mu sync.RWMutex
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{}
}

func (r *InMemorySnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snap == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	out := r.snap.Clone()
	return &out, nil
}

func (r *InMemorySnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := snap.Clone()
	r.snap = &stored
	r.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (r *InMemorySnapshotRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
