package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

var _ domain.SnapshotRepository = (*InMemorySnapshotRepository)(nil)

type InMemorySnapshotRepository struct {
	history []*domain.Snapshot

	mu sync.RWMutex
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{}
}

func (r *InMemorySnapshotRepository) indexOf(period string) int {
	for i, s := range r.history {
		if s.Period == period {
			return i
		}
	}
	return -1
}

func (r *InMemorySnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	if snap.Period == "" {
		return domain.ErrSnapshotPeriodEmpty
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(snap.Period); i >= 0 {
		r.history[i] = snap.Clone()
		return nil
	}

	r.history = append(r.history, snap.Clone())
	return nil
}

func (r *InMemorySnapshotRepository) GetByPeriod(ctx context.Context, period string) (*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(period)
	if i < 0 {
		return nil, domain.ErrSnapshotNotFound
	}
	return r.history[i].Clone(), nil
}

func (r *InMemorySnapshotRepository) List(ctx context.Context) ([]*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Snapshot, 0, len(r.history))
	for _, s := range r.history {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (r *InMemorySnapshotRepository) Delete(ctx context.Context, period string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(period)
	if i < 0 {
		return domain.ErrSnapshotNotFound
	}
	r.history = append(r.history[:i:i], r.history[i+1:]...)
	return nil
}
