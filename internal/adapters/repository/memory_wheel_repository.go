package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

var _ domain.WheelRepository = (*InMemoryWheelRepository)(nil)

type InMemoryWheelRepository struct {
	values map[domain.Category]int

	mu sync.RWMutex
}

func NewInMemoryWheelRepository() *InMemoryWheelRepository {
	return &InMemoryWheelRepository{
		values: make(map[domain.Category]int),
	}
}

func (r *InMemoryWheelRepository) Get(ctx context.Context, categories []domain.Category, defaultValue int) (map[domain.Category]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.Category]int, len(categories))
	for _, c := range categories {
		v, ok := r.values[c]
		if !ok {
			v = defaultValue
		}
		out[c] = v
	}
	return out, nil
}

func (r *InMemoryWheelRepository) Set(ctx context.Context, category domain.Category, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[category] = value
	return nil
}

func (r *InMemoryWheelRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values = make(map[domain.Category]int)
	return nil
}
