package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-balance/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

var ErrDuplicateID = errors.New("duplicate id")

var _ domain.TaskRepository = (*InMemoryTaskRepository)(nil)

type InMemoryTaskRepository struct {
	store map[string]*domain.Task
	order []string

	mu sync.RWMutex
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{
		store: make(map[string]*domain.Task),
	}
}

func (r *InMemoryTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.CreateBatch(ctx, []*domain.Task{task})
}

func (r *InMemoryTaskRepository) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if _, exists := r.store[t.ID]; exists || seen[t.ID] {
			return ErrDuplicateID
		}
		seen[t.ID] = true
	}

	for _, t := range tasks {
		r.store[t.ID] = t.Clone()
		r.order = append(r.order, t.ID)
	}
	return nil
}

func (r *InMemoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.store[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task.Clone(), nil
}

func (r *InMemoryTaskRepository) filter(keep func(*domain.Task) bool) []*domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, id := range r.order {
		t := r.store[id]
		if keep(t) {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks
}

func (r *InMemoryTaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	return r.filter(func(*domain.Task) bool { return true }), nil
}

func (r *InMemoryTaskRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	return r.filter(func(t *domain.Task) bool {
		return calendar.InRange(t.Date, from, to)
	}), nil
}

func (r *InMemoryTaskRepository) ListBySeries(ctx context.Context, seriesID string) ([]*domain.Task, error) {
	if seriesID == "" {
		return []*domain.Task{}, nil
	}
	return r.filter(func(t *domain.Task) bool {
		return t.SeriesID == seriesID
	}), nil
}

func (r *InMemoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}

	r.store[task.ID] = task.Clone()
	return nil
}

func (r *InMemoryTaskRepository) UpdateFunc(ctx context.Context, id string, fn func(*domain.Task) error) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	task := stored.Clone()
	if err := fn(task); err != nil {
		return nil, err
	}

	r.store[id] = task.Clone()
	return task, nil
}

func (r *InMemoryTaskRepository) UpdateSeriesFunc(ctx context.Context, seriesID string, fn func([]*domain.Task) error) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	series := make([]*domain.Task, 0)
	if seriesID != "" {
		for _, id := range r.order {
			if t := r.store[id]; t.SeriesID == seriesID {
				ids = append(ids, id)
				series = append(series, t.Clone())
			}
		}
	}

	if err := fn(series); err != nil {
		return nil, err
	}

	for i, id := range ids {
		r.store[id] = series[i].Clone()
	}
	return series, nil
}

func (r *InMemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return nil
	}

	delete(r.store, id)
	r.order = removeID(r.order, id)
	return nil
}

func (r *InMemoryTaskRepository) DeleteSeries(ctx context.Context, seriesID string) error {
	if seriesID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0:0]
	for _, id := range r.order {
		if r.store[id].SeriesID == seriesID {
			delete(r.store, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return nil
}
