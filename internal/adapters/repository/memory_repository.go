package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

var _ domain.HabitRepository = (*InMemoryHabitRepository)(nil)

// InMemoryHabitRepository keeps habits for the life of the process.
// Callers always receive copies, never the stored pointers.
type InMemoryHabitRepository struct {
	store map[string]*domain.Habit
	order []string

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[habit.ID]; exists {
		return ErrDuplicateID
	}

	r.store[habit.ID] = habit.Clone()
	r.order = append(r.order, habit.ID)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return habit.Clone(), nil
}

func (r *InMemoryHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(r.order))
	for _, id := range r.order {
		habits = append(habits, r.store[id].Clone())
	}
	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	r.store[habit.ID] = habit.Clone()
	return nil
}

func (r *InMemoryHabitRepository) UpdateFunc(ctx context.Context, id string, fn func(*domain.Habit) error) (*domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	habit := stored.Clone()
	if err := fn(habit); err != nil {
		return nil, err
	}

	r.store[id] = habit.Clone()
	return habit, nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return nil
	}

	delete(r.store, id)
	r.order = removeID(r.order, id)
	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
