package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

type HabitService struct {
	repo    domain.HabitRepository
	catalog *domain.Catalog
	clock   Clock
}

func NewHabitService(repo domain.HabitRepository, catalog *domain.Catalog, clock Clock) *HabitService {
	return &HabitService{
		repo:    repo,
		catalog: catalog,
		clock:   clock,
	}
}

type CreateHabitInput struct {
	Title      string
	Category   string
	TargetDays int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	cat, err := s.catalog.Parse(input.Category)
	if err != nil {
		return nil, err
	}

	habit, err := domain.NewHabit(uuid.NewString(), input.Title, cat, input.TargetDays)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: failed to create habit: %w", err)
	}

	return habit, nil
}

// List returns every habit with streaks refreshed against today, so a
// streak whose last day was yesterday reads as broken after midnight.
func (s *HabitService) List(ctx context.Context) ([]*domain.Habit, error) {
	habits, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	for _, h := range habits {
		h.RefreshStreaks(today)
	}
	return habits, nil
}

// ToggleToday marks or unmarks the habit for the clock's current day.
func (s *HabitService) ToggleToday(ctx context.Context, id string) (*domain.Habit, error) {
	return s.ToggleDay(ctx, id, s.clock.Now())
}

func (s *HabitService) ToggleDay(ctx context.Context, id string, day time.Time) (*domain.Habit, error) {
	now := s.clock.Now()

	return s.repo.UpdateFunc(ctx, id, func(habit *domain.Habit) error {
		habit.ToggleDay(day.In(now.Location()), now)
		return nil
	})
}

// Delete removes a habit; unknown ids are ignored.
func (s *HabitService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
