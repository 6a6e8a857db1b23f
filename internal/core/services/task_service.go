package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-balance/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

type TaskService struct {
	repo      domain.TaskRepository
	catalog   *domain.Catalog
	clock     Clock
	weekStart time.Weekday
}

func NewTaskService(repo domain.TaskRepository, catalog *domain.Catalog, clock Clock, weekStart time.Weekday) *TaskService {
	return &TaskService{
		repo:      repo,
		catalog:   catalog,
		clock:     clock,
		weekStart: weekStart,
	}
}

type AddTaskInput struct {
	Title     string
	Category  string
	Date      time.Time
	IsHabit   bool
	HabitDays int
}

type AddSeriesInput struct {
	Title     string
	Category  string
	StartDate time.Time
	Days      int
}

func (s *TaskService) today() time.Time {
	return calendar.StartOfDay(s.clock.Now())
}

func (s *TaskService) AddTask(ctx context.Context, input AddTaskInput) (*domain.Task, error) {
	cat, err := s.catalog.Parse(input.Category)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = s.today()
	}

	task, err := domain.NewTask(input.Title, cat, date, input.IsHabit, input.HabitDays)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("task service: failed to create task: %w", err)
	}

	return task, nil
}

// AddHabitSeries stores one habit instance per day starting at StartDate.
// Either every instance is stored or none is.
func (s *TaskService) AddHabitSeries(ctx context.Context, input AddSeriesInput) ([]*domain.Task, error) {
	cat, err := s.catalog.Parse(input.Category)
	if err != nil {
		return nil, err
	}

	start := input.StartDate
	if start.IsZero() {
		start = s.today()
	}

	series, err := domain.NewHabitSeries(input.Title, cat, start, input.Days)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateBatch(ctx, series); err != nil {
		return nil, fmt.Errorf("task service: failed to create habit series: %w", err)
	}

	return series, nil
}

// ToggleCompletion flips a task. Habit streaks are recomputed from the
// completion state of the whole series, so un-checking lowers them again.
// The flip and the recompute happen inside one repository write.
func (s *TaskService) ToggleCompletion(ctx context.Context, id string) (*domain.Task, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	if current.IsHabit && current.SeriesID != "" {
		return s.toggleInSeries(ctx, current.SeriesID, id, now)
	}

	return s.repo.UpdateFunc(ctx, id, func(task *domain.Task) error {
		task.SetCompleted(!task.Completed, now)
		if task.IsHabit {
			task.Streak = 0
			if task.Completed {
				task.Streak = 1
			}
		}
		return nil
	})
}

func (s *TaskService) toggleInSeries(ctx context.Context, seriesID, id string, now time.Time) (*domain.Task, error) {
	var toggled *domain.Task

	_, err := s.repo.UpdateSeriesFunc(ctx, seriesID, func(series []*domain.Task) error {
		for _, t := range series {
			if t.ID == id {
				toggled = t
			}
		}
		if toggled == nil {
			return domain.ErrTaskNotFound
		}

		toggled.SetCompleted(!toggled.Completed, now)

		streaks := domain.SeriesStreak(series)
		for _, t := range series {
			t.Streak = streaks[t.ID]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toggled, nil
}

// Delete removes a task; unknown ids are ignored.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) DeleteSeries(ctx context.Context, seriesID string) error {
	return s.repo.DeleteSeries(ctx, seriesID)
}

func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) ListForDay(ctx context.Context, day time.Time) ([]*domain.Task, error) {
	return s.repo.ListBetween(ctx, day, day)
}

type TaskView struct {
	Mode  calendar.Mode  `json:"mode"`
	From  string         `json:"from"`
	To    string         `json:"to"`
	Days  []DayBucket    `json:"days"`
	Tasks []*domain.Task `json:"tasks"`
}

type DayBucket struct {
	Date      string         `json:"date"`
	IsToday   bool           `json:"is_today"`
	Tasks     []*domain.Task `json:"tasks"`
	Completed int            `json:"completed"`
}

// ListForView returns the tasks of the day, week or month around focus,
// grouped per calendar day. A zero focus means today.
func (s *TaskService) ListForView(ctx context.Context, mode calendar.Mode, focus time.Time) (*TaskView, error) {
	now := s.clock.Now()
	if focus.IsZero() {
		focus = now
	}

	from, to := calendar.Window(mode, focus, s.weekStart)

	tasks, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]*domain.Task)
	for _, t := range tasks {
		key := calendar.DayKey(t.Date)
		byDay[key] = append(byDay[key], t)
	}

	view := &TaskView{
		Mode:  mode,
		From:  calendar.DayKey(from),
		To:    calendar.DayKey(to),
		Tasks: tasks,
	}

	for _, d := range calendar.Range(from, to) {
		key := calendar.DayKey(d)
		bucket := DayBucket{
			Date:    key,
			IsToday: calendar.SameDay(d, now),
			Tasks:   byDay[key],
		}
		if bucket.Tasks == nil {
			bucket.Tasks = []*domain.Task{}
		}
		for _, t := range bucket.Tasks {
			if t.Completed {
				bucket.Completed++
			}
		}
		view.Days = append(view.Days, bucket)
	}

	return view, nil
}
