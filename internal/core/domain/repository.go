package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrHabitNotFound = errors.New("habit not found")
)

type TaskRepository interface {
	// Create appends a task, keeping insertion order.
	Create(ctx context.Context, task *Task) error

	// CreateBatch appends all tasks or none of them.
	CreateBatch(ctx context.Context, tasks []*Task) error

	// GetByID returns a copy of the task or ErrTaskNotFound.
	GetByID(ctx context.Context, id string) (*Task, error)

	// List returns copies of every task in insertion order.
	List(ctx context.Context) ([]*Task, error)

	// ListBetween returns tasks whose calendar day lies within [from, to].
	ListBetween(ctx context.Context, from, to time.Time) ([]*Task, error)

	// ListBySeries returns every instance of a habit series.
	ListBySeries(ctx context.Context, seriesID string) ([]*Task, error)

	// Update replaces a stored task. Missing tasks yield ErrTaskNotFound.
	Update(ctx context.Context, task *Task) error

	// UpdateFunc applies fn to a copy of the task and stores the result
	// without letting another write in between. If fn fails nothing is
	// stored.
	UpdateFunc(ctx context.Context, id string, fn func(*Task) error) (*Task, error)

	// UpdateSeriesFunc hands fn copies of every instance of a series and
	// stores them back together, or not at all if fn fails.
	UpdateSeriesFunc(ctx context.Context, seriesID string, fn func([]*Task) error) ([]*Task, error)

	// Delete removes a task. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteSeries removes every instance of a habit series.
	DeleteSeries(ctx context.Context, seriesID string) error
}

type HabitRepository interface {
	Create(ctx context.Context, habit *Habit) error
	GetByID(ctx context.Context, id string) (*Habit, error)
	List(ctx context.Context) ([]*Habit, error)
	Update(ctx context.Context, habit *Habit) error

	// UpdateFunc is the read-modify-write form of Update.
	UpdateFunc(ctx context.Context, id string, fn func(*Habit) error) (*Habit, error)

	// Delete removes a habit. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

type SnapshotRepository interface {
	// Save stores the snapshot, replacing any snapshot with the same period
	// in place; new periods are appended.
	Save(ctx context.Context, snap *Snapshot) error

	GetByPeriod(ctx context.Context, period string) (*Snapshot, error)

	// List returns the history in save order.
	List(ctx context.Context) ([]*Snapshot, error)

	Delete(ctx context.Context, period string) error
}

type WheelRepository interface {
	// Get returns the rating of every category; unrated ones read as defaultValue.
	Get(ctx context.Context, categories []Category, defaultValue int) (map[Category]int, error)
	Set(ctx context.Context, category Category, value int) error
	Reset(ctx context.Context) error
}
