package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrTaskTitleEmpty   = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong = errors.New("task title is too long (max 100 chars)")
	ErrInvalidHabitDays = errors.New("habit length must be at least 1 day")
	ErrTaskDateMissing  = errors.New("task date is required")
)

const (
	DefaultIcon    = "default_icon"
	MaxTitleLen    = 100
	MaxHabitDays   = 366
	DefaultScore   = 5
	MinScore       = 1
	MaxScore       = 10
	AttentionScore = 4
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    Category   `json:"category"`
	Completed   bool       `json:"completed"`
	IsHabit     bool       `json:"is_habit"`
	Date        time.Time  `json:"date"`
	Streak      int        `json:"streak,omitempty"`
	DaysTotal   int        `json:"days_total,omitempty"`
	SeriesID    string     `json:"series_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrTaskTitleEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLen {
		return "", ErrTaskTitleTooLong
	}
	return trimmed, nil
}

func validateHabitDays(days int) error {
	if days < 1 || days > MaxHabitDays {
		return ErrInvalidHabitDays
	}
	return nil
}

// NewTask builds a single task instance dated on the calendar day of date.
// Habit instances start with a zero streak and a fixed DaysTotal.
func NewTask(title string, category Category, date time.Time, isHabit bool, habitDays int) (*Task, error) {
	cleanTitle, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		return nil, ErrTaskDateMissing
	}

	if isHabit {
		if err := validateHabitDays(habitDays); err != nil {
			return nil, err
		}
	}

	y, m, d := date.Date()

	t := &Task{
		ID:        uuid.New().String(),
		Title:     cleanTitle,
		Category:  category,
		IsHabit:   isHabit,
		Date:      time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
		CreatedAt: time.Now().UTC(),
	}

	if isHabit {
		t.Streak = 0
		t.DaysTotal = habitDays
	}

	return t, nil
}

// NewHabitSeries builds one incomplete instance per consecutive day
// starting at start, all sharing a SeriesID and DaysTotal.
func NewHabitSeries(title string, category Category, start time.Time, days int) ([]*Task, error) {
	if _, err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateHabitDays(days); err != nil {
		return nil, err
	}

	seriesID := uuid.New().String()
	tasks := make([]*Task, 0, days)

	for i := 0; i < days; i++ {
		t, err := NewTask(title, category, start.AddDate(0, 0, i), true, days)
		if err != nil {
			return nil, err
		}
		t.SeriesID = seriesID
		tasks = append(tasks, t)
	}

	return tasks, nil
}

func (t *Task) SetCompleted(done bool, now time.Time) {
	t.Completed = done
	if done {
		ts := now.UTC()
		t.CompletedAt = &ts
		return
	}
	t.CompletedAt = nil
}

// Clone returns a copy that shares no pointers with t.
func (t *Task) Clone() *Task {
	c := *t
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}

// SeriesStreak recomputes the streak of a habit series. For every instance
// it counts the consecutive completed instances ending on that instance's
// day, so an unchecked instance holds 0 and breaks the run after it.
func SeriesStreak(series []*Task) map[string]int {
	sorted := make([]*Task, len(series))
	copy(sorted, series)
	sortTasksByDate(sorted)

	out := make(map[string]int, len(sorted))
	run := 0
	var prev time.Time

	for _, t := range sorted {
		if !t.Completed {
			run = 0
		} else if run > 0 && consecutive(prev, t.Date) {
			run++
		} else {
			run = 1
		}
		out[t.ID] = run
		prev = t.Date
	}

	return out
}

func consecutive(prev, next time.Time) bool {
	y, m, d := prev.Date()
	expected := time.Date(y, m, d+1, 0, 0, 0, 0, prev.Location())
	ny, nm, nd := next.In(prev.Location()).Date()
	ey, em, ed := expected.Date()
	return ny == ey && nm == em && nd == ed
}

func sortTasksByDate(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Date.Before(tasks[j].Date)
	})
}
