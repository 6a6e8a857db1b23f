package domain

import (
	"encoding/json"
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidTarget = errors.New("habit target must be at least 1 day")
)

const dayKeyLayout = "2006-01-02"

type Habit struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Category       Category            `json:"category"`
	CompletedDates map[string]struct{} `json:"-"`
	TargetDays     int                 `json:"target_days"`
	Streak         int                 `json:"streak"`
	LongestStreak  int                 `json:"longest_streak"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func NewHabit(id, title string, category Category, targetDays int) (*Habit, error) {
	cleanTitle, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if targetDays < 1 || targetDays > MaxHabitDays {
		return nil, ErrInvalidTarget
	}

	now := time.Now().UTC()
	return &Habit{
		ID:             id,
		Title:          cleanTitle,
		Category:       category,
		CompletedDates: make(map[string]struct{}),
		TargetDays:     targetDays,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (h *Habit) IsDoneOn(day time.Time) bool {
	_, ok := h.CompletedDates[day.Format(dayKeyLayout)]
	return ok
}

// ToggleDay flips day in the completion set and recomputes both streaks
// against today, so toggling twice restores the previous streak.
func (h *Habit) ToggleDay(day, today time.Time) bool {
	if h.CompletedDates == nil {
		h.CompletedDates = make(map[string]struct{})
	}

	key := day.Format(dayKeyLayout)
	_, done := h.CompletedDates[key]
	if done {
		delete(h.CompletedDates, key)
	} else {
		h.CompletedDates[key] = struct{}{}
	}

	h.RefreshStreaks(today)
	h.UpdatedAt = time.Now().UTC()
	return !done
}

func (h *Habit) RefreshStreaks(today time.Time) {
	h.Streak, h.LongestStreak = CalculateStreaks(h.SortedDates(), today)
}

// SortedDates returns the completed day keys in chronological order.
func (h *Habit) SortedDates() []string {
	dates := make([]string, 0, len(h.CompletedDates))
	for k := range h.CompletedDates {
		dates = append(dates, k)
	}
	sort.Strings(dates)
	return dates
}

// CompletedIn counts completed days within [from, to], compared by day key.
func (h *Habit) CompletedIn(from, to time.Time) int {
	lo, hi := from.Format(dayKeyLayout), to.Format(dayKeyLayout)
	n := 0
	for k := range h.CompletedDates {
		if k >= lo && k <= hi {
			n++
		}
	}
	return n
}

// Progress is the share of the target reached, capped at 1.
func (h *Habit) Progress() float64 {
	if h.TargetDays <= 0 {
		return 0
	}
	p := float64(len(h.CompletedDates)) / float64(h.TargetDays)
	if p > 1 {
		return 1
	}
	return p
}

func (h *Habit) MarshalJSON() ([]byte, error) {
	type alias Habit
	return json.Marshal(struct {
		*alias
		CompletedDates []string `json:"completed_dates"`
	}{
		alias:          (*alias)(h),
		CompletedDates: h.SortedDates(),
	})
}

func (h *Habit) Clone() *Habit {
	c := *h
	c.CompletedDates = make(map[string]struct{}, len(h.CompletedDates))
	for k := range h.CompletedDates {
		c.CompletedDates[k] = struct{}{}
	}
	return &c
}

// CalculateStreaks returns the current streak, counted backward from today
// until the first missing day, and the longest run found anywhere.
// Keys must use the YYYY-MM-DD layout; duplicates and bad keys are ignored.
func CalculateStreaks(dayKeys []string, today time.Time) (int, int) {
	if len(dayKeys) == 0 {
		return 0, 0
	}

	loc := today.Location()
	present := make(map[string]bool, len(dayKeys))
	var days []time.Time

	for _, k := range dayKeys {
		if present[k] {
			continue
		}
		t, err := time.ParseInLocation(dayKeyLayout, k, loc)
		if err != nil {
			continue
		}
		present[k] = true
		days = append(days, t)
	}

	if len(days) == 0 {
		return 0, 0
	}

	current := 0
	y, m, d := today.Date()
	for cursor := time.Date(y, m, d, 0, 0, 0, 0, loc); present[cursor.Format(dayKeyLayout)]; cursor = cursor.AddDate(0, 0, -1) {
		current++
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return current, longest
}
