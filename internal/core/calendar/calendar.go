package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DayKeyLayout   = "2006-01-02"
	MonthKeyLayout = "2006-01"
)

var (
	ErrInvalidDayKey  = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrInvalidMonth   = errors.New("invalid month (must be YYYY-MM)")
	ErrInvalidMode    = errors.New("invalid view mode (must be day, week or month)")
	ErrInvalidWeekday = errors.New("invalid week start (must be a weekday name)")
	ErrInvalidRange   = errors.New("start date cannot be after end date")
)

// Mode selects which slice of the calendar a view covers.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeDay, ModeWeek, ModeMonth:
		return m, nil
	case "":
		return ModeDay, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return time.Monday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// StartOfDay returns local midnight of t in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day as seen
// from a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DayKeyLayout, strings.TrimSpace(key), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, key)
	}
	return t, nil
}

// AddDays moves by whole calendar days and stays on midnight across DST
// changes.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return AddDays(t, -offset)
}

// EndOfWeek returns the last day of t's week (inclusive).
func EndOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	return AddDays(StartOfWeek(t, weekStart), 6)
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month (inclusive).
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// Range enumerates every day from `from` to `to`, both included.
func Range(from, to time.Time) []time.Time {
	start := StartOfDay(from)
	end := StartOfDay(to.In(from.Location()))
	if start.After(end) {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func WeekDays(t time.Time, weekStart time.Weekday) []time.Time {
	start := StartOfWeek(t, weekStart)
	return Range(start, AddDays(start, 6))
}

func MonthDays(t time.Time) []time.Time {
	return Range(StartOfMonth(t), EndOfMonth(t))
}

// MonthGrid lays the month out as full weeks, padding the first and last
// rows with days of the adjacent months.
func MonthGrid(t time.Time, weekStart time.Weekday) [][]time.Time {
	first := StartOfWeek(StartOfMonth(t), weekStart)
	last := EndOfWeek(EndOfMonth(t), weekStart)

	days := Range(first, last)
	grid := make([][]time.Time, 0, len(days)/7)
	for i := 0; i+7 <= len(days); i += 7 {
		grid = append(grid, days[i:i+7])
	}
	return grid
}

// InRange reports whether t's calendar day lies within [from, to].
func InRange(t, from, to time.Time) bool {
	day := StartOfDay(t.In(from.Location()))
	return !day.Before(StartOfDay(from)) && !day.After(StartOfDay(to.In(from.Location())))
}

func MonthLabel(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ParseMonthLabel returns the first day of the labelled month.
func ParseMonthLabel(label string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(MonthKeyLayout, strings.TrimSpace(label), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, label)
	}
	return t, nil
}

// Window returns the inclusive first and last day covered by a view.
func Window(mode Mode, focus time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	switch mode {
	case ModeWeek:
		return StartOfWeek(focus, weekStart), EndOfWeek(focus, weekStart)
	case ModeMonth:
		return StartOfMonth(focus), EndOfMonth(focus)
	default:
		day := StartOfDay(focus)
		return day, day
	}
}
