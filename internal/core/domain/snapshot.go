package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrSnapshotPeriodEmpty = errors.New("snapshot period cannot be empty")
)

// Snapshot freezes the category scores of one period. The period label is
// the identity: saving the same period again replaces the earlier copy.
type Snapshot struct {
	Period  string           `json:"period"`
	Scores  map[Category]int `json:"scores"`
	Average float64          `json:"average"`
	SavedAt time.Time        `json:"saved_at"`
}

func NewSnapshot(period string, scores []CategoryScore, average float64) (*Snapshot, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return nil, ErrSnapshotPeriodEmpty
	}

	m := make(map[Category]int, len(scores))
	for _, s := range scores {
		m[s.Category] = s.Score
	}

	return &Snapshot{
		Period:  period,
		Scores:  m,
		Average: average,
		SavedAt: time.Now().UTC(),
	}, nil
}

func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Scores = make(map[Category]int, len(s.Scores))
	for k, v := range s.Scores {
		c.Scores[k] = v
	}
	return &c
}
