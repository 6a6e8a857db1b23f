package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/comitanigiacomo/kanso-balance/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

type SnapshotService struct {
	repo   domain.SnapshotRepository
	scores *ScoreService
	clock  Clock
}

func NewSnapshotService(repo domain.SnapshotRepository, scores *ScoreService, clock Clock) *SnapshotService {
	return &SnapshotService{
		repo:   repo,
		scores: scores,
		clock:  clock,
	}
}

// Save scores the month named by period ("YYYY-MM", empty for the current
// month) and stores it, replacing an earlier snapshot of the same month.
func (s *SnapshotService) Save(ctx context.Context, period string) (*domain.Snapshot, error) {
	now := s.clock.Now()

	period = strings.TrimSpace(period)
	if period == "" {
		period = calendar.MonthLabel(now)
	}

	first, err := calendar.ParseMonthLabel(period, now.Location())
	if err != nil {
		return nil, err
	}

	scores, err := s.scores.AllScores(ctx, first, calendar.EndOfMonth(first))
	if err != nil {
		return nil, err
	}

	snap, err := domain.NewSnapshot(calendar.MonthLabel(first), scores, AverageScore(scores))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("snapshot service: failed to save %s: %w", snap.Period, err)
	}

	log.Printf("[SNAPSHOT] Saved %s (average %s)", snap.Period, FormatAverage(snap.Average))
	return snap, nil
}

func (s *SnapshotService) SaveCurrent(ctx context.Context) (*domain.Snapshot, error) {
	return s.Save(ctx, "")
}

func (s *SnapshotService) History(ctx context.Context) ([]*domain.Snapshot, error) {
	return s.repo.List(ctx)
}

func (s *SnapshotService) Get(ctx context.Context, period string) (*domain.Snapshot, error) {
	return s.repo.GetByPeriod(ctx, strings.TrimSpace(period))
}

func (s *SnapshotService) Delete(ctx context.Context, period string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(period))
}
