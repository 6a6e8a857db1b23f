package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-balance/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
	"github.com/comitanigiacomo/kanso-balance/internal/core/radar"
)

type ScoreService struct {
	taskRepo  domain.TaskRepository
	habitRepo domain.HabitRepository
	catalog   *domain.Catalog
	clock     Clock
	mode      string
}

func NewScoreService(taskRepo domain.TaskRepository, habitRepo domain.HabitRepository, catalog *domain.Catalog, clock Clock, mode string) *ScoreService {
	if mode != domain.ScoringModeBlended {
		mode = domain.ScoringModeTasks
	}
	return &ScoreService{
		taskRepo:  taskRepo,
		habitRepo: habitRepo,
		catalog:   catalog,
		clock:     clock,
		mode:      mode,
	}
}

func (s *ScoreService) Mode() string {
	return s.mode
}

// TaskScore maps a completion rate onto 1..10. No tasks means no signal,
// which scores the neutral 5.
func TaskScore(completed, total int) int {
	if total <= 0 {
		return domain.DefaultScore
	}
	rate := float64(completed) / float64(total)
	return clampScore(int(math.Round(1 + rate*9)))
}

// HabitScore averages per-habit progress ratios and scales them to 0..10.
// A ratio is the number of days done inside the scoring window over the
// habit's target, capped at 1. Days done outside the window do not count,
// so a habit finished last month scores 0 for this month, and finishing
// a habit twice over does not lift the category above 10.
func HabitScore(ratios []float64) int {
	if len(ratios) == 0 {
		return domain.DefaultScore
	}
	sum := 0.0
	for _, r := range ratios {
		sum += math.Min(math.Max(r, 0), 1)
	}
	return int(math.Round(sum / float64(len(ratios)) * 10))
}

func BlendScores(taskScore, habitScore int) int {
	return clampScore(int(math.Round(float64(taskScore+habitScore) / 2)))
}

func clampScore(v int) int {
	if v < domain.MinScore {
		return domain.MinScore
	}
	if v > domain.MaxScore {
		return domain.MaxScore
	}
	return v
}

type bucket struct {
	completed int
	total     int
	ratios    []float64
}

func (s *ScoreService) collect(ctx context.Context, from, to time.Time) (map[domain.Category]*bucket, error) {
	tasks, err := s.taskRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("score service: failed to list tasks: %w", err)
	}

	buckets := make(map[domain.Category]*bucket, s.catalog.Len())
	for _, c := range s.catalog.Categories() {
		buckets[c] = &bucket{}
	}

	for _, t := range tasks {
		b, ok := buckets[t.Category]
		if !ok {
			continue
		}
		b.total++
		if t.Completed {
			b.completed++
		}
	}

	if s.mode != domain.ScoringModeBlended {
		return buckets, nil
	}

	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("score service: failed to list habits: %w", err)
	}

	for _, h := range habits {
		b, ok := buckets[h.Category]
		if !ok || h.TargetDays <= 0 {
			continue
		}
		b.ratios = append(b.ratios, float64(h.CompletedIn(from, to))/float64(h.TargetDays))
	}

	return buckets, nil
}

func (s *ScoreService) score(b *bucket) int {
	taskScore := TaskScore(b.completed, b.total)
	if s.mode != domain.ScoringModeBlended {
		return taskScore
	}
	return BlendScores(taskScore, HabitScore(b.ratios))
}

// ScoreForCategory scores one category over the inclusive day window.
func (s *ScoreService) ScoreForCategory(ctx context.Context, category domain.Category, from, to time.Time) (int, error) {
	if !s.catalog.Contains(category) {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	if calendar.StartOfDay(from).After(calendar.StartOfDay(to.In(from.Location()))) {
		return 0, calendar.ErrInvalidRange
	}

	buckets, err := s.collect(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return s.score(buckets[category]), nil
}

// AllScores scores every category in catalog order.
func (s *ScoreService) AllScores(ctx context.Context, from, to time.Time) ([]domain.CategoryScore, error) {
	if calendar.StartOfDay(from).After(calendar.StartOfDay(to.In(from.Location()))) {
		return nil, calendar.ErrInvalidRange
	}

	buckets, err := s.collect(ctx, from, to)
	if err != nil {
		return nil, err
	}

	scores := make([]domain.CategoryScore, 0, s.catalog.Len())
	for _, info := range s.catalog.Entries() {
		b := buckets[info.ID]
		scores = append(scores, domain.CategoryScore{
			Category:  info.ID,
			Label:     info.Label,
			Score:     s.score(b),
			Completed: b.completed,
			Total:     b.total,
		})
	}
	return scores, nil
}

// Recommendations lists categories scoring AttentionScore or less, worst
// first. Equal scores keep catalog order.
func (s *ScoreService) Recommendations(scores []domain.CategoryScore) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0)
	for _, sc := range scores {
		if sc.Score > domain.AttentionScore {
			continue
		}
		info, err := s.catalog.Info(sc.Category)
		if err != nil {
			continue
		}
		recs = append(recs, domain.Recommendation{
			Category: sc.Category,
			Label:    info.Label,
			Score:    sc.Score,
			Advice:   info.Advice,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score < recs[j].Score
		}
		return s.catalog.Index(recs[i].Category) < s.catalog.Index(recs[j].Category)
	})

	return recs
}

// AverageScore is the mean of all scores rounded to one decimal.
func AverageScore(scores []domain.CategoryScore) float64 {
	values := make([]int, len(scores))
	for i, sc := range scores {
		values[i] = sc.Score
	}
	return AverageOf(values)
}

func AverageOf(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return math.Round(float64(sum)/float64(len(values))*10) / 10
}

func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

func (s *ScoreService) ScoreCard(ctx context.Context, from, to time.Time) (*domain.ScoreCard, error) {
	scores, err := s.AllScores(ctx, from, to)
	if err != nil {
		return nil, err
	}

	avg := AverageScore(scores)
	return &domain.ScoreCard{
		From:            calendar.DayKey(from),
		To:              calendar.DayKey(to),
		Mode:            s.mode,
		Scores:          scores,
		Average:         avg,
		AverageLabel:    FormatAverage(avg),
		Recommendations: s.Recommendations(scores),
	}, nil
}

// CurrentMonth returns the default scoring window: the clock's month.
func (s *ScoreService) CurrentMonth() (time.Time, time.Time) {
	now := s.clock.Now()
	return calendar.StartOfMonth(now), calendar.EndOfMonth(now)
}

func (s *ScoreService) CurrentMonthCard(ctx context.Context) (*domain.ScoreCard, error) {
	from, to := s.CurrentMonth()
	return s.ScoreCard(ctx, from, to)
}

// Radar lays the scores of the window out on chart.
func (s *ScoreService) Radar(ctx context.Context, from, to time.Time, chart radar.Chart) (radar.Geometry, error) {
	scores, err := s.AllScores(ctx, from, to)
	if err != nil {
		return radar.Geometry{}, err
	}
	return GeometryFor(scores, chart)
}

func GeometryFor(scores []domain.CategoryScore, chart radar.Chart) (radar.Geometry, error) {
	labels := make([]string, len(scores))
	values := make([]float64, len(scores))
	for i, sc := range scores {
		labels[i] = sc.Label
		values[i] = float64(sc.Score)
	}
	return chart.Build(labels, values)
}
