package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
	"github.com/comitanigiacomo/kanso-balance/internal/core/radar"
)

// WheelService backs the manual life wheel, where each area is rated
// directly instead of derived from tasks.
type WheelService struct {
	repo    domain.WheelRepository
	catalog *domain.Catalog
}

func NewWheelService(repo domain.WheelRepository, catalog *domain.Catalog) *WheelService {
	return &WheelService{
		repo:    repo,
		catalog: catalog,
	}
}

type WheelState struct {
	Areas        []domain.WheelArea `json:"areas"`
	Average      float64            `json:"average"`
	AverageLabel string             `json:"average_label"`
	Chart        radar.Geometry     `json:"chart"`
}

func (s *WheelService) Areas(ctx context.Context) ([]domain.WheelArea, error) {
	values, err := s.repo.Get(ctx, s.catalog.Categories(), domain.DefaultScore)
	if err != nil {
		return nil, err
	}

	areas := make([]domain.WheelArea, 0, s.catalog.Len())
	for _, info := range s.catalog.Entries() {
		areas = append(areas, domain.WheelArea{
			Category: info.ID,
			Label:    info.Label,
			Color:    info.Color,
			Icon:     info.Icon,
			Value:    values[info.ID],
		})
	}
	return areas, nil
}

func (s *WheelService) Rate(ctx context.Context, category string, value int) error {
	cat, err := s.catalog.Parse(category)
	if err != nil {
		return err
	}
	if err := domain.ValidateWheelValue(value); err != nil {
		return err
	}
	return s.repo.Set(ctx, cat, value)
}

// Reset puts every area back to the neutral 5.
func (s *WheelService) Reset(ctx context.Context) error {
	return s.repo.Reset(ctx)
}

func (s *WheelService) Average(ctx context.Context) (float64, error) {
	areas, err := s.Areas(ctx)
	if err != nil {
		return 0, err
	}
	return averageOfAreas(areas), nil
}

func (s *WheelService) Chart(ctx context.Context, chart radar.Chart) (radar.Geometry, error) {
	areas, err := s.Areas(ctx)
	if err != nil {
		return radar.Geometry{}, err
	}
	return chartOfAreas(areas, chart)
}

// State bundles areas, average and chart from a single read.
func (s *WheelService) State(ctx context.Context, chart radar.Chart) (*WheelState, error) {
	areas, err := s.Areas(ctx)
	if err != nil {
		return nil, err
	}

	geometry, err := chartOfAreas(areas, chart)
	if err != nil {
		return nil, err
	}

	avg := averageOfAreas(areas)
	return &WheelState{
		Areas:        areas,
		Average:      avg,
		AverageLabel: FormatAverage(avg),
		Chart:        geometry,
	}, nil
}

func averageOfAreas(areas []domain.WheelArea) float64 {
	values := make([]int, len(areas))
	for i, a := range areas {
		values[i] = a.Value
	}
	return AverageOf(values)
}

func chartOfAreas(areas []domain.WheelArea, chart radar.Chart) (radar.Geometry, error) {
	labels := make([]string, len(areas))
	scores := make([]float64, len(areas))
	for i, a := range areas {
		labels[i] = a.Label
		scores[i] = float64(a.Value)
	}
	return chart.Build(labels, scores)
}
