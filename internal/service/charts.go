package service

import (
	"context"
	"fmt"
	"io"

	"vital_dashboard/internal/charts"
	"vital_dashboard/internal/models"
)

type chartSource interface {
	Chart(ctx context.Context, mode string) models.ChartData
}

type ChartService struct {
	data chartSource
	size charts.Size
}

func NewChartService(data chartSource, size charts.Size) *ChartService {
	return &ChartService{data: data, size: size}
}

// RenderPanel writes the PNG of panel for mode (current mode when empty).
func (s *ChartService) RenderPanel(ctx context.Context, w io.Writer, panel, mode string) error {
	p, err := charts.ParsePanel(panel)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return charts.Render(w, p, s.data.Chart(ctx, mode), s.size)
}
