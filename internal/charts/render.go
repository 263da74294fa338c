// Package charts draws the dashboard's chart panels as PNG images.
package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"vital_dashboard/internal/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Panel selects which metrics are drawn together.
type Panel string

const (
	PanelBP    Panel = "bp"
	PanelPulse Panel = "pulse"
	PanelTemp  Panel = "temp"
)

var ErrNoData = errors.New("nothing to plot")

func ParsePanel(s string) (Panel, error) {
	switch p := Panel(strings.ToLower(strings.TrimSpace(s))); p {
	case PanelBP, PanelPulse, PanelTemp:
		return p, nil
	default:
		return "", fmt.Errorf("unknown chart panel %q", s)
	}
}

const (
	DefaultWidth  = 900
	DefaultHeight = 320

	maxTicks = 8
)

var (
	colorSys   = drawing.Color{R: 220, G: 20, B: 60, A: 255}
	colorDia   = drawing.Color{R: 30, G: 144, B: 255, A: 255}
	colorPulse = drawing.Color{R: 34, G: 139, B: 34, A: 255}
	colorTemp  = drawing.Color{R: 255, G: 140, B: 0, A: 255}

	overlayDash = []float64{6, 4}
)

type line struct {
	name    string
	metric  models.SortKey
	data    []*float64
	color   drawing.Color
	overlay bool
}

// Size is the rendered image size in pixels. Zero fields take the defaults.
type Size struct {
	Width, Height int
}

// Render writes the PNG of one panel for data. Points without a value are
// skipped. ErrNoData is returned when the panel has no point at all.
func Render(w io.Writer, panel Panel, data models.ChartData, size Size) error {
	lines := panelLines(panel, data)

	var (
		series []chart.Series
		lo     = math.Inf(1)
		hi     = math.Inf(-1)
	)
	for _, l := range lines {
		xs, ys := points(l.data)
		if len(xs) == 0 {
			continue
		}
		for _, y := range ys {
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    l.name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(l),
		})
	}
	if len(series) == 0 {
		return ErrNoData
	}

	if size.Width <= 0 {
		size.Width = DefaultWidth
	}
	if size.Height <= 0 {
		size.Height = DefaultHeight
	}

	ch := chart.Chart{
		Title:      panelTitle(panel),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis(data.Labels),
		YAxis:      chart.YAxis{Range: padRange(lo, hi)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", panel, err)
	}
	return nil
}

func panelLines(panel Panel, data models.ChartData) []line {
	var metrics []line
	switch panel {
	case PanelBP:
		metrics = []line{
			{name: "SYS", metric: models.SortSys, data: data.Sys, color: colorSys},
			{name: "DIA", metric: models.SortDia, data: data.Dia, color: colorDia},
		}
	case PanelPulse:
		metrics = []line{{name: "Pulse", metric: models.SortPulse, data: data.Pulse, color: colorPulse}}
	case PanelTemp:
		metrics = []line{{name: "Temp", metric: models.SortTempC, data: data.TempC, color: colorTemp}}
	}

	out := metrics
	for _, s := range data.Extra {
		for _, m := range metrics {
			if s.Metric == m.metric {
				out = append(out, line{name: s.Name, metric: s.Metric, data: s.Data, color: m.color, overlay: true})
			}
		}
	}
	return out
}

func panelTitle(p Panel) string {
	switch p {
	case PanelBP:
		return "Blood pressure (mmHg)"
	case PanelPulse:
		return "Pulse (bpm)"
	default:
		return "Temperature (°C)"
	}
}

func lineStyle(l line) chart.Style {
	st := chart.Style{
		StrokeColor: l.color,
		StrokeWidth: 2,
		DotColor:    l.color,
		DotWidth:    3,
	}
	if l.overlay {
		st.StrokeColor = l.color.WithAlpha(128)
		st.StrokeDashArray = overlayDash
		st.DotWidth = 0
	}
	return st
}

// points maps non-nil values to x = index+1 so x stays aligned with labels.
func points(data []*float64) (xs, ys []float64) {
	for i, v := range data {
		if v == nil {
			continue
		}
		xs = append(xs, float64(i+1))
		ys = append(ys, *v)
	}
	return xs, ys
}

// xAxis labels at most maxTicks evenly spaced positions. The range is
// padded so a single point still has a non-zero width.
func xAxis(labels []string) chart.XAxis {
	n := len(labels)
	step := 1
	if n > maxTicks {
		step = (n + maxTicks - 1) / maxTicks
	}
	ticks := make([]chart.Tick, 0, maxTicks+1)
	for i := 0; i < n; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: labels[i]})
	}
	maxR := float64(n) + 0.5
	if n <= 1 {
		maxR = 2
	}
	return chart.XAxis{Ticks: ticks, Range: &chart.ContinuousRange{Min: 0.5, Max: maxR}}
}

func padRange(lo, hi float64) *chart.ContinuousRange {
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
