package view

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"vital_dashboard/internal/models"
)

// Bucket widths in epoch milliseconds.
const (
	dayMillis  = int64(24 * time.Hour / time.Millisecond)
	weekMillis = 7 * dayMillis

	recentWindow = 30 * 24 * time.Hour
	hoursPerDay  = 24
)

// Overlay names for the averaged comparison view.
const (
	OverlaySys   = "SYS avg"
	OverlayDia   = "DIA avg"
	OverlayPulse = "Pulse avg"
	OverlayTemp  = "Temp avg"
)

type metric func(models.Record) float64

var (
	sysOf   metric = func(r models.Record) float64 { return r.Sys }
	diaOf   metric = func(r models.Record) float64 { return r.Dia }
	pulseOf metric = func(r models.Record) float64 { return r.Pulse }
	tempOf  metric = func(r models.Record) float64 { return r.TempC }
)

// Aggregate prepares chart series for the given view mode. Records are
// processed in ascending timestamp order whatever the mode.
func Aggregate(records []models.Record, mode models.ViewMode, opts Options) models.ChartData {
	opts = opts.withDefaults()
	asc := SortRecords(records, models.SortTimestamp, models.SortAsc)

	var out models.ChartData
	switch mode {
	case models.ViewLast30Days:
		cutoff := opts.Now().Add(-recentWindow).UnixMilli()
		recent := asc[:0:0]
		for _, r := range asc {
			if r.UnixMilli() >= cutoff {
				recent = append(recent, r)
			}
		}
		out = perRecord(recent, opts)
	case models.ViewDaily:
		out = byWidth(asc, dayMillis, opts)
	case models.ViewWeekly:
		out = byWidth(asc, weekMillis, opts)
	case models.ViewHourOfDay:
		out = byHourOfDay(asc, opts)
	case models.ViewAvgCompare:
		out = perRecord(asc, opts)
		out.Extra = overlays(out)
	default:
		mode = models.ViewFull
		out = perRecord(asc, opts)
	}
	out.View = mode
	return out
}

// perRecord emits one point per record.
func perRecord(records []models.Record, opts Options) models.ChartData {
	out := newChartData(len(records))
	for _, r := range records {
		out.Labels = append(out.Labels, opts.format(r.Time()))
		out.Sys = append(out.Sys, ptr(r.Sys))
		out.Dia = append(out.Dia, ptr(r.Dia))
		out.Pulse = append(out.Pulse, ptr(r.Pulse))
		out.TempC = append(out.TempC, ptr(r.TempC))
	}
	return out
}

// byWidth buckets records on floor(ms/width)*width. Only buckets holding at
// least one record are emitted; missing days or weeks are not zero-filled.
func byWidth(records []models.Record, width int64, opts Options) models.ChartData {
	buckets := make(map[int64][]models.Record)
	for _, r := range records {
		start := models.FloorDiv(r.UnixMilli(), width) * width
		buckets[start] = append(buckets[start], r)
	}
	keys := slices.Sorted(maps.Keys(buckets))

	out := newChartData(len(keys))
	for _, k := range keys {
		group := buckets[k]
		out.Labels = append(out.Labels, opts.format(time.UnixMilli(k)))
		out.Sys = append(out.Sys, ptr(mean(group, sysOf)))
		out.Dia = append(out.Dia, ptr(mean(group, diaOf)))
		out.Pulse = append(out.Pulse, ptr(mean(group, pulseOf)))
		out.TempC = append(out.TempC, ptr(mean(group, tempOf)))
	}
	return out
}

// byHourOfDay always yields 24 buckets keyed by the local hour. An hour
// without records yields nil rather than 0. Records without a timestamp are
// skipped.
func byHourOfDay(records []models.Record, opts Options) models.ChartData {
	var buckets [hoursPerDay][]models.Record
	for _, r := range records {
		ms := r.UnixMilli()
		if ms == 0 {
			continue
		}
		h := time.UnixMilli(ms).In(opts.Location).Hour()
		buckets[h] = append(buckets[h], r)
	}

	out := newChartData(hoursPerDay)
	for h, group := range buckets {
		out.Labels = append(out.Labels, fmt.Sprintf("%02d:00", h))
		out.Sys = append(out.Sys, meanOrNil(group, sysOf))
		out.Dia = append(out.Dia, meanOrNil(group, diaOf))
		out.Pulse = append(out.Pulse, meanOrNil(group, pulseOf))
		out.TempC = append(out.TempC, meanOrNil(group, tempOf))
	}
	return out
}

// overlays builds one constant series per metric at the metric's mean over
// the visible series, sharing the label axis.
func overlays(d models.ChartData) []models.Series {
	line := func(name string, key models.SortKey, values []*float64) models.Series {
		avg := meanValues(values)
		data := make([]*float64, len(d.Labels))
		for i := range data {
			data[i] = ptr(avg)
		}
		return models.Series{Name: name, Metric: key, Data: data}
	}
	return []models.Series{
		line(OverlaySys, models.SortSys, d.Sys),
		line(OverlayDia, models.SortDia, d.Dia),
		line(OverlayPulse, models.SortPulse, d.Pulse),
		line(OverlayTemp, models.SortTempC, d.TempC),
	}
}

func newChartData(n int) models.ChartData {
	return models.ChartData{
		Labels: make([]string, 0, n),
		Sys:    make([]*float64, 0, n),
		Dia:    make([]*float64, 0, n),
		Pulse:  make([]*float64, 0, n),
		TempC:  make([]*float64, 0, n),
	}
}

// mean is the unweighted arithmetic mean; an empty group yields 0.
func mean(group []models.Record, sel metric) float64 {
	if len(group) == 0 {
		return 0
	}
	var sum float64
	for _, r := range group {
		sum += sel(r)
	}
	return sum / float64(len(group))
}

func meanOrNil(group []models.Record, sel metric) *float64 {
	if len(group) == 0 {
		return nil
	}
	return ptr(mean(group, sel))
}

// meanValues averages a series, counting nil points as 0.
func meanValues(values []*float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		if v != nil {
			sum += *v
		}
	}
	return sum / float64(len(values))
}

func ptr(v float64) *float64 { return &v }
