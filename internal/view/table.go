package view

import (
	"cmp"
	"slices"
	"time"

	"vital_dashboard/internal/models"

	"github.com/dustin/go-humanize"
)

// SortRecords returns a stably sorted copy of records. Records with equal
// keys keep their input order in both directions.
func SortRecords(records []models.Record, key models.SortKey, dir models.SortDir) []models.Record {
	sorted := slices.Clone(records)
	sign := -1
	if dir == models.SortAsc {
		sign = 1
	}
	slices.SortStableFunc(sorted, func(a, b models.Record) int {
		if key == models.SortTimestamp {
			return sign * cmp.Compare(a.TimestampNanos, b.TimestampNanos)
		}
		return sign * cmp.Compare(a.Metric(key), b.Metric(key))
	})
	return sorted
}

// TotalPages is max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + pageSize - 1) / pageSize
	return max(1, pages)
}

// RenderTable sorts, clamps and slices the collection for the given state.
// The returned Table carries the clamped state.
func RenderTable(records []models.Record, state models.TableState, opts Options) models.Table {
	opts = opts.withDefaults()
	if state.PageSize < 1 {
		state.PageSize = models.DefaultPageSize
	}
	sorted := SortRecords(records, state.SortKey, state.SortDir)
	totalPages := TotalPages(len(sorted), state.PageSize)
	state = state.Clamp(totalPages)

	start := (state.Page - 1) * state.PageSize
	end := min(start+state.PageSize, len(sorted))
	rows := make([]models.Row, 0, max(0, end-start))
	now := opts.Now()
	for _, rec := range sorted[min(start, len(sorted)):end] {
		rows = append(rows, newRow(rec, now, opts))
	}

	return models.Table{
		State:      state,
		Rows:       rows,
		Total:      len(sorted),
		TotalPages: totalPages,
	}
}

func newRow(rec models.Record, now time.Time, opts Options) models.Row {
	row := models.Row{Record: rec, ID: rec.ID()}
	if t := rec.Time(); !t.IsZero() {
		row.When = opts.format(t)
		row.Age = humanize.RelTime(t, now, "ago", "from now")
	}
	return row
}

// PageRecords returns the records of the visible page, used by the page export.
func PageRecords(t models.Table) []models.Record {
	out := make([]models.Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Record)
	}
	return out
}

// Gallery lists every photo newest first.
func Gallery(records []models.Record, opts Options) []models.GalleryItem {
	opts = opts.withDefaults()
	sorted := SortRecords(records, models.SortTimestamp, models.SortDesc)
	out := make([]models.GalleryItem, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, models.GalleryItem{Path: r.Path, When: opts.format(r.Time())})
	}
	return out
}
