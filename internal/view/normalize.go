// Package view turns a fetched entry collection into display-ready
// structures: sorted and paginated tables, chart series and CSV exports.
// Everything here is pure; side effects live in the service layer.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"vital_dashboard/internal/models"
)

// RawEntry is one loosely typed entry as served by GET /entries.
type RawEntry map[string]any

// DecodeEntries reads a JSON array of raw entries and normalizes it.
func DecodeEntries(r io.Reader) ([]models.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw []RawEntry
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return Normalize(raw), nil
}

// Normalize coerces every raw entry into a Record. Missing or unparsable
// numeric fields become 0; no range validation is applied.
func Normalize(raw []RawEntry) []models.Record {
	out := make([]models.Record, 0, len(raw))
	for _, e := range raw {
		out = append(out, models.Record{
			Path:           coerceString(e["path"]),
			Sys:            coerceFloat(e["sys"]),
			Dia:            coerceFloat(e["dia"]),
			Pulse:          coerceFloat(e["pulse"]),
			TempC:          coerceFloat(e["temp_c"]),
			TimestampNanos: coerceInt64(e["timestamp_nanos"]),
		})
	}
	return out
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func coerceFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case json.Number:
		f = parseFloat(string(n))
	case float64:
		f = n
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case string:
		f = parseFloat(n)
	case bool:
		if n {
			f = 1
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// coerceInt64 keeps integer literals exact; nanosecond timestamps exceed
// the 53-bit float mantissa.
func coerceInt64(v any) int64 {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = string(n)
	case string:
		s = n
	case int64:
		return n
	case int:
		return int64(n)
	default:
		f := coerceFloat(v)
		return int64(f)
	}
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	f := parseFloat(s)
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(f)
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
