package models

import (
	"path"
	"strconv"
	"strings"
	"time"
)

// Record is one normalized vital-sign measurement.
type Record struct {
	Path           string  `json:"path"`
	Sys            float64 `json:"sys"`
	Dia            float64 `json:"dia"`
	Pulse          float64 `json:"pulse"`
	TempC          float64 `json:"temp_c"`
	TimestampNanos int64   `json:"timestamp_nanos"`
}

// ID returns the identifier the backend expects on DELETE /entry/{id}:
// the file name of Path without its extension. Records without a usable
// path fall back to the decimal timestamp.
func (r Record) ID() string {
	name := r.Path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	stem := strings.TrimSuffix(name, path.Ext(name))
	if stem == "" {
		return strconv.FormatInt(r.TimestampNanos, 10)
	}
	return stem
}

// Time converts the nanosecond timestamp to a time.Time truncated to
// milliseconds. A zero timestamp yields the zero time.
func (r Record) Time() time.Time {
	if r.TimestampNanos == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.UnixMilli())
}

// UnixMilli is the timestamp in epoch milliseconds, floored.
func (r Record) UnixMilli() int64 {
	return FloorDiv(r.TimestampNanos, int64(time.Millisecond))
}

// Metric returns the numeric value stored under key.
func (r Record) Metric(key SortKey) float64 {
	switch key {
	case SortSys:
		return r.Sys
	case SortDia:
		return r.Dia
	case SortPulse:
		return r.Pulse
	case SortTempC:
		return r.TempC
	default:
		return float64(r.TimestampNanos)
	}
}

// FloorDiv divides rounding towards negative infinity.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
