package models

import (
	"fmt"
	"strings"
	"time"
)

// SortKey names a sortable table column.
type SortKey string

const (
	SortTimestamp SortKey = "timestamp_nanos"
	SortSys       SortKey = "sys"
	SortDia       SortKey = "dia"
	SortPulse     SortKey = "pulse"
	SortTempC     SortKey = "temp_c"
)

// ParseSortKey validates a column name coming from the UI.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortTimestamp, SortSys, SortDia, SortPulse, SortTempC:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// SortDir is the table sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ViewMode selects a chart aggregation strategy.
type ViewMode string

const (
	ViewFull       ViewMode = "full"
	ViewLast30Days ViewMode = "30d"
	ViewWeekly     ViewMode = "7d_weekly"
	ViewDaily      ViewMode = "daily"
	ViewHourOfDay  ViewMode = "tod"
	ViewAvgCompare ViewMode = "avg_compare"
)

// ParseViewMode maps selector values to a ViewMode. Unknown values select
// the full view.
func ParseViewMode(s string) ViewMode {
	switch m := ViewMode(strings.TrimSpace(s)); m {
	case ViewLast30Days, ViewWeekly, ViewDaily, ViewHourOfDay, ViewAvgCompare:
		return m
	default:
		return ViewFull
	}
}

// DefaultPageSize matches the table's initial page size.
const DefaultPageSize = 10

// TableState is the user-controlled table view state. Transitions return
// a new value and never mutate the receiver.
type TableState struct {
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	SortKey  SortKey `json:"sort_key"`
	SortDir  SortDir `json:"sort_dir"`
}

// NewTableState returns the initial session state: first page, newest first.
func NewTableState(pageSize int) TableState {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return TableState{Page: 1, PageSize: pageSize, SortKey: SortTimestamp, SortDir: SortDesc}
}

// SortBy toggles the direction when key is already active, otherwise it
// switches to key in descending order. The page resets to 1.
func (s TableState) SortBy(key SortKey) TableState {
	if s.SortKey == key {
		if s.SortDir == SortAsc {
			s.SortDir = SortDesc
		} else {
			s.SortDir = SortAsc
		}
	} else {
		s.SortKey = key
		s.SortDir = SortDesc
	}
	s.Page = 1
	return s
}

// WithPageSize changes the page size and resets the page to 1.
func (s TableState) WithPageSize(size int) TableState {
	if size < 1 {
		size = 1
	}
	s.PageSize = size
	s.Page = 1
	return s
}

// Next advances one page without passing totalPages.
func (s TableState) Next(totalPages int) TableState {
	if s.Page < totalPages {
		s.Page++
	}
	return s
}

// Prev moves back one page without going below 1.
func (s TableState) Prev() TableState {
	if s.Page > 1 {
		s.Page--
	}
	return s
}

// Clamp keeps Page within [1, totalPages].
func (s TableState) Clamp(totalPages int) TableState {
	if totalPages < 1 {
		totalPages = 1
	}
	if s.Page > totalPages {
		s.Page = totalPages
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// ViewPrefs is the persisted dashboard state (single row).
type ViewPrefs struct {
	ID        int        `json:"id"`
	Table     TableState `json:"table"`
	View      ViewMode   `json:"view"`
	UpdatedAt time.Time  `json:"updated_at"`
}
