package service

import (
	"time"

	"vital_dashboard/internal/models"
)

// LogFilter narrows the activity log by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "RELOAD", "DELETE", "EXPORT", ...
}

// PageAction moves the table one page.
type PageAction string

const (
	PageNext PageAction = "next"
	PagePrev PageAction = "prev"
)

// ExportScope selects the records written by an export.
type ExportScope string

const (
	ExportPage ExportScope = "page"
	ExportAll  ExportScope = "all"
)

// Export is a generated CSV file.
type Export struct {
	Name string
	Body string
	Rows int
}

// SubmitParams carries the vitals as typed by the user. Combined adds the
// composite strip to the upload.
type SubmitParams struct {
	Vitals   models.Vitals
	Combined bool
}
