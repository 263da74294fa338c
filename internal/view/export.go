package view

import (
	"errors"
	"strconv"
	"strings"

	"vital_dashboard/internal/models"
)

// Export file names served for the two fixed invocations.
const (
	PageExportName = "vital_page.csv"
	AllExportName  = "vital_all.csv"
)

// ErrEmptyExport is returned when there is nothing to export.
var ErrEmptyExport = errors.New("no data to export")

// ExportColumns is the fixed column order of exported files.
var ExportColumns = []string{"timestamp_nanos", "sys", "dia", "pulse", "temp_c", "path"}

// ToDelimitedText renders records as comma separated text with a header
// row. String fields are always quoted with inner quotes doubled; an empty
// path is treated as absent and left empty.
func ToDelimitedText(records []models.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrEmptyExport
	}

	var b strings.Builder
	b.WriteString(strings.Join(ExportColumns, ","))
	for _, r := range records {
		b.WriteByte('\n')
		b.WriteString(strconv.FormatInt(r.TimestampNanos, 10))
		for _, v := range []float64{r.Sys, r.Dia, r.Pulse, r.TempC} {
			b.WriteByte(',')
			b.WriteString(formatNumber(v))
		}
		b.WriteByte(',')
		if r.Path != "" {
			b.WriteString(quote(r.Path))
		}
	}
	return b.String(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
