package models

// Series is a named sequence of chart values; nil marks "no data".
type Series struct {
	Name   string     `json:"name"`
	Metric SortKey    `json:"metric"`
	Data   []*float64 `json:"data"`
}

// ChartData is the chart-ready output of one aggregation.
type ChartData struct {
	View   ViewMode   `json:"view"`
	Labels []string   `json:"labels"`
	Sys    []*float64 `json:"sys"`
	Dia    []*float64 `json:"dia"`
	Pulse  []*float64 `json:"pulse"`
	TempC  []*float64 `json:"temp_c"`
	Extra  []Series   `json:"extra,omitempty"`
}

// Row is one visible table row.
type Row struct {
	Record
	ID   string `json:"id"`
	When string `json:"when"`
	Age  string `json:"age"`
}

// Table is a rendered table page.
type Table struct {
	State      TableState `json:"state"`
	Rows       []Row      `json:"rows"`
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
}

// GalleryItem is one photo tile, newest first.
type GalleryItem struct {
	Path string `json:"path"`
	When string `json:"when"`
}

// RenderedView is everything a presentation layer needs for one cycle.
type RenderedView struct {
	Version uint64        `json:"version"`
	Notice  string        `json:"notice,omitempty"`
	Table   Table         `json:"table"`
	Chart   ChartData     `json:"chart"`
	Gallery []GalleryItem `json:"gallery"`
}
