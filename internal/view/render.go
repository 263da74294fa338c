package view

import "vital_dashboard/internal/models"

// OfflineNotice is shown in place of data when the collection failed to load.
const OfflineNotice = "Could not load entries (server offline)"

// Render builds the complete view for one rendering cycle.
func Render(records []models.Record, prefs models.ViewPrefs, opts Options) models.RenderedView {
	return models.RenderedView{
		Table:   RenderTable(records, prefs.Table, opts),
		Chart:   Aggregate(records, prefs.View, opts),
		Gallery: Gallery(records, opts),
	}
}
