package models

import "time"

// Activity event types recorded by the dashboard.
const (
	ActivityReload       = "RELOAD"
	ActivityLoadFailed   = "LOAD_FAILED"
	ActivityDelete       = "DELETE"
	ActivityDeleteFailed = "DELETE_FAILED"
	ActivityCapture      = "CAPTURE"
	ActivitySubmit       = "SUBMIT"
	ActivitySubmitFailed = "SUBMIT_FAILED"
	ActivityExport       = "EXPORT"
)

// ActivityEvent is a single entry of the dashboard activity log.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
