package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vital_dashboard/internal/logger"
	"vital_dashboard/internal/models"
	"vital_dashboard/internal/repository"
)

type ActivityLogService struct {
	repo repository.ActivityRepo
}

func NewActivityLogService(repo repository.ActivityRepo) *ActivityLogService {
	return &ActivityLogService{repo: repo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (LogFilter, error) {
	out := LogFilter{
		From: normalizeToUTC(f.From),
		To:   normalizeToUTC(f.To),
		Type: normalizeEventType(f.Type),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	return out, nil
}

func (s *ActivityLogService) List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, f.From, f.To, f.Type)
}

// activityRecorder appends to the activity log. A failing log write never
// fails the action being logged.
type activityRecorder struct {
	repo repository.ActivityRepo
	log  *logger.Logger
	now  func() time.Time
}

func newActivityRecorder(repo repository.ActivityRepo, log *logger.Logger) *activityRecorder {
	if log == nil {
		log = logger.Nop()
	}
	return &activityRecorder{repo: repo, log: log, now: time.Now}
}

func (r *activityRecorder) record(ctx context.Context, typ, description string, meta map[string]any) {
	if r == nil || r.repo == nil {
		return
	}
	ev := models.ActivityEvent{
		OccurredAt:  r.now().UTC(),
		Type:        typ,
		Description: description,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	// the action already happened; keep the entry even if the caller gave up
	if err := r.repo.Append(context.WithoutCancel(ctx), ev); err != nil {
		r.log.Warnw("activity_append_failed", "type", typ, "err", err)
	}
}
