package service

import (
	"context"
	"io"

	"vital_dashboard/internal/capture"
	"vital_dashboard/internal/charts"
	"vital_dashboard/internal/logger"
	"vital_dashboard/internal/models"
	"vital_dashboard/internal/repository"
	"vital_dashboard/internal/view"
)

// Backend is the vital-tracker HTTP API.
type Backend interface {
	Entries(ctx context.Context) ([]models.Record, error)
	Delete(ctx context.Context, id string) error
	Submit(ctx context.Context, vitals models.Vitals, parts []models.Attachment) error
}

// Dashboard owns the loaded collection and the table and chart view state.
type Dashboard interface {
	// Init restores saved preferences and performs the first load.
	Init(ctx context.Context) error
	View(ctx context.Context) models.RenderedView
	Version() uint64
	// Refresh reloads on user request; concurrent calls share one fetch.
	Refresh(ctx context.Context) (models.RenderedView, error)
	// Reload always issues a fresh fetch; used after mutations.
	Reload(ctx context.Context) (models.RenderedView, error)
	Delete(ctx context.Context, id string) (models.RenderedView, error)

	SortBy(ctx context.Context, key string) (models.RenderedView, error)
	Page(ctx context.Context, action PageAction) (models.RenderedView, error)
	SetPageSize(ctx context.Context, size int) (models.RenderedView, error)
	SetView(ctx context.Context, mode string) models.RenderedView
	// Chart aggregates for mode, or the current view mode when mode is empty.
	Chart(ctx context.Context, mode string) models.ChartData

	Export(ctx context.Context, scope ExportScope) (Export, error)
}

// Camera runs the four-photo capture workflow.
type Camera interface {
	CaptureStatus(ctx context.Context) capture.Status
	CaptureFrame(ctx context.Context) (capture.Status, error)
	Submit(ctx context.Context, p SubmitParams) (capture.Status, error)
}

// ActivityLog exposes the append-only dashboard history.
type ActivityLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error)
}

// Charts renders chart panels as PNG.
type Charts interface {
	RenderPanel(ctx context.Context, w io.Writer, panel, mode string) error
}

type Service struct {
	Dashboard
	Camera
	ActivityLog
	Charts
}

// Deps are the collaborators that do not live in the local database.
type Deps struct {
	Backend    Backend
	Source     capture.Source
	Compositor *capture.Compositor
	Options    view.Options
	PageSize   int
	ChartSize  charts.Size
	Log        *logger.Logger
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Source == nil {
		deps.Source = capture.NoSource{}
	}
	if deps.Compositor == nil {
		deps.Compositor = capture.NewCompositor(0, 0, nil)
	}

	recorder := newActivityRecorder(repos.Activity, deps.Log)
	dashboard := NewDashboardService(deps.Backend, repos.Prefs, recorder, deps.Options, deps.PageSize, deps.Log)
	return &Service{
		Dashboard:   dashboard,
		Camera:      NewCameraService(deps.Source, deps.Compositor, deps.Backend, dashboard, recorder, deps.Log),
		ActivityLog: NewActivityLogService(repos.Activity),
		Charts:      NewChartService(dashboard, deps.ChartSize),
	}
}
