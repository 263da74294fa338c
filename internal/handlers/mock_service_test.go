package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"vital_dashboard/internal/capture"
	"vital_dashboard/internal/models"
	"vital_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDashboard struct {
	mu sync.Mutex

	view    models.RenderedView
	chart   models.ChartData
	export  service.Export
	err     error
	version uint64

	lastSortKey  string
	lastAction   service.PageAction
	lastPageSize int
	lastView     string
	lastChart    string
	lastDeleteID string
	lastScope    service.ExportScope
	refreshCalls int
}

func (m *mockDashboard) Init(context.Context) error { return m.err }

func (m *mockDashboard) View(context.Context) models.RenderedView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

func (m *mockDashboard) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

func (m *mockDashboard) bump(v models.RenderedView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	v.Version = m.version
	m.view = v
}

func (m *mockDashboard) Refresh(context.Context) (models.RenderedView, error) {
	m.refreshCalls++
	return m.view, m.err
}

func (m *mockDashboard) Reload(ctx context.Context) (models.RenderedView, error) {
	return m.Refresh(ctx)
}

func (m *mockDashboard) Delete(_ context.Context, id string) (models.RenderedView, error) {
	m.lastDeleteID = id
	return m.view, m.err
}

func (m *mockDashboard) SortBy(_ context.Context, key string) (models.RenderedView, error) {
	m.lastSortKey = key
	return m.view, m.err
}

func (m *mockDashboard) Page(_ context.Context, a service.PageAction) (models.RenderedView, error) {
	m.lastAction = a
	return m.view, m.err
}

func (m *mockDashboard) SetPageSize(_ context.Context, n int) (models.RenderedView, error) {
	m.lastPageSize = n
	return m.view, m.err
}

func (m *mockDashboard) SetView(_ context.Context, mode string) models.RenderedView {
	m.lastView = mode
	return m.view
}

func (m *mockDashboard) Chart(_ context.Context, mode string) models.ChartData {
	m.lastChart = mode
	return m.chart
}

func (m *mockDashboard) Export(_ context.Context, scope service.ExportScope) (service.Export, error) {
	m.lastScope = scope
	return m.export, m.err
}

type mockCamera struct {
	status     capture.Status
	err        error
	lastSubmit service.SubmitParams
	captures   int
}

func (m *mockCamera) CaptureStatus(context.Context) capture.Status { return m.status }

func (m *mockCamera) CaptureFrame(context.Context) (capture.Status, error) {
	m.captures++
	return m.status, m.err
}

func (m *mockCamera) Submit(_ context.Context, p service.SubmitParams) (capture.Status, error) {
	m.lastSubmit = p
	return m.status, m.err
}

type mockActivityLog struct {
	resp     []models.ActivityEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockActivityLog) List(_ context.Context, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockCharts struct {
	png       []byte
	err       error
	lastPanel string
	lastView  string
}

func (m *mockCharts) RenderPanel(_ context.Context, w io.Writer, panel, mode string) error {
	m.lastPanel, m.lastView = panel, mode
	if m.err != nil {
		return m.err
	}
	_, err := w.Write(m.png)
	return err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}
