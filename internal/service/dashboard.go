package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"vital_dashboard/internal/logger"
	"vital_dashboard/internal/models"
	"vital_dashboard/internal/repository"
	"vital_dashboard/internal/view"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "entries"

// DashboardService is the single controller of the loaded collection. The
// collection is replaced wholesale by reloads and never mutated in place.
type DashboardService struct {
	backend  Backend
	prefs    repository.PrefsRepo
	activity *activityRecorder
	opts     view.Options
	log      *logger.Logger

	refresh singleflight.Group
	issued  atomic.Uint64

	mu      sync.RWMutex
	records []models.Record
	applied uint64
	state   models.ViewPrefs
	notice  string
	version uint64
}

func NewDashboardService(
	backend Backend,
	prefs repository.PrefsRepo,
	activity *activityRecorder,
	opts view.Options,
	pageSize int,
	log *logger.Logger,
) *DashboardService {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardService{
		backend:  backend,
		prefs:    prefs,
		activity: activity,
		opts:     opts,
		log:      log,
		state: models.ViewPrefs{
			ID:    1,
			Table: models.NewTableState(pageSize),
			View:  models.ViewFull,
		},
	}
}

// Init restores saved preferences, then loads the collection. A load
// failure is reported but leaves a usable, empty dashboard.
func (s *DashboardService) Init(ctx context.Context) error {
	if s.prefs != nil {
		saved, ok, err := s.prefs.Load(ctx)
		switch {
		case err != nil:
			s.log.Warnw("view_prefs_load_failed", "err", err)
		case ok:
			s.mu.Lock()
			s.state = saved
			s.mu.Unlock()
		}
	}
	_, err := s.Reload(ctx)
	return err
}

func (s *DashboardService) View(_ context.Context) models.RenderedView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.renderLocked()
}

func (s *DashboardService) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *DashboardService) Refresh(ctx context.Context) (models.RenderedView, error) {
	v, err, shared := s.refresh.Do(refreshKey, func() (any, error) {
		return s.Reload(ctx)
	})
	if shared {
		s.log.Debugw("entries_refresh_coalesced")
	}
	return v.(models.RenderedView), err
}

// Reload fetches the collection and applies it unless a reload issued
// later has already been applied. The fetch outlives the caller: a caller
// that goes away does not abort it, and the backend timeout still bounds it.
func (s *DashboardService) Reload(ctx context.Context) (models.RenderedView, error) {
	gen := s.issued.Add(1)
	records, err := s.backend.Entries(context.WithoutCancel(ctx))

	s.mu.Lock()
	if gen < s.applied {
		v := s.renderLocked()
		s.mu.Unlock()
		s.log.Debugw("entries_reload_superseded", "generation", gen)
		return v, nil
	}
	s.applied = gen
	if err != nil {
		s.records = nil
		s.notice = view.OfflineNotice
	} else {
		s.records = records
		s.notice = ""
	}
	s.version++
	v := s.renderLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Errorw("entries_reload_failed", "err", err)
		s.activity.record(ctx, models.ActivityLoadFailed, err.Error(), nil)
		return v, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	s.log.Infow("entries_reloaded", "count", len(records))
	s.activity.record(ctx, models.ActivityReload, fmt.Sprintf("loaded %d entries", len(records)), map[string]any{"count": len(records)})
	return v, nil
}

// Delete removes an entry on the backend and reloads from a fresh fetch.
// On failure nothing local changes.
func (s *DashboardService) Delete(ctx context.Context, id string) (models.RenderedView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return s.View(ctx), fmt.Errorf("%w: empty entry id", ErrInvalidInput)
	}

	if err := s.backend.Delete(ctx, id); err != nil {
		s.log.Errorw("entry_delete_failed", "id", id, "err", err)
		s.activity.record(ctx, models.ActivityDeleteFailed, err.Error(), map[string]any{"id": id})
		return s.View(ctx), fmt.Errorf("%w: %w", ErrMutationFailure, err)
	}
	s.log.Infow("entry_deleted", "id", id)
	s.activity.record(ctx, models.ActivityDelete, "deleted entry "+id, map[string]any{"id": id})
	return s.Reload(ctx)
}

func (s *DashboardService) SortBy(ctx context.Context, key string) (models.RenderedView, error) {
	k, err := models.ParseSortKey(key)
	if err != nil {
		return s.View(ctx), fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.update(ctx, func(p *models.ViewPrefs, _ int) { p.Table = p.Table.SortBy(k) }), nil
}

func (s *DashboardService) Page(ctx context.Context, action PageAction) (models.RenderedView, error) {
	switch action {
	case PageNext:
		return s.update(ctx, func(p *models.ViewPrefs, n int) {
			p.Table = p.Table.Next(view.TotalPages(n, p.Table.PageSize))
		}), nil
	case PagePrev:
		return s.update(ctx, func(p *models.ViewPrefs, _ int) { p.Table = p.Table.Prev() }), nil
	default:
		return s.View(ctx), fmt.Errorf("%w: unknown page action %q", ErrInvalidInput, action)
	}
}

func (s *DashboardService) SetPageSize(ctx context.Context, size int) (models.RenderedView, error) {
	if size < 1 {
		return s.View(ctx), fmt.Errorf("%w: page size must be >= 1, got %d", ErrInvalidInput, size)
	}
	return s.update(ctx, func(p *models.ViewPrefs, _ int) { p.Table = p.Table.WithPageSize(size) }), nil
}

// SetView switches the chart aggregation. Unknown modes select the full view.
func (s *DashboardService) SetView(ctx context.Context, mode string) models.RenderedView {
	m := models.ParseViewMode(mode)
	return s.update(ctx, func(p *models.ViewPrefs, _ int) { p.View = m })
}

func (s *DashboardService) Chart(_ context.Context, mode string) models.ChartData {
	s.mu.RLock()
	records, current := s.records, s.state.View
	s.mu.RUnlock()

	m := current
	if strings.TrimSpace(mode) != "" {
		m = models.ParseViewMode(mode)
	}
	return view.Aggregate(records, m, s.opts)
}

// Export renders the visible page or the whole collection as CSV.
func (s *DashboardService) Export(ctx context.Context, scope ExportScope) (Export, error) {
	var (
		records []models.Record
		name    string
	)
	switch scope {
	case ExportPage:
		records = view.PageRecords(s.View(ctx).Table)
		name = view.PageExportName
	case ExportAll:
		s.mu.RLock()
		records = s.records
		s.mu.RUnlock()
		name = view.AllExportName
	default:
		return Export{}, fmt.Errorf("%w: unknown export scope %q", ErrInvalidInput, scope)
	}

	body, err := view.ToDelimitedText(records)
	if err != nil {
		if !errors.Is(err, view.ErrEmptyExport) {
			s.log.Errorw("export_failed", "scope", scope, "err", err)
		}
		return Export{}, err
	}

	size := humanize.Bytes(uint64(len(body)))
	s.log.Infow("entries_exported", "file", name, "rows", len(records), "size", size)
	s.activity.record(ctx, models.ActivityExport,
		fmt.Sprintf("exported %d rows to %s (%s)", len(records), name, size),
		map[string]any{"file": name, "rows": len(records)})
	return Export{Name: name, Body: body, Rows: len(records)}, nil
}

// update applies fn to the view state, keeps the page clamped, bumps the
// version and persists the result. fn receives the collection size.
func (s *DashboardService) update(ctx context.Context, fn func(p *models.ViewPrefs, total int)) models.RenderedView {
	s.mu.Lock()
	next := s.state
	fn(&next, len(s.records))
	next.Table = next.Table.Clamp(view.TotalPages(len(s.records), next.Table.PageSize))
	changed := next.Table != s.state.Table || next.View != s.state.View
	s.state = next
	if changed {
		s.version++
	}
	v := s.renderLocked()
	saved := s.state
	s.mu.Unlock()

	if changed {
		s.savePrefs(ctx, saved)
	}
	return v
}

func (s *DashboardService) savePrefs(ctx context.Context, p models.ViewPrefs) {
	if s.prefs == nil {
		return
	}
	p.UpdatedAt = s.now()
	if err := s.prefs.Save(ctx, p); err != nil {
		s.log.Warnw("view_prefs_save_failed", "err", err)
	}
}

func (s *DashboardService) now() time.Time {
	if s.opts.Now != nil {
		return s.opts.Now()
	}
	return time.Now()
}

// renderLocked requires s.mu held (read or write).
func (s *DashboardService) renderLocked() models.RenderedView {
	v := view.Render(s.records, s.state, s.opts)
	v.Version = s.version
	v.Notice = s.notice
	return v
}
