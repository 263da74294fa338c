package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"vital_dashboard/internal/backend"
	"vital_dashboard/internal/models"
	"vital_dashboard/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

func testOptions() view.Options {
	return view.Options{Location: time.UTC, TimeLayout: view.DefaultTimeLayout, Now: func() time.Time { return fixedNow }}
}

func newTestDashboard(b *fakeBackend, pageSize int) (*DashboardService, *fakePrefsRepo, *fakeActivityRepo) {
	prefs := &fakePrefsRepo{}
	activity := &fakeActivityRepo{}
	d := NewDashboardService(b, prefs, newActivityRecorder(activity, nil), testOptions(), pageSize, nil)
	return d, prefs, activity
}

func threeRecords() []models.Record {
	return []models.Record{rec("a", 8, 120), rec("b", 9, 130), rec("c", 10, 110)}
}

func TestDashboard_InitRestoresPrefsAndLoads(t *testing.T) {
	b := &fakeBackend{records: threeRecords()}
	d, prefs, activity := newTestDashboard(b, 10)
	prefs.saved = &models.ViewPrefs{
		ID:    1,
		Table: models.TableState{Page: 1, PageSize: 2, SortKey: models.SortSys, SortDir: models.SortAsc},
		View:  models.ViewDaily,
	}

	require.NoError(t, d.Init(context.Background()))

	v := d.View(context.Background())
	assert.Equal(t, uint64(1), v.Version)
	assert.Empty(t, v.Notice)
	assert.Equal(t, 3, v.Table.Total)
	assert.Equal(t, 2, v.Table.TotalPages)
	require.Len(t, v.Table.Rows, 2)
	assert.Equal(t, "c", v.Table.Rows[0].ID)
	assert.Equal(t, models.ViewDaily, v.Chart.View)
	assert.Len(t, v.Gallery, 3)
	assert.Equal(t, []string{models.ActivityReload}, activity.types())
}

func TestDashboard_LoadFailureLeavesEmptyViewWithNotice(t *testing.T) {
	b := &fakeBackend{records: threeRecords()}
	d, _, activity := newTestDashboard(b, 10)
	_, err := d.Reload(context.Background())
	require.NoError(t, err)

	b.entriesErr = &backend.StatusError{Op: "GET /entries", Code: 503}
	v, err := d.Reload(context.Background())
	require.ErrorIs(t, err, ErrLoadFailure)

	var se *backend.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 503, se.Code)

	assert.Equal(t, view.OfflineNotice, v.Notice)
	assert.Zero(t, v.Table.Total)
	assert.Empty(t, v.Table.Rows)
	assert.Equal(t, 1, v.Table.TotalPages)
	assert.Empty(t, v.Chart.Labels)
	assert.Equal(t, []string{models.ActivityReload, models.ActivityLoadFailed}, activity.types())
}

func TestDashboard_RefreshCoalescesConcurrentCalls(t *testing.T) {
	gate := make(chan []models.Record)
	b := &fakeBackend{gates: []chan []models.Record{gate}}
	d, _, _ := newTestDashboard(b, 10)

	var wg sync.WaitGroup
	views := make([]models.RenderedView, 2)
	for i := range views {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := d.Refresh(context.Background())
			assert.NoError(t, err)
			views[i] = v
		}(i)
	}

	require.Eventually(t, func() bool { return b.calls() == 1 }, time.Second, time.Millisecond)
	// give the second caller time to join the in-flight fetch
	time.Sleep(20 * time.Millisecond)
	gate <- threeRecords()
	wg.Wait()

	assert.Equal(t, 1, b.calls())
	assert.Equal(t, views[0].Version, views[1].Version)
	assert.Equal(t, 3, views[1].Table.Total)
}

func TestDashboard_LastIssuedReloadWins(t *testing.T) {
	older, newer := make(chan []models.Record), make(chan []models.Record)
	b := &fakeBackend{gates: []chan []models.Record{older, newer}}
	d, _, _ := newTestDashboard(b, 10)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := d.Reload(ctx)
		firstDone <- err
	}()
	require.Eventually(t, func() bool { return b.calls() == 1 }, time.Second, time.Millisecond)

	secondDone := make(chan error, 1)
	go func() {
		_, err := d.Reload(ctx)
		secondDone <- err
	}()
	require.Eventually(t, func() bool { return b.calls() == 2 }, time.Second, time.Millisecond)

	// the later-issued reload answers first
	newer <- threeRecords()
	require.NoError(t, <-secondDone)
	assert.Equal(t, 3, d.View(ctx).Table.Total)
	version := d.Version()

	older <- threeRecords()[:1]
	require.NoError(t, <-firstDone)
	assert.Equal(t, 3, d.View(ctx).Table.Total, "stale response must not replace the collection")
	assert.Equal(t, version, d.Version())
}

func TestDashboard_CancelledCallerKeepsLoadedView(t *testing.T) {
	gate := make(chan []models.Record)
	b := &fakeBackend{records: threeRecords(), gates: []chan []models.Record{nil, gate}}
	d, _, activity := newTestDashboard(b, 10)
	require.NoError(t, d.Init(context.Background()))
	before := d.Version()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan models.RenderedView, 1)
	go func() {
		v, _ := d.Refresh(ctx)
		done <- v
	}()
	require.Eventually(t, func() bool { return b.calls() == 2 }, time.Second, 5*time.Millisecond)
	cancel()

	// the caller is gone but the fetch is still in flight
	select {
	case <-done:
		t.Fatal("refresh returned before the fetch completed")
	case <-time.After(50 * time.Millisecond):
	}
	v := d.View(context.Background())
	assert.Equal(t, 3, v.Table.Total)
	assert.Empty(t, v.Notice)
	assert.Equal(t, before, d.Version())
	assert.NotContains(t, activity.types(), models.ActivityLoadFailed)

	gate <- threeRecords()[:2]
	v = <-done
	assert.Equal(t, 2, v.Table.Total)
	assert.Empty(t, v.Notice)
	assert.NotContains(t, activity.types(), models.ActivityLoadFailed)
}

func TestDashboard_DeleteReloadsFromFreshFetch(t *testing.T) {
	b := &fakeBackend{records: threeRecords()}
	d, _, activity := newTestDashboard(b, 10)
	_, err := d.Reload(context.Background())
	require.NoError(t, err)

	v, err := d.Delete(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, b.deleted)
	assert.Equal(t, 2, b.calls())
	assert.Equal(t, 2, v.Table.Total)
	assert.Equal(t, []string{models.ActivityReload, models.ActivityDelete, models.ActivityReload}, activity.types())
}

func TestDashboard_DeleteFailureKeepsState(t *testing.T) {
	b := &fakeBackend{records: threeRecords(), deleteErr: &backend.StatusError{Op: "DELETE /entry/b", Code: 404, Body: "no such entry"}}
	d, _, _ := newTestDashboard(b, 10)
	before, err := d.Reload(context.Background())
	require.NoError(t, err)

	after, err := d.Delete(context.Background(), "b")
	require.ErrorIs(t, err, ErrMutationFailure)
	assert.True(t, strings.Contains(err.Error(), "no such entry"))
	assert.Equal(t, before, after)
	assert.Equal(t, 1, b.calls())

	_, err = d.Delete(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDashboard_TableTransitionsPersistPrefs(t *testing.T) {
	var recs []models.Record
	for h := 0; h < 7; h++ {
		recs = append(recs, rec(string(rune('a'+h)), h, float64(100+h)))
	}
	b := &fakeBackend{records: recs}
	d, prefs, _ := newTestDashboard(b, 3)
	ctx := context.Background()
	_, err := d.Reload(ctx)
	require.NoError(t, err)

	v, err := d.Page(ctx, PageNext)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Table.State.Page)
	_, _ = d.Page(ctx, PageNext)
	v, _ = d.Page(ctx, PageNext)
	assert.Equal(t, 3, v.Table.State.Page, "next stops at the last page")
	assert.Len(t, v.Table.Rows, 1)

	v, err = d.SortBy(ctx, "sys")
	require.NoError(t, err)
	assert.Equal(t, models.TableState{Page: 1, PageSize: 3, SortKey: models.SortSys, SortDir: models.SortDesc}, v.Table.State)
	v, _ = d.SortBy(ctx, "sys")
	assert.Equal(t, models.SortAsc, v.Table.State.SortDir)
	assert.Equal(t, "a", v.Table.Rows[0].ID)

	_, err = d.SortBy(ctx, "weight")
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err = d.SetPageSize(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Table.TotalPages)
	_, err = d.SetPageSize(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = d.Page(ctx, "last")
	assert.ErrorIs(t, err, ErrInvalidInput)

	v = d.SetView(ctx, "bogus")
	assert.Equal(t, models.ViewFull, v.Chart.View)
	v = d.SetView(ctx, "tod")
	assert.Len(t, v.Chart.Labels, 24)

	require.NotNil(t, prefs.saved)
	assert.Equal(t, models.ViewHourOfDay, prefs.saved.View)
	assert.Equal(t, 5, prefs.saved.Table.PageSize)
	assert.Equal(t, fixedNow, prefs.saved.UpdatedAt)
}

func TestDashboard_VersionOnlyMovesOnChange(t *testing.T) {
	b := &fakeBackend{records: threeRecords()}
	d, prefs, _ := newTestDashboard(b, 10)
	ctx := context.Background()
	_, err := d.Reload(ctx)
	require.NoError(t, err)

	v0 := d.Version()
	_, _ = d.Page(ctx, PagePrev)
	assert.Equal(t, v0, d.Version())
	assert.Zero(t, prefs.saves)

	d.SetView(ctx, "daily")
	assert.Equal(t, v0+1, d.Version())
}

func TestDashboard_ChartPreviewDoesNotChangeMode(t *testing.T) {
	b := &fakeBackend{records: threeRecords()}
	d, _, _ := newTestDashboard(b, 10)
	ctx := context.Background()
	_, err := d.Reload(ctx)
	require.NoError(t, err)

	daily := d.Chart(ctx, "daily")
	assert.Equal(t, models.ViewDaily, daily.View)
	require.Len(t, daily.Sys, 1)
	assert.InDelta(t, 120.0, *daily.Sys[0], 1e-9)

	assert.Equal(t, models.ViewFull, d.Chart(ctx, "").View)
}

func TestDashboard_Export(t *testing.T) {
	b := &fakeBackend{records: threeRecords()}
	d, _, activity := newTestDashboard(b, 2)
	ctx := context.Background()

	_, err := d.Export(ctx, ExportAll)
	require.ErrorIs(t, err, view.ErrEmptyExport)

	_, err = d.Reload(ctx)
	require.NoError(t, err)

	page, err := d.Export(ctx, ExportPage)
	require.NoError(t, err)
	assert.Equal(t, view.PageExportName, page.Name)
	assert.Equal(t, 2, page.Rows)
	lines := strings.Split(page.Body, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timestamp_nanos,sys,dia,pulse,temp_c,path", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], `"/photos/c.png"`), lines[1])

	all, err := d.Export(ctx, ExportAll)
	require.NoError(t, err)
	assert.Equal(t, view.AllExportName, all.Name)
	assert.Equal(t, 3, all.Rows)

	_, err = d.Export(ctx, "selection")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, []string{models.ActivityReload, models.ActivityExport, models.ActivityExport}, activity.types())
}

func TestDashboard_PrefsSaveFailureIsNotFatal(t *testing.T) {
	b := &fakeBackend{records: threeRecords()}
	d, prefs, _ := newTestDashboard(b, 10)
	prefs.err = errors.New("read-only database")

	require.NoError(t, d.Init(context.Background()))
	v, err := d.SortBy(context.Background(), "pulse")
	require.NoError(t, err)
	assert.Equal(t, models.SortPulse, v.Table.State.SortKey)
	assert.Equal(t, 1, prefs.saves)
}
