package service

import (
	"context"
	"image"
	"image/color"
	"sync"
	"time"

	"vital_dashboard/internal/models"
)

// fakeBackend serves a fixed collection. When gates is set, the n-th
// Entries call waits on gates[n] instead, which lets tests order
// concurrent reloads.
type fakeBackend struct {
	mu          sync.Mutex
	records     []models.Record
	entriesErr  error
	deleteErr   error
	submitErr   error
	gates       []chan []models.Record
	entryCalls  int
	deleted     []string
	submissions [][]models.Attachment
	vitals      []models.Vitals
}

func (f *fakeBackend) Entries(ctx context.Context) ([]models.Record, error) {
	f.mu.Lock()
	var gate chan []models.Record
	if f.entryCalls < len(f.gates) {
		gate = f.gates[f.entryCalls]
	}
	f.entryCalls++
	records, err := f.records, f.entriesErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case recs := <-gate:
			return recs, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return records, err
}

func (f *fakeBackend) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.records[:0:0]
	for _, r := range f.records {
		if r.ID() != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeBackend) Submit(_ context.Context, v models.Vitals, parts []models.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.vitals = append(f.vitals, v)
	f.submissions = append(f.submissions, parts)
	return nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entryCalls
}

type fakePrefsRepo struct {
	mu    sync.Mutex
	saved *models.ViewPrefs
	saves int
	err   error
}

func (f *fakePrefsRepo) Save(_ context.Context, p models.ViewPrefs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.err != nil {
		return f.err
	}
	f.saved = &p
	return nil
}

func (f *fakePrefsRepo) Load(context.Context) (models.ViewPrefs, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		return models.ViewPrefs{}, false, f.err
	}
	return *f.saved, true, nil
}

type fakeActivityRepo struct {
	mu     sync.Mutex
	events []models.ActivityEvent

	gotFrom, gotTo time.Time
	gotType        string
}

func (f *fakeActivityRepo) Append(_ context.Context, e models.ActivityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeActivityRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.events, nil
}

func (f *fakeActivityRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeSource struct {
	available bool
	err       error
}

func (f *fakeSource) Available(context.Context) bool { return f.available }

func (f *fakeSource) Frame(context.Context) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	img.Set(1, 1, color.White)
	return img, nil
}

// rec builds a record at hour h of 2024-05-01 UTC.
func rec(name string, h int, sys float64) models.Record {
	ts := time.Date(2024, 5, 1, h, 0, 0, 0, time.UTC)
	return models.Record{
		Path:           "/photos/" + name + ".png",
		Sys:            sys,
		Dia:            sys - 40,
		Pulse:          60,
		TempC:          36.6,
		TimestampNanos: ts.UnixNano(),
	}
}
