package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vital_dashboard/internal/capture"
	"vital_dashboard/internal/logger"
	"vital_dashboard/internal/models"
)

type reloader interface {
	Reload(ctx context.Context) (models.RenderedView, error)
}

// CameraService executes the side effects of the capture workflow: frame
// grabbing, uploads, and the reload after a successful submission.
type CameraService struct {
	source     capture.Source
	compositor *capture.Compositor
	backend    Backend
	dashboard  reloader
	activity   *activityRecorder
	log        *logger.Logger

	mu    sync.Mutex
	state capture.State
}

func NewCameraService(
	source capture.Source,
	compositor *capture.Compositor,
	backend Backend,
	dashboard reloader,
	activity *activityRecorder,
	log *logger.Logger,
) *CameraService {
	if log == nil {
		log = logger.Nop()
	}
	return &CameraService{
		source:     source,
		compositor: compositor,
		backend:    backend,
		dashboard:  dashboard,
		activity:   activity,
		log:        log,
	}
}

func (s *CameraService) CaptureStatus(_ context.Context) capture.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Status()
}

// CaptureFrame grabs one frame into the slot of the current step. The
// source is checked before every capture, including once all slots are full.
func (s *CameraService) CaptureFrame(ctx context.Context) (capture.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.source.Available(ctx) {
		return s.state.Status(), capture.ErrUnavailable
	}
	if s.state.Disabled() {
		return s.state.Status(), capture.ErrComplete
	}
	img, err := s.source.Frame(ctx)
	if err != nil {
		s.log.Warnw("frame_grab_failed", "err", err)
		return s.state.Status(), fmt.Errorf("%w: %w", capture.ErrUnavailable, err)
	}
	frame, err := s.compositor.NewFrame(img)
	if err != nil {
		return s.state.Status(), fmt.Errorf("prepare frame: %w", err)
	}

	slot := capture.Slot(s.state.Step)
	next, err := s.state.Capture(frame)
	if err != nil {
		return s.state.Status(), err
	}
	s.state = next
	s.log.Infow("photo_captured", "slot", slot.String(), "step", next.Step)
	s.activity.record(ctx, models.ActivityCapture, "captured "+slot.String(), map[string]any{"slot": slot.String()})
	return s.state.Status(), nil
}

// Submit uploads the vitals and the captured photos. Without any capture
// no request is made. Success resets the workflow and reloads the
// dashboard; failure keeps the captures for another attempt.
func (s *CameraService) Submit(ctx context.Context, p SubmitParams) (capture.Status, error) {
	s.mu.Lock()
	var composite *capture.Compositor
	if p.Combined {
		composite = s.compositor
	}
	parts, err := s.state.Attachments(composite)
	if err != nil {
		st := s.state.Status()
		s.mu.Unlock()
		if !errors.Is(err, capture.ErrNothingCaptured) {
			s.log.Errorw("attachments_failed", "err", err)
		}
		return st, err
	}

	if err := s.backend.Submit(ctx, p.Vitals, parts); err != nil {
		st := s.state.Status()
		s.mu.Unlock()
		s.log.Errorw("entry_submit_failed", "err", err)
		s.activity.record(ctx, models.ActivitySubmitFailed, err.Error(), nil)
		return st, fmt.Errorf("%w: %w", ErrMutationFailure, err)
	}

	s.state = s.state.Reset()
	st := s.state.Status()
	s.mu.Unlock()

	s.log.Infow("entry_submitted", "parts", len(parts), "combined", p.Combined)
	s.activity.record(ctx, models.ActivitySubmit, fmt.Sprintf("submitted entry with %d images", len(parts)),
		map[string]any{"parts": len(parts), "combined": p.Combined})

	if s.dashboard != nil {
		if _, err := s.dashboard.Reload(ctx); err != nil {
			s.log.Warnw("reload_after_submit_failed", "err", err)
		}
	}
	return st, nil
}
