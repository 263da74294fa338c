// Package capture sequences the four-photo capture workflow and builds the
// images attached to a submission.
package capture

import (
	"errors"
	"fmt"
	"image"

	"vital_dashboard/internal/models"
)

var (
	ErrUnavailable     = errors.New("camera not available")
	ErrComplete        = errors.New("all photos already captured")
	ErrNothingCaptured = errors.New("no photos captured")
)

// Slot is a fixed photo position.
type Slot int

const (
	Front Slot = iota
	Left
	Right
	Neck
)

// Complete is the step reached once every slot is filled.
const Complete = 4

var slotNames = [...]string{"front", "left", "right", "neck"}

var buttonLabels = [...]string{"Capture Front", "Capture Left", "Capture Right", "Capture Neck", "Submit Entry"}

func (s Slot) String() string { return slotNames[s] }

// Field is the multipart field name of the slot.
func (s Slot) Field() string { return "photo_" + slotNames[s] }

// FileName is the file name announced for the slot's part.
func (s Slot) FileName() string { return slotNames[s] + ".png" }

// Frame is one captured image together with its PNG encoding.
type Frame struct {
	Image image.Image
	PNG   []byte
}

// State is the capture workflow. It is a value type: transitions return a
// new State and leave the receiver untouched.
type State struct {
	Step   int
	Frames [Complete]*Frame
}

// Capture stores frame in the slot of the current step and advances. A nil
// frame means no source was available and nothing changes, at any step.
func (s State) Capture(frame *Frame) (State, error) {
	if frame == nil {
		return s, ErrUnavailable
	}
	if s.Step >= Complete {
		return s, ErrComplete
	}
	s.Frames[s.Step] = frame
	s.Step++
	return s, nil
}

// Reset returns the initial state.
func (State) Reset() State { return State{} }

// Progress is the "N / 4 captured" label.
func (s State) Progress() string { return fmt.Sprintf("%d / %d captured", s.Step, Complete) }

// ButtonLabel names the action of the capture control at this step.
func (s State) ButtonLabel() string { return buttonLabels[min(s.Step, Complete)] }

// Disabled reports whether the capture control is locked until a submit.
func (s State) Disabled() bool { return s.Step >= Complete }

// Captured lists the populated slots in fixed order.
func (s State) Captured() []Slot {
	var out []Slot
	for i, f := range s.Frames {
		if f != nil {
			out = append(out, Slot(i))
		}
	}
	return out
}

// Status is the JSON view of the workflow.
type Status struct {
	Step        int      `json:"step"`
	Progress    string   `json:"progress"`
	ButtonLabel string   `json:"button_label"`
	Disabled    bool     `json:"disabled"`
	Captured    []string `json:"captured"`
}

func (s State) Status() Status {
	st := Status{
		Step:        s.Step,
		Progress:    s.Progress(),
		ButtonLabel: s.ButtonLabel(),
		Disabled:    s.Disabled(),
		Captured:    []string{},
	}
	for _, slot := range s.Captured() {
		st.Captured = append(st.Captured, slot.String())
	}
	return st
}

// Attachments returns the image parts for a submission: every populated
// slot and, when composite is non-nil, the combined strip built by it.
func (s State) Attachments(composite *Compositor) ([]models.Attachment, error) {
	slots := s.Captured()
	if len(slots) == 0 {
		return nil, ErrNothingCaptured
	}

	out := make([]models.Attachment, 0, len(slots)+1)
	frames := make([]*Frame, 0, len(slots))
	for _, slot := range slots {
		f := s.Frames[slot]
		frames = append(frames, f)
		out = append(out, models.Attachment{
			Field:       slot.Field(),
			FileName:    slot.FileName(),
			ContentType: contentTypePNG,
			Data:        f.PNG,
		})
	}

	if composite != nil {
		data, err := composite.Combine(slots, frames)
		if err != nil {
			return nil, fmt.Errorf("combine captures: %w", err)
		}
		out = append(out, models.Attachment{
			Field:       CombinedField,
			FileName:    "combined.png",
			ContentType: contentTypePNG,
			Data:        data,
		})
	}
	return out, nil
}
