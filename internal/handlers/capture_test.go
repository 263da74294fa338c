package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"vital_dashboard/internal/backend"
	"vital_dashboard/internal/capture"
	"vital_dashboard/internal/models"
	"vital_dashboard/internal/service"
)

func TestCaptureHandlers(t *testing.T) {
	cam := &mockCamera{status: capture.State{}.Status()}
	r := newTestRouter(&service.Service{Camera: cam})

	w := do(r, http.MethodGet, "/api/v1/capture", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var st capture.Status
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if st.ButtonLabel != "Capture Front" || st.Progress != "0 / 4 captured" {
		t.Fatalf("unexpected status: %+v", st)
	}

	if w := do(r, http.MethodPost, "/api/v1/capture", ""); w.Code != http.StatusOK {
		t.Fatalf("capture status=%d", w.Code)
	}
	if cam.captures != 1 {
		t.Fatalf("captures = %d", cam.captures)
	}

	body := `{"sys":"120","dia":"80","pulse":"","temp":"36.6","combined":true}`
	if w := do(r, http.MethodPost, "/api/v1/capture/submit", body); w.Code != http.StatusOK {
		t.Fatalf("submit status=%d", w.Code)
	}
	want := service.SubmitParams{Vitals: models.Vitals{Sys: "120", Dia: "80", Temp: "36.6"}, Combined: true}
	if cam.lastSubmit != want {
		t.Fatalf("submit params = %+v", cam.lastSubmit)
	}
}

func TestCaptureHandlers_ErrorCodes(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		err    error
		want   int
	}{
		{"no camera", http.MethodPost, "/api/v1/capture", "", capture.ErrUnavailable, http.StatusServiceUnavailable},
		{"all captured", http.MethodPost, "/api/v1/capture", "", capture.ErrComplete, http.StatusConflict},
		{"nothing captured", http.MethodPost, "/api/v1/capture/submit", `{"sys":"1"}`, capture.ErrNothingCaptured, http.StatusConflict},
		{
			"backend rejected", http.MethodPost, "/api/v1/capture/submit", `{"sys":"x"}`,
			fmt.Errorf("%w: %w", service.ErrMutationFailure, &backend.StatusError{Op: "POST /entry", Code: 400, Body: "bad sys"}),
			http.StatusBadGateway,
		},
		{"bad body", http.MethodPost, "/api/v1/capture/submit", `[1,2]`, nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Camera: &mockCamera{err: tc.err}})
			w := do(r, tc.method, tc.path, tc.body)
			if w.Code != tc.want {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
