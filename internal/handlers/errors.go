package handlers

import (
	"errors"
	"net/http"

	"vital_dashboard/internal/backend"
	"vital_dashboard/internal/capture"
	"vital_dashboard/internal/charts"
	"vital_dashboard/internal/service"
	"vital_dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

const errInvalidBodyPref = "invalid body: "

// httpStatus maps service errors to response codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrEmptyExport), errors.Is(err, charts.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, capture.ErrComplete), errors.Is(err, capture.ErrNothingCaptured):
		return http.StatusConflict
	case errors.Is(err, capture.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrLoadFailure), errors.Is(err, service.ErrMutationFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError answers with the mapped status. Backend failures also carry
// the backend's status code and text.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, extra gin.H) {
	code := httpStatus(err)
	if code >= http.StatusInternalServerError && h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}

	body := gin.H{"error": err.Error()}
	var se *backend.StatusError
	if errors.As(err, &se) {
		body["backend_status"] = se.Code
		if se.Body != "" {
			body["backend_body"] = se.Body
		}
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}
