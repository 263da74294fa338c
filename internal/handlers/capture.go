package handlers

import (
	"net/http"

	"vital_dashboard/internal/models"
	"vital_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitRequest carries the vitals exactly as typed; the backend validates them.
type SubmitRequest struct {
	Sys   string `json:"sys" example:"120"`
	Dia   string `json:"dia" example:"80"`
	Pulse string `json:"pulse" example:"64"`
	Temp  string `json:"temp" example:"36.6"`
	// Also upload the side-by-side composite of all captures
	Combined bool `json:"combined" example:"true"`
}

// @Summary      Capture workflow status
// @Tags         capture
// @Produce      json
// @Success      200  {object}  capture.Status
// @Router       /api/v1/capture [get]
func (h *Handler) getCapture(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Camera.CaptureStatus(c.Request.Context()))
}

// @Summary      Capture next photo
// @Description  Grabs a frame into the next slot (front, left, right, neck).
// @Tags         capture
// @Produce      json
// @Success      200  {object}  capture.Status
// @Failure      409  {object}  map[string]interface{}  "all slots captured"
// @Failure      503  {object}  map[string]interface{}  "camera not available"
// @Router       /api/v1/capture [post]
func (h *Handler) captureFrame(c *gin.Context) {
	st, err := h.services.Camera.CaptureFrame(c.Request.Context())
	if err != nil {
		h.respondError(c, "capture_failed", err, gin.H{"capture": st})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Submit entry
// @Description  Uploads the vitals and captured photos. Needs at least one capture. Success resets the workflow.
// @Tags         capture
// @Accept       json
// @Produce      json
// @Param        body  body      SubmitRequest  true  "Vitals"
// @Success      200   {object}  capture.Status
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]interface{}  "nothing captured"
// @Failure      502   {object}  map[string]interface{}  "backend rejected the entry"
// @Router       /api/v1/capture/submit [post]
func (h *Handler) submitEntry(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Camera.Submit(c.Request.Context(), service.SubmitParams{
		Vitals:   models.Vitals{Sys: req.Sys, Dia: req.Dia, Pulse: req.Pulse, Temp: req.Temp},
		Combined: req.Combined,
	})
	if err != nil {
		h.respondError(c, "entry_submit_failed", err, gin.H{"capture": st})
		return
	}
	c.JSON(http.StatusOK, st)
}
