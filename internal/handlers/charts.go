package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ViewRequest selects the chart aggregation.
type ViewRequest struct {
	// One of full, 30d, 7d_weekly, daily, tod, avg_compare; anything else selects full
	View string `json:"view" example:"daily"`
}

// @Summary      Chart series
// @Description  Aggregated series for the given view, or the current view when omitted. Does not change the saved view.
// @Tags         charts
// @Produce      json
// @Param        view  query     string  false  "View mode"  Enums(full,30d,7d_weekly,daily,tod,avg_compare)
// @Success      200   {object}  models.ChartData
// @Router       /api/v1/charts [get]
func (h *Handler) getChart(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dashboard.Chart(c.Request.Context(), c.Query("view")))
}

// @Summary      Set chart view
// @Tags         charts
// @Accept       json
// @Produce      json
// @Param        body  body      ViewRequest  true  "View mode"
// @Success      200   {object}  models.RenderedView
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/charts/view [put]
func (h *Handler) setView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.services.Dashboard.SetView(c.Request.Context(), req.View))
}

// @Summary      Chart image
// @Tags         charts
// @Produce      png
// @Param        panel  path      string  true   "Panel"  Enums(bp,pulse,temp)
// @Param        view   query     string  false  "View mode"  Enums(full,30d,7d_weekly,daily,tod,avg_compare)
// @Success      200    {file}    binary
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/charts/{panel}/png [get]
func (h *Handler) getChartPNG(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.services.Charts.RenderPanel(c.Request.Context(), &buf, c.Param("panel"), c.Query("view")); err != nil {
		h.respondError(c, "chart_render_failed", err, nil)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
