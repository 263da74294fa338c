package handlers

import (
	"errors"
	"net/http"

	"vital_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// SortRequest selects the table sort column.
type SortRequest struct {
	// One of timestamp_nanos, sys, dia, pulse, temp_c
	Key string `json:"key" binding:"required" example:"sys"`
}

// PageRequest moves one page.
type PageRequest struct {
	Action string `json:"action" binding:"required,oneof=next prev" example:"next"`
}

// PageSizeRequest changes the number of rows per page.
type PageSizeRequest struct {
	PageSize int `json:"page_size" binding:"required,min=1" example:"25"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current view
// @Description  Table page, chart series and gallery of the loaded entries.
// @Tags         table
// @Produce      json
// @Success      200  {object}  models.RenderedView
// @Router       /api/v1/table [get]
func (h *Handler) getTable(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dashboard.View(c.Request.Context()))
}

// @Summary      Sort table
// @Description  Sorting by the active column toggles the direction; another column sorts descending. Resets to page 1.
// @Tags         table
// @Accept       json
// @Produce      json
// @Param        body  body      SortRequest  true  "Sort column"
// @Success      200   {object}  models.RenderedView
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/table/sort [post]
func (h *Handler) sortTable(c *gin.Context) {
	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	v, err := h.services.Dashboard.SortBy(c.Request.Context(), req.Key)
	if err != nil {
		h.respondError(c, "table_sort_failed", err, nil)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Turn page
// @Tags         table
// @Accept       json
// @Produce      json
// @Param        body  body      PageRequest  true  "next or prev"
// @Success      200   {object}  models.RenderedView
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/table/page [post]
func (h *Handler) turnPage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	v, err := h.services.Dashboard.Page(c.Request.Context(), service.PageAction(req.Action))
	if err != nil {
		h.respondError(c, "table_page_failed", err, nil)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Set page size
// @Tags         table
// @Accept       json
// @Produce      json
// @Param        body  body      PageSizeRequest  true  "Rows per page"
// @Success      200   {object}  models.RenderedView
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/table/page-size [put]
func (h *Handler) setPageSize(c *gin.Context) {
	var req PageSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	v, err := h.services.Dashboard.SetPageSize(c.Request.Context(), req.PageSize)
	if err != nil {
		h.respondError(c, "table_page_size_failed", err, nil)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Reload entries
// @Description  Fetches the collection again. On failure the view is empty and carries the offline notice.
// @Tags         entries
// @Produce      json
// @Success      200  {object}  models.RenderedView
// @Failure      502  {object}  map[string]interface{}  "error, view"
// @Router       /api/v1/entries/refresh [post]
func (h *Handler) refreshEntries(c *gin.Context) {
	v, err := h.services.Dashboard.Refresh(c.Request.Context())
	if err != nil {
		h.respondError(c, "entries_refresh_failed", err, gin.H{"view": v})
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Delete entry
// @Description  Deletes the entry on the backend, then reloads.
// @Tags         entries
// @Produce      json
// @Param        id   path      string  true  "Entry id (photo file stem)"
// @Success      200  {object}  models.RenderedView
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]interface{}  "error, backend_status, backend_body"
// @Router       /api/v1/entries/{id} [delete]
func (h *Handler) deleteEntry(c *gin.Context) {
	id := c.Param("id")
	v, err := h.services.Dashboard.Delete(c.Request.Context(), id)
	if err != nil {
		extra := gin.H{}
		// the delete went through but the reload did not
		if errors.Is(err, service.ErrLoadFailure) {
			extra["view"] = v
		}
		h.respondError(c, "entry_delete_failed", err, extra)
		return
	}
	c.JSON(http.StatusOK, v)
}
