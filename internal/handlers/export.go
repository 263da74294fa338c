package handlers

import (
	"fmt"
	"net/http"

	"vital_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const contentTypeCSV = "text/csv; charset=utf-8"

// @Summary      Export visible page
// @Tags         export
// @Produce      text/csv
// @Success      200  {file}    binary  "vital_page.csv"
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/export/page [get]
func (h *Handler) exportPage(c *gin.Context) {
	h.export(c, service.ExportPage)
}

// @Summary      Export all entries
// @Tags         export
// @Produce      text/csv
// @Success      200  {file}    binary  "vital_all.csv"
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/export/all [get]
func (h *Handler) exportAll(c *gin.Context) {
	h.export(c, service.ExportAll)
}

func (h *Handler) export(c *gin.Context, scope service.ExportScope) {
	out, err := h.services.Dashboard.Export(c.Request.Context(), scope)
	if err != nil {
		h.respondError(c, "export_failed", err, nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, out.Name))
	c.Data(http.StatusOK, contentTypeCSV, []byte(out.Body))
}
