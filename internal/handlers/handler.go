package handlers

import (
	"time"

	"vital_dashboard/internal/logger"
	"vital_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	// pushInterval is how often /ws checks for a new view version.
	pushInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, pushInterval: defaultInterval}
}

// WithPushInterval sets the default /ws polling interval.
func (h *Handler) WithPushInterval(d time.Duration) *Handler {
	if d > 0 && d <= maxInterval {
		h.pushInterval = d
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// live view push, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerTableRoutes(api)
		h.registerEntryRoutes(api)
		h.registerChartRoutes(api)
		h.registerExportRoutes(api)
		h.registerCaptureRoutes(api)
		h.registerActivityRoutes(api)
	}
}

func (h *Handler) registerTableRoutes(api *gin.RouterGroup) {
	table := api.Group("/table")
	{
		table.GET("", h.getTable)
		// Body example: {"key":"sys"}
		table.POST("/sort", h.sortTable)
		// Body example: {"action":"next"}
		table.POST("/page", h.turnPage)
		table.PUT("/page-size", h.setPageSize)
	}
}

func (h *Handler) registerEntryRoutes(api *gin.RouterGroup) {
	entries := api.Group("/entries")
	{
		entries.POST("/refresh", h.refreshEntries)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

func (h *Handler) registerChartRoutes(api *gin.RouterGroup) {
	charts := api.Group("/charts")
	{
		charts.GET("", h.getChart)
		charts.PUT("/view", h.setView)
		charts.GET("/:panel/png", h.getChartPNG)
	}
}

func (h *Handler) registerExportRoutes(api *gin.RouterGroup) {
	export := api.Group("/export")
	{
		export.GET("/page", h.exportPage)
		export.GET("/all", h.exportAll)
	}
}

func (h *Handler) registerCaptureRoutes(api *gin.RouterGroup) {
	capture := api.Group("/capture")
	{
		capture.GET("", h.getCapture)
		capture.POST("", h.captureFrame)
		// Body example: {"sys":"120","dia":"80","pulse":"64","temp":"36.6","combined":true}
		capture.POST("/submit", h.submitEntry)
	}
}

func (h *Handler) registerActivityRoutes(api *gin.RouterGroup) {
	api.GET("/activity", h.getActivity)
}
