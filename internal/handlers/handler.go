package handlers

import (
	"solarac_dashboard/internal/logger"
	"solarac_dashboard/internal/metrics"
	"solarac_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metricsMiddleware)

	router.GET("/", h.index)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerDashboardRoutes(api)
		h.registerCommentRoutes(api)
		api.GET("/activity", h.getActivity)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	dashboard := api.Group("/dashboard")
	{
		dashboard.POST("/refresh", h.refresh)
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/topics", h.getTopics)
		dashboard.GET("/export.csv", h.exportCSV)
	}
}

func (h *Handler) registerCommentRoutes(api *gin.RouterGroup) {
	comments := api.Group("/comments")
	{
		comments.GET("/:topic", h.getComments)
		// Body example: {"comment":"replaced inverter fuse"}
		comments.POST("/:topic", h.addComment)
	}
}
