package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/interfaces/http/handlers"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/middleware"
)

// DashboardRouteConfig holds dependencies for dashboard and image routes.
type DashboardRouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
	ImageHandler     *handlers.ImageHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// SetupDashboardRoutes configures dashboard and image metadata routes.
func SetupDashboardRoutes(api *gin.RouterGroup, cfg *DashboardRouteConfig) {
	dashboard := api.Group("/dashboard")
	dashboard.Use(cfg.AuthMiddleware.RequireAuth())
	{
		dashboard.GET("", cfg.DashboardHandler.GetPersonalDashboard)
		dashboard.GET("/project", cfg.DashboardHandler.GetProjectDashboard)
	}

	images := api.Group("/images")
	images.Use(cfg.AuthMiddleware.RequireAuth())
	{
		images.POST("", cfg.ImageHandler.AttachImage)
		images.DELETE("/:id", cfg.ImageHandler.DeleteImage)
	}
}
