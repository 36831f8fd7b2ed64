package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/interfaces/http/handlers/sprint"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/middleware"
)

// SprintRouteConfig holds dependencies for sprint routes.
type SprintRouteConfig struct {
	SprintHandler  *sprint.SprintHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupSprintRoutes configures sprint routes.
func SetupSprintRoutes(api *gin.RouterGroup, cfg *SprintRouteConfig) {
	sprints := api.Group("/sprints")
	sprints.Use(cfg.AuthMiddleware.RequireAuth())
	{
		sprints.POST("", cfg.SprintHandler.CreateSprint)
		sprints.GET("", cfg.SprintHandler.ListSprints)

		sprints.GET("/:id", cfg.SprintHandler.GetSprint)
		sprints.POST("/:id/tickets", cfg.SprintHandler.AddTickets)
		sprints.DELETE("/:id/tickets", cfg.SprintHandler.RemoveTickets)
		sprints.POST("/:id/close", cfg.SprintHandler.CloseSprint)
		sprints.GET("/:id/burndown", cfg.SprintHandler.GetBurndown)
		sprints.GET("/:id/report.xlsx", cfg.SprintHandler.ExportReport)
	}
}
