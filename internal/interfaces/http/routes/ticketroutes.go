package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/interfaces/http/handlers"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/handlers/ticket"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/middleware"
)

// TicketRouteConfig holds dependencies for ticket and QA routes.
type TicketRouteConfig struct {
	TicketHandler  *ticket.TicketHandler
	QAHandler      *handlers.QAHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupTicketRoutes configures ticket routes and the test validation route.
func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tickets.POST("", cfg.TicketHandler.CreateTicket)
		tickets.GET("/search", cfg.TicketHandler.SearchTickets)

		tickets.GET("/:id", cfg.TicketHandler.GetTicket)
		tickets.PUT("/:id", cfg.TicketHandler.UpdateTicket)
		tickets.PATCH("/:id/status", cfg.TicketHandler.ChangeStatus)
		tickets.PATCH("/:id/assign", cfg.TicketHandler.AssignTicket)
		tickets.GET("/:id/history", cfg.TicketHandler.GetHistory)
		tickets.POST("/:id/tags", cfg.TicketHandler.AddTag)
		tickets.DELETE("/:id/tags/:tagId", cfg.TicketHandler.RemoveTag)
		tickets.POST("/:id/comments", cfg.TicketHandler.AddComment)
		tickets.POST("/:id/tests", cfg.QAHandler.CreateTest)
	}

	tests := api.Group("/tests")
	tests.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tests.PATCH("/:id/validate", cfg.QAHandler.ValidateTest)
	}
}
