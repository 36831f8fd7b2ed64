package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/interfaces/http/handlers"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures user routes.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("", cfg.UserHandler.ListUsers)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		users.GET("/me", cfg.UserHandler.GetCurrentUser)
		users.PUT("/me/password", cfg.UserHandler.UpdatePassword)

		users.GET("/:id", cfg.UserHandler.GetUser)
	}
}
