package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/XavierPelle/sprintly/docs"
	"github.com/XavierPelle/sprintly/internal/infrastructure/config"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/middleware"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/routes"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// APIBasePath prefixes every business route.
const APIBasePath = "/api"

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	return &Router{Container: NewContainer(db, cfg, log)}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	cfg := r.cfg
	h := r.hdlrs

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.Metrics(r.metrics))

	r.engine.GET("/health", h.healthHandler.HealthCheck)
	r.engine.GET("/version", h.healthHandler.Version)
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if cfg.Metrics.Enabled {
		r.engine.GET(cfg.Metrics.Path, gin.WrapH(r.metrics.Handler()))
	}

	api := r.engine.Group(APIBasePath)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler: h.authHandler,
		RateLimiter: r.rateLimiter,
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:    h.userHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:  h.ticketHandler,
		QAHandler:      h.qaHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupSprintRoutes(api, &routes.SprintRouteConfig{
		SprintHandler:  h.sprintHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupDashboardRoutes(api, &routes.DashboardRouteConfig{
		DashboardHandler: h.dashboardHandler,
		ImageHandler:     h.imageHandler,
		AuthMiddleware:   r.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
