package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/XavierPelle/sprintly/internal/application/common"
	dashboardUsecases "github.com/XavierPelle/sprintly/internal/application/dashboard/usecases"
	"github.com/XavierPelle/sprintly/internal/infrastructure/auth"
	"github.com/XavierPelle/sprintly/internal/infrastructure/config"
	"github.com/XavierPelle/sprintly/internal/infrastructure/metrics"
	"github.com/XavierPelle/sprintly/internal/infrastructure/scheduler"
	"github.com/XavierPelle/sprintly/internal/infrastructure/services"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/middleware"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/services/markdown"
)

// Container holds all infrastructure components, repositories, use cases, handlers,
// and background jobs. It is responsible for wiring everything together and
// providing a Shutdown() method for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client // nil when Redis is disabled or unreachable

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	// Shared services
	jwtSvc         *auth.JWTService
	jwtService     *jwtServiceAdapter
	hasher         *auth.BcryptPasswordHasher
	notifier       common.Notifier
	txManager      *db.TransactionManager
	keyGenerator   *services.TicketKeyGenerator
	markdown       markdown.Renderer
	clock          biztime.Clock
	metrics        *metrics.Metrics
	dashboardCache dashboardUsecases.DashboardCache

	// Background jobs
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     gormDB,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Basic Services
	c.initInfrastructure()

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers
	c.initHandlers()

	// Section 4: Scheduled jobs
	c.initScheduler()

	return c
}

// Scheduler returns the job scheduler with every periodic job registered.
// It is not started by the container.
func (c *Container) Scheduler() *scheduler.SchedulerManager {
	return c.schedulerManager
}

// Shutdown releases the resources owned by the container.
func (c *Container) Shutdown(ctx context.Context) {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(ctx); err != nil {
			c.log.Warnw("scheduler did not stop cleanly", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
