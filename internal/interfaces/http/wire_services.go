package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	dashboardUsecases "github.com/XavierPelle/sprintly/internal/application/dashboard/usecases"
	sprintUsecases "github.com/XavierPelle/sprintly/internal/application/sprint/usecases"
	"github.com/XavierPelle/sprintly/internal/infrastructure/auth"
	"github.com/XavierPelle/sprintly/internal/infrastructure/cache"
	"github.com/XavierPelle/sprintly/internal/infrastructure/config"
	"github.com/XavierPelle/sprintly/internal/infrastructure/email"
	"github.com/XavierPelle/sprintly/internal/infrastructure/metrics"
	"github.com/XavierPelle/sprintly/internal/infrastructure/ratelimit"
	"github.com/XavierPelle/sprintly/internal/infrastructure/scheduler"
	"github.com/XavierPelle/sprintly/internal/infrastructure/services"
	"github.com/XavierPelle/sprintly/internal/interfaces/http/middleware"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/services/markdown"
)

const (
	overdueSprintsJobName  = "overdue-sprints"
	dashboardWarmupJobName = "dashboard-warmup"
	loginRateLimitPrefix   = "sprintly:ratelimit"
)

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Basic Services
// ============================================================

// initInfrastructure initializes Redis, all repositories, auth services,
// and the middlewares that do not depend on use cases.
func (c *Container) initInfrastructure() {
	cfg := c.cfg
	log := c.log

	// Redis is optional; the dashboard cache and shared rate limiting need it
	c.redis = initRedis(cfg, log)

	c.repos = newRepositories(c.db, log)

	c.metrics = metrics.New()
	c.clock = biztime.SystemClock{}
	c.txManager = db.NewTransactionManager(c.db)
	c.keyGenerator = services.NewTicketKeyGenerator(c.repos.ticketRepo)
	c.markdown = markdown.NewRenderer()
	c.notifier = email.NewNotifier(cfg.Email, cfg.Server.BaseURL, log)

	// Auth services
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	c.jwtService = &jwtServiceAdapter{c.jwtSvc}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.rateLimiter = middleware.NewRateLimiter(newLoginLimiter(cfg, c.redis), "login", log)

	if c.redis != nil {
		c.dashboardCache = cache.NewRedisDashboardCache(c.redis, cfg.Redis.DashboardTTL())
	}
}

// initRedis connects to Redis when it is enabled. A failed connection is
// logged and the application keeps running without Redis backed features.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Infow("redis disabled, dashboard cache off and rate limiting kept in memory")
		return nil
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		log.Warnw("redis unavailable, continuing without it", "error", err)
		return nil
	}
	log.Infow("Redis connection established successfully", "address", cfg.Redis.GetAddr())

	return client
}

// newLoginLimiter returns nil when rate limiting is disabled.
func newLoginLimiter(cfg *config.Config, client *redis.Client) ratelimit.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	policy := ratelimit.Policy{
		Limit:  cfg.RateLimit.LoginLimit,
		Window: time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
	}
	if client != nil {
		return ratelimit.NewRedisRateLimiter(client, loginRateLimitPrefix, policy)
	}
	return ratelimit.NewMemoryRateLimiter(policy)
}

// ============================================================
// Section 4: Scheduled jobs
// ============================================================

// initScheduler registers the periodic jobs. The dashboard warm-up only
// exists when the cache does.
func (c *Container) initScheduler() {
	cfg := c.cfg
	log := c.log
	r := c.repos

	c.schedulerManager = scheduler.NewSchedulerManager(log, c.metrics)

	overdue := sprintUsecases.NewOverdueSprintsJob(r.sprintRepo, r.ticketRepo, c.clock, log)
	if err := c.schedulerManager.Register(overdueSprintsJobName, cfg.Worker.OverdueSprintSpec, overdue); err != nil {
		log.Errorw("failed to register job", "job", overdueSprintsJobName, "error", err)
	}

	if c.dashboardCache != nil {
		warmup := dashboardUsecases.NewDashboardWarmupJob(c.ucs.rawProjectUC, c.dashboardCache, log)
		if err := c.schedulerManager.Register(dashboardWarmupJobName, cfg.Worker.DashboardWarmupSpec, warmup); err != nil {
			log.Errorw("failed to register job", "job", dashboardWarmupJobName, "error", err)
		}
	}
}
