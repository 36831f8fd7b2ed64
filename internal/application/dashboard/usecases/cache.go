package usecases

import (
	"context"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/application/dashboard/dto"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

func projectCacheKey(q GetProjectDashboardQuery) string {
	return fmt.Sprintf("project:trends=%t", q.IncludeTrends)
}

// CachedProjectDashboard serves the project dashboard from cache and falls
// back to inner on a miss. Cache failures never fail the request.
type CachedProjectDashboard struct {
	inner   ProjectDashboardExecutor
	cache   DashboardCache
	metrics CacheRecorder
	logger  logger.Interface
}

func NewCachedProjectDashboard(
	inner ProjectDashboardExecutor,
	cache DashboardCache,
	metrics CacheRecorder,
	logger logger.Interface,
) *CachedProjectDashboard {
	return &CachedProjectDashboard{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *CachedProjectDashboard) Execute(ctx context.Context, q GetProjectDashboardQuery) (*dto.ProjectDashboardDTO, error) {
	key := projectCacheKey(q)

	var cached dto.ProjectDashboardDTO
	hit, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		c.logger.Warnw("dashboard cache read failed", "key", key, "error", err)
	}
	c.observe(hit)
	if hit {
		return &cached, nil
	}

	result, err := c.inner.Execute(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, result); err != nil {
		c.logger.Warnw("dashboard cache write failed", "key", key, "error", err)
	}
	return result, nil
}

func (c *CachedProjectDashboard) observe(hit bool) {
	if c.metrics != nil {
		c.metrics.ObserveCacheLookup(hit)
	}
}

// DashboardWarmupJob precomputes both project dashboard variants so the
// first request after a deploy or expiry is served from cache.
type DashboardWarmupJob struct {
	inner  ProjectDashboardExecutor
	cache  DashboardCache
	logger logger.Interface
}

func NewDashboardWarmupJob(inner ProjectDashboardExecutor, cache DashboardCache, logger logger.Interface) *DashboardWarmupJob {
	return &DashboardWarmupJob{inner: inner, cache: cache, logger: logger}
}

// Execute returns the number of cache entries written.
func (j *DashboardWarmupJob) Execute(ctx context.Context) (int, error) {
	written := 0
	for _, trends := range []bool{false, true} {
		q := GetProjectDashboardQuery{IncludeTrends: trends}
		result, err := j.inner.Execute(ctx, q)
		if err != nil {
			return written, fmt.Errorf("failed to build project dashboard: %w", err)
		}
		if err := j.cache.Set(ctx, projectCacheKey(q), result); err != nil {
			return written, fmt.Errorf("failed to cache project dashboard: %w", err)
		}
		written++
	}
	j.logger.Infow("dashboard cache warmed", "entries", written)
	return written, nil
}
