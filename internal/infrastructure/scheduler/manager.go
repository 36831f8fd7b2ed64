// Package scheduler runs periodic maintenance jobs on a cron engine.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/goroutine"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

const defaultJobTimeout = 5 * time.Minute

// BatchJob processes one batch per run and reports how many items it touched.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// BatchJobFunc adapts a function to BatchJob.
type BatchJobFunc func(ctx context.Context) (int, error)

func (f BatchJobFunc) Execute(ctx context.Context) (int, error) {
	return f(ctx)
}

// JobObserver receives the outcome of every run.
type JobObserver interface {
	ObserveJob(job string, items int, err error)
}

type SchedulerManager struct {
	cron     *cron.Cron
	logger   logger.Interface
	observer JobObserver
	timeout  time.Duration

	mu      sync.Mutex
	started bool
	entries map[string]cron.EntryID
	jobs    map[string]BatchJob
}

// NewSchedulerManager evaluates cron expressions in the business timezone.
// Overlapping runs of the same job are skipped.
func NewSchedulerManager(log logger.Interface, observer JobObserver) *SchedulerManager {
	cronLogger := cronLogAdapter{log: log}
	return &SchedulerManager{
		cron: cron.New(
			cron.WithLocation(biztime.Location()),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
		),
		logger:   log,
		observer: observer,
		timeout:  defaultJobTimeout,
		entries:  make(map[string]cron.EntryID),
		jobs:     make(map[string]BatchJob),
	}
}

// Register schedules job under name. An empty spec leaves the job disabled.
func (m *SchedulerManager) Register(name, spec string, job BatchJob) error {
	if spec == "" {
		m.logger.Infow("scheduled job disabled", "job", name)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	id, err := m.cron.AddFunc(spec, func() {
		m.RunNow(name, job)
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q for job %s: %w", spec, name, err)
	}
	m.entries[name] = id
	m.jobs[name] = job

	m.logger.Infow("registered scheduled job", "job", name, "spec", spec)
	return nil
}

// RunNow executes job synchronously with the manager's timeout.
func (m *SchedulerManager) RunNow(name string, job BatchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	start := time.Now()
	var (
		count int
		err   error
	)
	if !goroutine.Run(m.logger, name, func() { count, err = job.Execute(ctx) }) {
		if m.observer != nil {
			m.observer.ObserveJob(name, 0, fmt.Errorf("job %s panicked", name))
		}
		return
	}

	if m.observer != nil {
		m.observer.ObserveJob(name, count, err)
	}
	if err != nil {
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}
	if count > 0 {
		m.logger.Infow("scheduled job completed",
			"job", name,
			"count", count,
			"duration", time.Since(start),
		)
	}
}

// RunAll runs every registered job once, in name order.
func (m *SchedulerManager) RunAll() {
	m.mu.Lock()
	names := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		names = append(names, name)
	}
	jobs := make(map[string]BatchJob, len(m.jobs))
	for name, job := range m.jobs {
		jobs[name] = job
	}
	m.mu.Unlock()

	sort.Strings(names)
	for _, name := range names {
		m.RunNow(name, jobs[name])
	}
}

func (m *SchedulerManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.cron.Start()
	m.started = true
	m.logger.Infow("scheduler started", "jobs", len(m.entries))
}

// Stop waits for running jobs or until ctx is done.
func (m *SchedulerManager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = false
	m.mu.Unlock()

	done := m.cron.Stop()
	select {
	case <-done.Done():
		m.logger.Infow("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// JobNames lists the registered jobs.
func (m *SchedulerManager) JobNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	return names
}

type cronLogAdapter struct {
	log logger.Interface
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.log.Debugw(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
