package common

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// Executor is the shape shared by every use case.
type Executor[C any, R any] interface {
	Execute(ctx context.Context, cmd C) (R, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc[C any, R any] func(ctx context.Context, cmd C) (R, error)

func (f ExecutorFunc[C, R]) Execute(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// UseCaseObserver records the outcome and latency of use case runs.
type UseCaseObserver interface {
	ObserveUseCase(name string, outcome string, elapsed time.Duration)
}

type instrumented[C any, R any] struct {
	name     string
	next     Executor[C, R]
	logger   logger.Interface
	observer UseCaseObserver
}

// Instrument wraps next with panic recovery and outcome metrics. A panic is
// reported to the caller as a critical internal error.
func Instrument[C any, R any](name string, next Executor[C, R], log logger.Interface, observer UseCaseObserver) Executor[C, R] {
	return &instrumented[C, R]{
		name:     name,
		next:     next,
		logger:   log,
		observer: observer,
	}
}

func (e *instrumented[C, R]) Execute(ctx context.Context, cmd C) (result R, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorw("use case panicked",
				"usecase", e.name,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			var zero R
			result = zero
			err = errors.NewInternalError(fmt.Sprintf("%s failed unexpectedly", e.name))
		}
		if e.observer != nil {
			e.observer.ObserveUseCase(e.name, Outcome(err), time.Since(start))
		}
	}()

	return e.next.Execute(ctx, cmd)
}

// Outcome classifies err into a low-cardinality metric label.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	if appErr := errors.GetAppError(err); appErr != nil {
		return string(appErr.Type)
	}
	return "error"
}
