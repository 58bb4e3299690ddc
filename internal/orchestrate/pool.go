package orchestrate

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

// maxPoolSize caps the worker pool regardless of logical CPU count
// (spec.md §4.6 "default = logical CPUs, capped at 16").
const maxPoolSize = 16

// defaultTaskTimeout is the per-task deadline when Options.TaskTimeout
// is zero (spec.md §4.6 "default 30s for worker init").
const defaultTaskTimeout = 30 * time.Second

// resolvePoolSize applies the default/cap rule to a configured size.
func resolvePoolSize(configured int) int {
	if configured > 0 {
		if configured > maxPoolSize {
			return maxPoolSize
		}
		return configured
	}
	n := runtime.NumCPU()
	if n > maxPoolSize {
		n = maxPoolSize
	}
	if n < 1 {
		n = 1
	}
	return n
}

// taskPool runs Task funcs across a bounded ants.Pool and barriers on
// Wait, draining pending+active counts to zero the way spec.md §4.6
// describes the phase barrier. Task errors are collected rather than
// aborting the pool — failure semantics live one level up in
// Orchestrator, which decides whether an error count is fatal.
type taskPool struct {
	pool    *ants.Pool
	timeout time.Duration

	wg      sync.WaitGroup
	active  int32
	mu      sync.Mutex
	errs    []TaskError
	exiting int32
}

// Task is one unit of work a phase submits to the pool. file labels the
// error if the task fails, matching spec.md §4.6's "recorded in
// diagnostics with the file path and message".
type Task struct {
	File string
	Run  func(ctx context.Context) error
}

// TaskError pairs a failed Task's file with its error.
type TaskError struct {
	File string
	Err  error
}

func newTaskPool(size int, timeout time.Duration) (*taskPool, error) {
	p, err := ants.NewPool(resolvePoolSize(size))
	if err != nil {
		return nil, fmt.Errorf("orchestrate: create worker pool: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	return &taskPool{pool: p, timeout: timeout}, nil
}

// Submit queues a task. It blocks briefly if the pool is saturated
// (ants.Pool.Submit blocks by default) and returns immediately once
// queued; results surface via Wait.
func (tp *taskPool) Submit(ctx context.Context, t Task) error {
	if atomic.LoadInt32(&tp.exiting) != 0 {
		return nil
	}
	tp.wg.Add(1)
	atomic.AddInt32(&tp.active, 1)
	return tp.pool.Submit(func() {
		defer tp.wg.Done()
		defer atomic.AddInt32(&tp.active, -1)
		defer func() {
			if r := recover(); r != nil {
				tp.mu.Lock()
				tp.errs = append(tp.errs, TaskError{File: t.File, Err: fmt.Errorf("panic: %v", r)})
				tp.mu.Unlock()
			}
		}()
		if atomic.LoadInt32(&tp.exiting) != 0 {
			return
		}

		taskCtx, cancel := context.WithTimeout(ctx, tp.timeout)
		defer cancel()

		if err := t.Run(taskCtx); err != nil {
			tp.mu.Lock()
			tp.errs = append(tp.errs, TaskError{File: t.File, Err: err})
			tp.mu.Unlock()
		}
	})
}

// Exit requests cooperative cancellation: queued-but-not-yet-started
// tasks are skipped, in-flight tasks run to completion (spec.md §4.6
// "workers finish the current task, then terminate").
func (tp *taskPool) Exit() {
	atomic.StoreInt32(&tp.exiting, 1)
}

// Wait blocks until every submitted task has completed, the phase
// barrier's synchronization point, then returns every task error
// observed during the phase.
func (tp *taskPool) Wait() []TaskError {
	tp.wg.Wait()
	tp.mu.Lock()
	defer tp.mu.Unlock()
	out := make([]TaskError, len(tp.errs))
	copy(out, tp.errs)
	tp.errs = nil
	return out
}

// Running reports the number of tasks currently queued or executing.
func (tp *taskPool) Running() int32 {
	return atomic.LoadInt32(&tp.active)
}

// Release frees the underlying ants.Pool's goroutines.
func (tp *taskPool) Release() {
	tp.pool.Release()
}
