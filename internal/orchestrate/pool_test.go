package orchestrate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestTaskPool_CollectsErrorsAndBarriers(t *testing.T) {
	pool, err := newTaskPool(2, time.Second)
	if err != nil {
		t.Fatalf("newTaskPool: %v", err)
	}
	defer pool.Release()

	var completed int32
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		i := i
		if err := pool.Submit(ctx, Task{
			File: "f",
			Run: func(context.Context) error {
				atomic.AddInt32(&completed, 1)
				if i == 2 {
					return errors.New("boom")
				}
				return nil
			},
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	errs := pool.Wait()
	if completed != 5 {
		t.Errorf("expected all 5 tasks to run, got %d", completed)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 task error, got %d: %+v", len(errs), errs)
	}
}

func TestTaskPool_TimeoutCancelsTaskContext(t *testing.T) {
	pool, err := newTaskPool(1, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("newTaskPool: %v", err)
	}
	defer pool.Release()

	if err := pool.Submit(context.Background(), Task{
		File: "slow",
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	errs := pool.Wait()
	if len(errs) != 1 {
		t.Fatalf("expected the task to be cancelled by its timeout, got %+v", errs)
	}
}

func TestTaskPool_ExitSkipsUnstartedTasks(t *testing.T) {
	pool, err := newTaskPool(1, time.Second)
	if err != nil {
		t.Fatalf("newTaskPool: %v", err)
	}
	defer pool.Release()

	pool.Exit()
	if err := pool.Submit(context.Background(), Task{
		File: "f",
		Run: func(context.Context) error {
			t.Error("task should not run after Exit")
			return nil
		},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	pool.Wait()
}
