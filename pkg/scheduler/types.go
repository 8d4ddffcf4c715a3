package scheduler

import (
	"context"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future is the pending result of one submitted work.
type Future[T any] struct {
	result chan Result[T]
	cancel context.CancelFunc
}

func newFuture[T any](result chan Result[T], cancel context.CancelFunc) *Future[T] {
	return &Future[T]{result: result, cancel: cancel}
}

// C receives exactly one result.
func (f *Future[T]) C() <-chan Result[T] {
	return f.result
}

// Stop cancels the work's context.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the result arrives or ctx is done, in which case the work is cancelled.
func (f *Future[T]) Wait(ctx context.Context) Result[T] {
	select {
	case r := <-f.result:
		return r
	case <-ctx.Done():
		f.cancel()
		return Result[T]{Err: ctx.Err()}
	}
}
