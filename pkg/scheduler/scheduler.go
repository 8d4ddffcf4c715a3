package scheduler

import (
	"context"
	"fmt"
	"sync"
)

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

type request[T any] struct {
	fn     Work[T]
	result chan Result[T]
	ctx    context.Context
	cancel context.CancelFunc
}

func (r request[T]) run() {
	defer r.cancel()
	defer func() {
		if rec := recover(); rec != nil {
			r.result <- Result[T]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
	}()

	v, err := r.fn(r.ctx)
	r.result <- Result[T]{Data: v, Err: err}
}

// Scheduler runs submitted work on a fixed number of workers, in submission order.
type Scheduler[T any] struct {
	idle       int
	pending    *queue[request[T]]
	work       chan request[T]
	done       chan struct{}
	close      chan struct{}
	closed     chan struct{}
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewScheduler[T any](nbWorkers int) *Scheduler[T] {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler[T]{
		idle:       nbWorkers,
		pending:    &queue[request[T]]{},
		work:       make(chan request[T]),
		done:       make(chan struct{}, nbWorkers),
		close:      make(chan struct{}),
		closed:     make(chan struct{}),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	go s.run()
	return s
}

// Submit queues fn. After Close the future resolves immediately with context.Canceled.
func (s *Scheduler[T]) Submit(fn Work[T]) *Future[T] {
	c := make(chan Result[T], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	select {
	case <-s.mainCtx.Done():
		cancel()
		c <- Result[T]{Err: context.Canceled}
	case s.work <- request[T]{fn: fn, result: c, ctx: ctx, cancel: cancel}:
	}

	return newFuture(c, cancel)
}

// Close cancels all work and waits for running work to return. It is idempotent.
func (s *Scheduler[T]) Close() {
	s.once.Do(func() {
		s.mainCancel()
		s.close <- struct{}{}
		<-s.closed
	})
}

func (s *Scheduler[T]) run() {
	defer close(s.closed)
	for {
		select {
		case r := <-s.work:
			s.pending.Push(r)
			s.dispatch()
		case <-s.done:
			s.idle++
			s.dispatch()
		case <-s.close:
			for s.pending.Len() > 0 {
				r := s.pending.Pop()
				r.cancel()
				r.result <- Result[T]{Err: context.Canceled}
			}
			s.wg.Wait()
			return
		}
	}
}

// dispatch starts as much pending work as there are idle workers
func (s *Scheduler[T]) dispatch() {
	for s.idle > 0 && s.pending.Len() > 0 {
		r := s.pending.Pop()
		s.idle--
		s.wg.Add(1)
		go func() {
			defer func() {
				s.wg.Done()
				s.done <- struct{}{}
			}()
			r.run()
		}()
	}
}
