// Package scheduler implements a small typed worker pool with futures.
//
// Work is submitted with Submit and runs on one of N workers in submission
// order. Each work gets a context derived from the scheduler; cancelling a
// Future or closing the scheduler cancels it.
//
//	s := scheduler.NewScheduler[*Snapshot](1)
//	defer s.Close()
//
//	f := s.Submit(func(ctx context.Context) (*Snapshot, error) {
//	    return client.Status(ctx)
//	})
//	r := f.Wait(ctx)
//
// A panic inside a work is recovered and delivered as Result.Err.
//
// Close cancels queued and running work and blocks until running work
// returns. Submit after Close resolves immediately with context.Canceled.
package scheduler
