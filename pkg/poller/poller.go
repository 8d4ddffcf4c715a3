package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	v1 "github.com/testcloud/grid-proxy/api/v1"
	"github.com/testcloud/grid-proxy/pkg/scheduler"
)

const DefaultInterval = 5 * time.Second

var (
	ErrNotRunning     = errors.New("poller is not running")
	ErrAlreadyRunning = errors.New("poller already started")
)

// Source is the part of the proxy contract the poller consumes.
type Source interface {
	Status(ctx context.Context) (*v1.GridStatus, error)
	DeleteSession(ctx context.Context, sessionID string) (string, error)
}

// Update is one delivered poll outcome. Exactly one of Status and Err is set.
type Update struct {
	Status *v1.GridStatus
	Err    error
	At     time.Time
}

// Subscriber receives updates one at a time. It must not call Stop.
type Subscriber func(Update)

type Option func(p *Poller)

// WithInterval sets the refresh period. Non positive values keep DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithAutoRefresh sets whether Start begins ticking right away. Default true.
func WithAutoRefresh(enabled bool) Option {
	return func(p *Poller) {
		p.autoRefresh = enabled
	}
}

// Poller refreshes a grid snapshot on an interval and on demand.
// Fetches run one at a time; a tick that fires while a fetch is in flight queues behind it.
type Poller struct {
	source     Source
	subscriber Subscriber
	interval   time.Duration

	mu          sync.Mutex
	autoRefresh bool
	running     bool
	runCtx      context.Context
	cancel      context.CancelFunc
	stopTicker  chan struct{}
	sched       *scheduler.Scheduler[*v1.GridStatus]
	wg          sync.WaitGroup

	publishMu sync.Mutex
}

func NewPoller(source Source, subscriber Subscriber, opts ...Option) *Poller {
	p := &Poller{
		source:      source,
		subscriber:  subscriber,
		interval:    DefaultInterval,
		autoRefresh: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

func (p *Poller) AutoRefresh() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.autoRefresh
}

// Start fetches a first snapshot and, when auto refresh is on, starts the ticker.
// Cancelling ctx has the same effect on the ticker as Stop.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}

	p.runCtx, p.cancel = context.WithCancel(ctx)
	p.sched = scheduler.NewScheduler[*v1.GridStatus](1)
	p.running = true

	if p.autoRefresh {
		p.startTickerLocked()
	}

	runCtx := p.runCtx
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		_, _ = p.Refresh(runCtx)
	}()

	zap.S().Named("poller").Infow("poller started", "interval", p.interval, "auto_refresh", p.autoRefresh)
	return nil
}

// Stop halts the ticker, cancels in-flight fetches and waits for them to return.
// No update reaches the subscriber once Stop has returned.
func (p *Poller) Stop() {
	// holding publishMu waits out a delivery in progress; later ones see running == false
	p.publishMu.Lock()
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		p.publishMu.Unlock()
		return
	}
	p.running = false
	p.cancel()
	p.stopTickerLocked()
	sched := p.sched
	p.mu.Unlock()
	p.publishMu.Unlock()

	p.wg.Wait()
	sched.Close()

	zap.S().Named("poller").Info("poller stopped")
}

// SetAutoRefresh toggles periodic refreshes. Turning it on while running starts the
// ticker without waiting for the next period to fetch.
func (p *Poller) SetAutoRefresh(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.autoRefresh == enabled {
		return
	}
	p.autoRefresh = enabled

	if !p.running {
		return
	}
	if enabled {
		p.startTickerLocked()
	} else {
		p.stopTickerLocked()
	}

	zap.S().Named("poller").Debugw("auto refresh toggled", "enabled", enabled)
}

// Refresh fetches a snapshot now and delivers it to the subscriber.
func (p *Poller) Refresh(ctx context.Context) (*v1.GridStatus, error) {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil, ErrNotRunning
	}
	sched := p.sched
	p.mu.Unlock()

	result := sched.Submit(func(ctx context.Context) (*v1.GridStatus, error) {
		return p.source.Status(ctx)
	}).Wait(ctx)

	if errors.Is(result.Err, context.Canceled) && ctx.Err() != nil {
		// torn down, nobody to tell
		return nil, result.Err
	}

	p.publish(Update{Status: result.Data, Err: result.Err, At: time.Now()})
	return result.Data, result.Err
}

// Kill deletes a session and refreshes immediately so the snapshot reflects it.
// The refresh outcome goes to the subscriber; the returned error is the deletion's.
func (p *Poller) Kill(ctx context.Context, sessionID string) (string, error) {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()
	if !running {
		return "", ErrNotRunning
	}

	msg, err := p.source.DeleteSession(ctx, sessionID)
	if err != nil {
		zap.S().Named("poller").Errorw("failed to kill session", "session_id", sessionID, "error", err)
		p.publish(Update{Err: err, At: time.Now()})
		return "", err
	}

	_, _ = p.Refresh(ctx)
	return msg, nil
}

// publish delivers u unless the poller has been stopped.
func (p *Poller) publish(u Update) {
	if p.subscriber == nil {
		return
	}
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	p.mu.Lock()
	running := p.running
	p.mu.Unlock()
	if !running {
		return
	}
	p.subscriber(u)
}

func (p *Poller) startTickerLocked() {
	if p.stopTicker != nil {
		return
	}
	stop := make(chan struct{})
	p.stopTicker = stop

	ctx := p.runCtx
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.tick(ctx, stop)
	}()
}

func (p *Poller) stopTickerLocked() {
	if p.stopTicker == nil {
		return
	}
	close(p.stopTicker)
	p.stopTicker = nil
}

func (p *Poller) tick(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if _, err := p.Refresh(ctx); err != nil {
				zap.S().Named("poller").Debugw("refresh failed", "error", err)
			}
		}
	}
}
