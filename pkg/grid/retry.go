package grid

import (
	"time"

	"github.com/cenkalti/backoff/v5"

	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
)

// RetryPolicy decides how many times an outbound call is attempted and how long
// to wait in between. Only errors accepted by Retryable are retried.
type RetryPolicy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	Retryable       func(error) bool
}

// NoRetry performs a single attempt.
var NoRetry = RetryPolicy{MaxAttempts: 1}

// DefaultRetryPolicy retries an unreachable grid twice with exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 250 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2,
		Retryable:       srvErrors.IsUpstreamUnreachableError,
	}
}

func (p RetryPolicy) attempts() uint {
	if p.MaxAttempts == 0 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) retryable(err error) bool {
	if p.Retryable == nil {
		return srvErrors.IsUpstreamUnreachableError(err)
	}
	return p.Retryable(err)
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	if p.Multiplier > 0 {
		b.Multiplier = p.Multiplier
	}
	return b
}

func (p RetryPolicy) options() []backoff.RetryOption {
	return []backoff.RetryOption{
		backoff.WithBackOff(p.backOff()),
		backoff.WithMaxTries(p.attempts()),
	}
}
