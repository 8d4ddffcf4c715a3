// Package poller keeps a consumer's view of the grid fresh.
//
// A Poller calls the proxy's status endpoint every interval while auto refresh
// is on and hands each snapshot, or the error that replaced it, to a
// Subscriber. The ticker goroutine owns its time.Ticker and stops it on every
// exit: SetAutoRefresh(false), Stop and cancellation of the Start context.
//
// Kill forwards a session deletion and refreshes right away instead of waiting
// for the next tick.
//
// Snapshots are point in time. Two refreshes may order nodes and sessions
// differently; sort by a stable key such as the session id before diffing.
package poller
