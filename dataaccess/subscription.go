package dataaccess

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/internal/jsonx"
)

// Unsubscribe stops a subscription. Calling it more than once is a
// no-op. After it returns, the callback will not fire again, including
// for a fetch that was in flight when it was called. It must not be
// called from inside the callback.
type Unsubscribe func()

// Poll intervals by resource churn. Status moves fastest (deploys flip
// it within seconds), deployment history slowest.
const (
	StatusPollInterval  = 2 * time.Second
	DefaultPollInterval = 5 * time.Second
	SlowPollInterval    = 10 * time.Second
)

// startPolling emulates a realtime subscription over request/response:
// one immediate fetch, then a fixed-interval refetch loop. Each
// subscription owns its goroutine, ticker, and last-seen snapshot;
// nothing is shared between subscriptions.
//
// dedupe suppresses the callback when the serialized result is
// byte-identical to the previous tick, so high-churn pollers do not
// re-notify on unchanged data. Fetch failures go to errCallback and the
// loop keeps its interval; there is no backoff, the next tick is the
// retry.
func startPolling[T any](
	logger *zap.Logger,
	resource string,
	interval time.Duration,
	dedupe bool,
	fetch func(context.Context) (T, error),
	callback func(T),
	errCallback func(error),
) Unsubscribe {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		var last []byte

		tick := func() {
			v, err := fetch(ctx)
			// Unsubscribed while the fetch was in flight: discard the
			// result rather than firing a post-cancel callback.
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Warn("Poll fetch failed",
					zap.String("resource", resource),
					zap.Error(err))
				if errCallback != nil {
					errCallback(err)
				}
				return
			}
			if dedupe {
				snap := jsonx.Snapshot(v)
				if jsonx.SnapshotEqual(snap, last) {
					return
				}
				last = snap
			}
			callback(v)
		}

		tick()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick()
			}
		}
	}()

	// Cancel, then join: the canceled context aborts an in-flight
	// fetch, and waiting for the goroutine guarantees no callback runs
	// after this returns.
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
