// Package rategate enforces a client-side call-rate ceiling for outbound
// requests. A gate admits at most Quota.MaxCalls calls in any trailing
// interval of Quota.Window, delaying callers as needed; a call is never
// rejected, only held back.
//
// The default gate keeps a sliding log of admission timestamps behind a
// compare-and-swap storage backend, which is the strictest reading of the
// upstream quota. See WithTokenBucket for the burst-tolerant alternative.
package rategate

import (
	"context"
	"time"

	"github.com/TomasKoutek/stlouisfed/rategate/backends"
)

// checkAndSetRetries bounds the optimistic-concurrency retry loop around
// backend CheckAndSet conflicts.
const checkAndSetRetries = 30

// Gate admits outbound calls under a fixed quota.
type Gate interface {
	// Acquire blocks until admitting a call would not exceed the quota,
	// then records the admission. It returns early only when ctx is done.
	Acquire(ctx context.Context) error

	// Peek reports the current state without consuming quota.
	Peek(ctx context.Context) (Status, error)

	// Reset clears all recorded admissions (mainly for testing).
	Reset(ctx context.Context) error

	// Close releases the storage backend.
	Close() error
}

// slidingGate implements Gate with a sliding-window log of admission
// timestamps stored behind a CAS backend.
type slidingGate struct {
	quota   Quota
	storage backends.Backend
	key     string
}

func (g *slidingGate) Acquire(ctx context.Context) error {
	for {
		admitted, wait, err := g.tryAdmit(ctx)
		if err != nil {
			return err
		}
		if admitted {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return NewContextCancelledError(ctx.Err())
		case <-timer.C:
			// Records may have expired further during the wait; re-check.
		}
	}
}

// tryAdmit performs one atomic check-then-append. When the window is full it
// returns admitted=false and the duration until the oldest record expires.
func (g *slidingGate) tryAdmit(ctx context.Context) (bool, time.Duration, error) {
	for attempt := 0; attempt < checkAndSetRetries; attempt++ {
		if ctx.Err() != nil {
			return false, 0, NewContextCancelledError(ctx.Err())
		}

		now := time.Now()

		data, err := g.storage.Get(ctx, g.key)
		if err != nil {
			return false, 0, NewStateRetrievalError(g.key, err)
		}

		log, ok := decodeLog(data)
		if !ok {
			return false, 0, NewStateParsingError(g.key)
		}

		log = pruneLog(log, now.Add(-g.quota.Window))

		if len(log) >= g.quota.MaxCalls {
			wait := g.quota.Window - now.Sub(log[0])
			if wait <= 0 {
				// The oldest record expires right now; re-check immediately.
				wait = time.Nanosecond
			}
			return false, wait, nil
		}

		log = append(log, now)

		success, err := g.storage.CheckAndSet(ctx, g.key, data, encodeLog(log), g.quota.Window)
		if err != nil {
			return false, 0, NewStateSaveError(g.key, err)
		}
		if success {
			return true, 0, nil
		}

		// Lost the CAS race with a concurrent caller; back off and re-read.
		if attempt < checkAndSetRetries-1 {
			time.Sleep(time.Duration(3*(attempt+1)) * time.Microsecond)
		}
	}

	return false, 0, NewConcurrentAccessError(checkAndSetRetries)
}

func (g *slidingGate) Peek(ctx context.Context) (Status, error) {
	now := time.Now()

	data, err := g.storage.Get(ctx, g.key)
	if err != nil {
		return Status{}, NewStateRetrievalError(g.key, err)
	}

	log, ok := decodeLog(data)
	if !ok {
		return Status{}, NewStateParsingError(g.key)
	}

	log = pruneLog(log, now.Add(-g.quota.Window))

	status := Status{Remaining: g.quota.MaxCalls - len(log)}
	if len(log) > 0 {
		status.Reset = log[0].Add(g.quota.Window)
	}
	return status, nil
}

func (g *slidingGate) Reset(ctx context.Context) error {
	return g.storage.Delete(ctx, g.key)
}

func (g *slidingGate) Close() error {
	if g.storage != nil {
		return g.storage.Close()
	}
	return nil
}
