package upload

// limiter.go implements concurrency control for file transfers.
//
// The limiter uses a semaphore pattern to restrict parallel transfers to a
// configurable maximum. When all slots are occupied, new transfers wait up to
// maxWait before failing with ErrTooManyUploads; waiting tasks remain in the
// pending state.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyUploads is returned when all transfer slots stay occupied for the
// whole wait window. The affected task fails; sibling tasks are unaffected.
var ErrTooManyUploads = errors.New("too many concurrent uploads, please try again later")

// DefaultMaxConcurrent is the default limit for parallel transfers.
const DefaultMaxConcurrent = 5

// DefaultMaxWait is how long a transfer waits for a slot before failing.
const DefaultMaxWait = 30 * time.Second

type limiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.Mutex
	active int
}

func newLimiter(maxConcurrent int, maxWait time.Duration) *limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	return &limiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// acquire claims a transfer slot. The caller must release() when the transfer
// finishes (use defer).
func (l *limiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyUploads
	}
}

func (l *limiter) release() {
	<-l.semaphore
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
}

// Active returns how many transfers currently hold a slot.
func (l *limiter) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}
