// Package search debounces hotel listing fetches.  Each burst of input from
// one caller produces at most one effective fetch, fired after a fixed idle
// delay; earlier calls in the burst are superseded and never reach the
// backend.
package search

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultDelay is the idle time after the last keystroke before a fetch fires.
const DefaultDelay = 500 * time.Millisecond

// ErrSuperseded is returned to a call replaced by a newer one for the same key.
var ErrSuperseded = errors.New("search superseded by newer input")

// Debouncer keeps a single cancellable timer per key.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*waiter
	seq     uint64
}

type waiter struct {
	timer *time.Timer
	fire  chan struct{}
	drop  chan struct{}
	seq   uint64
}

// NewDebouncer returns a Debouncer with the given idle delay; a non-positive
// delay selects DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]*waiter),
	}
}

// Delay returns the configured idle delay.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Do waits for the idle delay and then runs fn, unless another Do for the
// same key arrives first, in which case it returns ErrSuperseded and fn is
// not run.  The returned sequence number increases with every call;
// callers can use it to drop responses that arrive out of order.  An
// already-running fn is never interrupted by a newer call.
func (d *Debouncer) Do(ctx context.Context, key string, fn func(context.Context) error) (uint64, error) {
	w := d.arm(key)

	select {
	case <-w.fire:
		return w.seq, fn(ctx)
	case <-w.drop:
		return w.seq, ErrSuperseded
	case <-ctx.Done():
		d.disarm(key, w)
		return w.seq, ctx.Err()
	}
}

// Pending reports whether a timer is armed for key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

func (d *Debouncer) arm(key string) *waiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		if prev.timer.Stop() {
			close(prev.drop)
		}
		delete(d.pending, key)
	}

	d.seq++
	w := &waiter{
		fire: make(chan struct{}),
		drop: make(chan struct{}),
		seq:  d.seq,
	}
	w.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.pending[key] == w {
			delete(d.pending, key)
		}
		d.mu.Unlock()
		close(w.fire)
	})
	d.pending[key] = w
	return w
}

func (d *Debouncer) disarm(key string, w *waiter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending[key] == w {
		w.timer.Stop()
		delete(d.pending, key)
	}
}
