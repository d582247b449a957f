package draft

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback after a quiet
// period. Each Trigger restarts the countdown; Stop cancels any pending fire.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

// NewDebouncer builds a debouncer that runs fn once delay has elapsed since
// the most recent Trigger.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)starts the quiet-period countdown.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending fire. The debouncer remains usable afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels any pending fire and runs the callback immediately.
func (d *Debouncer) Flush() {
	d.Stop()
	d.fn()
}
