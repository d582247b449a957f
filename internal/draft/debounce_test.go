package draft

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { fired.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("callback fired %d times, want 1 for a burst of triggers", got)
	}
}

func TestDebouncer_StopCancelsPendingFire(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("callback fired %d times after Stop, want 0", got)
	}

	// The debouncer stays usable after Stop.
	d.Trigger()
	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("callback fired %d times after re-trigger, want 1", got)
	}
}

func TestDebouncer_FlushRunsImmediately(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(time.Hour, func() { fired.Add(1) })

	d.Trigger()
	d.Flush()

	if got := fired.Load(); got != 1 {
		t.Errorf("callback fired %d times after Flush, want 1", got)
	}

	time.Sleep(30 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("callback fired %d times, Flush must also cancel the timer", got)
	}
}
