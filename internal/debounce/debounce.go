// Package debounce delays an action until its trigger has been quiet for a
// fixed period.
//
// Time is abstracted behind Scheduler so tests can fire timers by hand.
package debounce

import (
	"sync"
	"time"
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer coalesces bursts of Trigger calls into one call of the most
// recent function, delay after the last Trigger. It is safe for concurrent
// use; the function runs on the scheduler's goroutine.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	sched   Scheduler
	timer   Timer
	pending func()
	gen     uint64
}

// New returns a Debouncer backed by the runtime clock.
func New(delay time.Duration) *Debouncer {
	return NewWithScheduler(delay, realScheduler{})
}

// NewWithScheduler returns a Debouncer using sched for its timers.
func NewWithScheduler(delay time.Duration, sched Scheduler) *Debouncer {
	if sched == nil {
		sched = realScheduler{}
	}
	return &Debouncer{delay: delay, sched: sched}
}

// Trigger (re)starts the quiet period; fn replaces any pending function.
// A non-positive delay runs fn immediately.
func (d *Debouncer) Trigger(fn func()) {
	if fn == nil {
		return
	}
	if d.delay <= 0 {
		d.Cancel()
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = d.sched.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending function, if any, and reports whether one was
// dropped.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	had := d.pending != nil
	d.stopLocked()
	d.gen++
	return had
}

// Flush runs the pending function now instead of waiting. It reports whether
// anything ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.stopLocked()
	d.gen++
	d.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// fire runs the pending function unless a newer Trigger, Cancel or Flush
// superseded the timer that called it.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	fn()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
