// Package debounce implements a trailing-edge debouncer: a burst of Trigger
// calls collapses into one deferred call carrying the last payload, run once
// the quiet window passes with no new Trigger.
package debounce

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a one-shot timer; time.AfterFunc by default.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Debouncer is Idle until Trigger, then Pending until the timer fires, Flush
// runs the payload, or Stop. Replacing the payload and re-arming happen under
// one lock; a timer callback belonging to an earlier arm is ignored via seq.
type Debouncer[T any] struct {
	window time.Duration
	fire   func(T)
	after  AfterFunc

	mu      sync.Mutex
	pending bool
	payload T
	seq     uint64
	timer   Timer
	stopped bool

	inflight sync.WaitGroup
}

// New returns an idle debouncer. fire runs on the timer goroutine (or on the
// Flush caller) and must not call back into the debouncer synchronously.
func New[T any](window time.Duration, fire func(T)) *Debouncer[T] {
	return NewWithAfterFunc(window, fire, nil)
}

// NewWithAfterFunc is New with a custom timer source; nil means time.AfterFunc.
func NewWithAfterFunc[T any](window time.Duration, fire func(T), after AfterFunc) *Debouncer[T] {
	if after == nil {
		after = realAfterFunc
	}
	return &Debouncer[T]{window: window, fire: fire, after: after}
}

// Trigger stores v as the pending payload and (re)arms the timer.
// It reports whether an earlier payload was replaced. After Stop it is a no-op.
func (d *Debouncer[T]) Trigger(v T) (replaced bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	replaced = d.pending
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = true
	d.payload = v
	d.seq++
	seq := d.seq
	d.timer = d.after(d.window, func() { d.expire(seq) })
	return replaced
}

func (d *Debouncer[T]) expire(seq uint64) {
	v, ok := d.take(func() bool { return seq == d.seq })
	if !ok {
		return
	}
	defer d.inflight.Done()
	d.fire(v)
}

// Flush runs the pending payload now on the calling goroutine.
// It reports whether there was anything to run.
func (d *Debouncer[T]) Flush() bool {
	return d.FlushFunc(d.fire)
}

// FlushFunc is Flush with run in place of the debouncer's own fire func.
func (d *Debouncer[T]) FlushFunc(run func(T)) bool {
	v, ok := d.take(nil)
	if !ok {
		return false
	}
	defer d.inflight.Done()
	run(v)
	return true
}

// take moves Pending -> Idle and registers the run as in flight.
func (d *Debouncer[T]) take(valid func() bool) (T, bool) {
	var zero T
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending || d.stopped || (valid != nil && !valid()) {
		return zero, false
	}
	v := d.payload
	d.payload = zero
	d.pending = false
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.inflight.Add(1)
	return v, true
}

// Pending reports whether a payload is waiting for the timer.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stopped reports whether Stop or StopFunc has been called.
func (d *Debouncer[T]) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// Stop disarms the timer and waits for in-flight runs to return.
// If flush is set the pending payload runs first; otherwise it is dropped.
// Trigger is a no-op afterwards.
func (d *Debouncer[T]) Stop(flush bool) {
	if flush {
		d.StopFunc(d.fire)
		return
	}
	d.StopFunc(nil)
}

// StopFunc marks the debouncer stopped and takes the pending payload under
// one lock, so no Trigger can slip in between. The payload runs through run
// (dropped when run is nil), then StopFunc waits for in-flight runs.
// It reports whether a payload ran.
func (d *Debouncer[T]) StopFunc(run func(T)) bool {
	var zero T
	d.mu.Lock()
	v, ok := d.payload, d.pending && run != nil && !d.stopped
	d.stopped = true
	d.pending = false
	d.payload = zero
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if ok {
		d.inflight.Add(1)
	}
	d.mu.Unlock()

	if ok {
		func() {
			defer d.inflight.Done()
			run(v)
		}()
	}
	d.inflight.Wait()
	return ok
}
