// Package debounce delays propagation of a rapidly changing value until it
// has been stable for a quiet period. It is a pure scheduling primitive with
// no knowledge of its callers (search throttling, autosave, etc).
package debounce

import (
	"sync"
	"time"
)

// Debouncer emits the most recent value passed to Set once no newer value has
// arrived for the configured delay. Each Set cancels the pending emission and
// re-arms the timer; Stop cancels any pending emission. A zero delay still
// delivers asynchronously rather than dropping the value.
type Debouncer[T any] struct {
	delay time.Duration
	out   chan T

	mu         sync.Mutex
	timer      *time.Timer
	gen        uint64
	pending    T
	hasPending bool
	stopped    bool
}

// New creates a debouncer with the given quiet period.
func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// Set records a new input value, displacing any pending one. Zero values and
// nil-able values propagate like any other value.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = value
	d.hasPending = true
	myGen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.emit(myGen, value)
	})
}

// C returns the channel on which settled values are delivered.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Flush delivers any pending value immediately instead of waiting out the
// quiet period. No-op when nothing is pending or the debouncer is stopped.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	gen, value := d.gen, d.pending
	d.mu.Unlock()

	d.emit(gen, value)
}

// Stop cancels any pending emission. No value is delivered after Stop
// returns. Stop is idempotent.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// emit delivers value unless a newer Set displaced it while its timer was
// firing, or a racing Flush already delivered it.
func (d *Debouncer[T]) emit(gen uint64, value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || gen != d.gen || !d.hasPending {
		return
	}
	d.hasPending = false
	// Displace an undelivered older value so the consumer only ever
	// observes the latest settled input.
	select {
	case <-d.out:
	default:
	}
	d.out <- value
}
