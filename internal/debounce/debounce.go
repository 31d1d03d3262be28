// Package debounce coalesces bursts of repeated work per key.
//
// Within one key, only the last function scheduled inside the delay window
// runs; earlier pending calls are replaced. Flush runs everything still
// pending immediately, for shutdown paths.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules delayed, per-key coalesced execution.
type Debouncer struct {
	delay  time.Duration
	mu     sync.Mutex
	timers map[string]*time.Timer
	fns    map[string]func()
}

// New creates a debouncer with the given delay window.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		fns:    make(map[string]func()),
	}
}

// Trigger schedules fn to run after the delay, replacing any function still
// pending for the same key.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.fns[key] = fn
	d.timers[key] = time.AfterFunc(d.delay, func() { d.fire(key) })
}

// fire runs and clears the pending function for key, if one remains.
// A timer that lost the race against Flush or a newer Trigger finds
// nothing to do.
func (d *Debouncer) fire(key string) {
	d.mu.Lock()
	fn := d.fns[key]
	delete(d.fns, key)
	delete(d.timers, key)
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush stops all timers and runs every pending function immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := make([]func(), 0, len(d.fns))
	for key, fn := range d.fns {
		if t, ok := d.timers[key]; ok {
			t.Stop()
		}
		pending = append(pending, fn)
	}
	d.fns = make(map[string]func())
	d.timers = make(map[string]*time.Timer)
	d.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Pending reports how many keys have work scheduled.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.fns)
}
