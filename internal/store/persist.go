package store

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid successive writes to the same aggregate key into
// one durable write, scheduled delay after the most recent mutation.
// Scheduling a key with a pending timer replaces the timer; it never enqueues
// a duplicate write.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
	fire   func(key string)
}

// NewDebouncer returns a debouncer that calls fire(key) once per settled key.
func NewDebouncer(delay time.Duration, fire func(key string)) *Debouncer {
	return &Debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		fire:   fire,
	}
}

// Schedule arms (or re-arms) the write timer for key.
func (d *Debouncer) Schedule(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		d.fire(key)
	})
}

// Cancel drops any pending write for the given keys without firing it.
// Import and reset call this before replacing state so an in-flight timer
// can't persist stale data over the new state.
func (d *Debouncer) Cancel(keys ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, key := range keys {
		if t, ok := d.timers[key]; ok {
			t.Stop()
			delete(d.timers, key)
		}
	}
}

// CancelAll drops every pending write.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}

// Flush fires every pending write immediately and synchronously. Used on
// shutdown so the debounce window can't swallow the last edits.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.timers))
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
		keys = append(keys, key)
	}
	d.mu.Unlock()

	for _, key := range keys {
		d.fire(key)
	}
}
