package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of changed paths into a single callback that
// receives each distinct path once, in first-seen order.
type Debouncer struct {
	window   time.Duration
	callback func(paths []string)

	mu      sync.Mutex
	timer   *time.Timer
	pending []string
	seen    map[string]bool
	stopped bool
	running sync.WaitGroup // callbacks in flight
}

// NewDebouncer creates a debouncer that fires window after the last Trigger.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
		seen:     make(map[string]bool),
	}
}

// Trigger records path and restarts the quiet window. It is a no-op after Stop.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if !d.seen[path] {
		d.seen[path] = true
		d.pending = append(d.pending, path)
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 || d.callback == nil {
		d.mu.Unlock()
		return
	}
	paths := d.pending
	d.pending = nil
	d.seen = make(map[string]bool)
	// Add under mu so Stop never waits on a WaitGroup that can still grow
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.callback(paths)
}

// Stop cancels any pending callback, drops the collected paths and waits for
// a callback that is already running to return. It must not be called from
// inside the callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.seen = make(map[string]bool)
	d.mu.Unlock()

	d.running.Wait()
}
