package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid file events per path. Each new event for a
// path cancels and reschedules that path's timer, so only the final
// coalesced event of a burst is emitted after a quiet period. Events for
// the same path within the window are merged:
//   - CREATE + MODIFY = CREATE (file is still new)
//   - CREATE + DELETE = nothing (file never really existed)
//   - MODIFY + DELETE = DELETE (file is gone)
//   - DELETE + CREATE = MODIFY (file was replaced)
type Debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	pending map[string]*pendingEvent
	output  chan FileEvent
	stopped bool
}

type pendingEvent struct {
	event   FileEvent
	firstOp Operation
	timer   *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[string]*pendingEvent),
		output:  make(chan FileEvent, 64),
	}
}

// Add schedules an event for emission after the quiet window, coalescing
// it with any pending event for the same path.
func (d *Debouncer) Add(event FileEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	path := event.Path
	if existing, ok := d.pending[path]; ok {
		existing.timer.Stop()
		coalesced := coalesce(existing, event)
		if coalesced == nil {
			// Events cancelled each other out (CREATE + DELETE).
			delete(d.pending, path)
			return
		}
		existing.event = *coalesced
		existing.timer = d.scheduleFlush(path)
		return
	}

	d.pending[path] = &pendingEvent{
		event:   event,
		firstOp: event.Operation,
		timer:   d.scheduleFlush(path),
	}
}

// coalesce merges a new event into the pending one for the same path.
// Returns nil if the events cancel each other out.
func coalesce(existing *pendingEvent, next FileEvent) *FileEvent {
	switch existing.firstOp {
	case OpCreate:
		switch next.Operation {
		case OpModify:
			return &existing.event
		case OpDelete:
			return nil
		default:
			return &next
		}
	case OpDelete:
		if next.Operation == OpCreate {
			result := next
			result.Operation = OpModify
			return &result
		}
		return &next
	default:
		return &next
	}
}

// scheduleFlush arms a timer that emits the path's pending event after
// the quiet window. Caller holds d.mu.
func (d *Debouncer) scheduleFlush(path string) *time.Timer {
	return time.AfterFunc(d.window, func() {
		d.flush(path)
	})
}

// flush emits the pending event for one path.
func (d *Debouncer) flush(path string) {
	d.mu.Lock()
	pe, ok := d.pending[path]
	if !ok || d.stopped {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	d.mu.Unlock()

	// Non-blocking send; a full consumer drops the event rather than
	// stalling the timer goroutine.
	select {
	case d.output <- pe.event:
	default:
	}
}

// Output returns the channel of debounced events.
func (d *Debouncer) Output() <-chan FileEvent {
	return d.output
}

// Stop stops the debouncer and closes the output channel.
// Safe to call multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.stopped = true
	for path, pe := range d.pending {
		pe.timer.Stop()
		delete(d.pending, path)
	}
	close(d.output)
}
