package log

import "sync"

// ChanLogger delivers events on a buffered channel so that a presentation
// layer can consume them on its own goroutine. When the buffer is full the
// event is dropped and counted rather than blocking the operation.
type ChanLogger struct {
	mu      sync.Mutex
	ch      chan Event
	closed  bool
	dropped int
}

// NewChanLogger creates a ChanLogger with the given buffer size.
func NewChanLogger(buffer int) *ChanLogger {
	return &ChanLogger{ch: make(chan Event, buffer)}
}

// Events returns the receive side of the event channel. It is closed by Close.
func (l *ChanLogger) Events() <-chan Event {
	return l.ch
}

// Log queues the event.
func (l *ChanLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	select {
	case l.ch <- event:
	default:
		l.dropped++
	}
}

// Dropped returns how many events were discarded because the buffer was full.
func (l *ChanLogger) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Close closes the event channel. It is safe to call Close multiple times.
func (l *ChanLogger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.closed {
		l.closed = true
		close(l.ch)
	}
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Log appends the event.
func (r *Recorder) Log(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Filter returns the recorded events matching f.
func (r *Recorder) Filter(f Filter) []Event {
	var out []Event
	for _, e := range r.Events() {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Compile-time interface satisfaction checks.
var (
	_ Logger = (*ChanLogger)(nil)
	_ Logger = (*Recorder)(nil)
)
