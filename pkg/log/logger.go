package log

// Logger is the interface consumers implement to receive configurator events.
// Pass nil or NoopLogger to disable event logging. A nil pointer of a
// concrete logger type is not a nil Logger and is not accepted.
type Logger interface {
	// Log records an event. Implementations must be thread-safe and
	// should not block; the operation that emits the event waits for it.
	Log(event Event)
}

// NoopLogger discards all events.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// OrNoop returns l, or NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
