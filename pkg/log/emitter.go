package log

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Emitter stamps events of one operation with a shared session ID, the
// operation and the port name, and forwards them to a Logger.
type Emitter struct {
	logger    Logger
	sessionID string
	operation Operation
	port      string
	now       func() time.Time
}

// NewEmitter starts a new session with a random ID.
func NewEmitter(logger Logger, op Operation, port string) *Emitter {
	return &Emitter{
		logger:    OrNoop(logger),
		sessionID: uuid.New().String(),
		operation: op,
		port:      port,
		now:       time.Now,
	}
}

// SessionID returns the ID shared by all events of this emitter.
func (e *Emitter) SessionID() string {
	return e.sessionID
}

// WithOperation returns an emitter for another operation in the same session.
func (e *Emitter) WithOperation(op Operation) *Emitter {
	cp := *e
	cp.operation = op
	return &cp
}

func (e *Emitter) emit(ev Event) {
	ev.Timestamp = e.now()
	ev.SessionID = e.sessionID
	ev.Operation = e.operation
	ev.Port = e.port
	e.logger.Log(ev)
}

// Frame reports a raw chunk written or read.
func (e *Emitter) Frame(dir Direction, data []byte) {
	e.emit(Event{Direction: dir, Layer: LayerTransport, Category: CategoryMessage, Frame: NewFrameEvent(data)})
}

// Command reports a command about to be written. Index and total may be zero
// for commands outside a numbered sequence.
func (e *Emitter) Command(cmd string, index, total int) {
	e.emit(Event{
		Direction: DirectionOut,
		Layer:     LayerWire,
		Category:  CategoryMessage,
		Message:   &MessageEvent{Type: MessageTypeCommand, Command: cmd, Index: index, Total: total},
	})
}

// Response reports the text collected for a command.
func (e *Emitter) Response(cmd, response string, index, total int, rejected bool, elapsed time.Duration) {
	e.emit(Event{
		Direction: DirectionIn,
		Layer:     LayerWire,
		Category:  CategoryMessage,
		Message: &MessageEvent{
			Type:     MessageTypeResponse,
			Command:  cmd,
			Response: response,
			Index:    index,
			Total:    total,
			Rejected: rejected,
			Elapsed:  &elapsed,
		},
	})
}

// State reports a lifecycle change.
func (e *Emitter) State(layer Layer, entity StateEntity, oldState, newState, reason string) {
	e.emit(Event{
		Layer:       layer,
		Category:    CategoryState,
		StateChange: &StateChangeEvent{Entity: entity, OldState: oldState, NewState: newState, Reason: reason},
	})
}

// Warn reports a skipped field.
func (e *Emitter) Warn(line int, key, value, reason string) {
	e.emit(Event{
		Layer:    LayerEngine,
		Category: CategoryWarning,
		Warning:  &WarningEvent{Line: line, Key: key, Value: value, Reason: reason},
	})
}

// Error reports an operation failure.
func (e *Emitter) Error(layer Layer, kind, context string, err error) {
	e.emit(Event{
		Layer:    layer,
		Category: CategoryError,
		Error:    &ErrorEventData{Layer: layer, Message: err.Error(), Kind: kind, Context: context},
	})
}

// Infof reports a progress or summary line.
func (e *Emitter) Infof(format string, args ...any) {
	e.emit(Event{
		Layer:    LayerEngine,
		Category: CategoryInfo,
		Info:     &InfoEvent{Text: fmt.Sprintf(format, args...)},
	})
}
