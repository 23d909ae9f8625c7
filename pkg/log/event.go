package log

import "time"

// Event is a single entry of the configurator's event stream.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups the events of one operation (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates data flow relative to the host.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Operation is the engine operation that produced the event.
	Operation Operation `cbor:"6,keyasint,omitempty"`

	// Port names the transport (serial device path or "simulator").
	Port string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Transport layer
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"` // Wire layer
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Port/session state
	Warning     *WarningEvent     `cbor:"13,keyasint,omitempty"` // Skipped field
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Failures at any layer
	Info        *InfoEvent        `cbor:"15,keyasint,omitempty"` // Progress and summaries
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionNone is used by events that carry no data.
	DirectionNone Direction = 0
	// DirectionIn indicates data received from the device.
	DirectionIn Direction = 1
	// DirectionOut indicates data sent to the device.
	DirectionOut Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "-"
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the byte stream.
	LayerTransport Layer = 0
	// LayerWire is the command/response layer.
	LayerWire Layer = 1
	// LayerEngine is the configuration engine.
	LayerEngine Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerEngine:
		return "ENGINE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a command or response.
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryWarning indicates a recovered, per-field problem.
	CategoryWarning Category = 2
	// CategoryError indicates an operation failure.
	CategoryError Category = 3
	// CategoryInfo indicates progress or a summary line.
	CategoryInfo Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryWarning:
		return "WARNING"
	case CategoryError:
		return "ERROR"
	case CategoryInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Operation identifies the engine operation an event belongs to.
type Operation uint8

const (
	OperationNone Operation = iota
	OperationLoadDevice
	OperationSaveDevice
	OperationLoadFile
	OperationSaveFile
	OperationEdit
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OperationNone:
		return "NONE"
	case OperationLoadDevice:
		return "LOAD_DEVICE"
	case OperationSaveDevice:
		return "SAVE_DEVICE"
	case OperationLoadFile:
		return "LOAD_FILE"
	case OperationSaveFile:
		return "SAVE_FILE"
	case OperationEdit:
		return "EDIT"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw bytes at the transport layer.
type FrameEvent struct {
	// Size is the chunk size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the raw chunk (may be truncated for large chunks).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MaxFrameData bounds FrameEvent.Data.
const MaxFrameData = 1024

// NewFrameEvent copies at most MaxFrameData bytes of data.
func NewFrameEvent(data []byte) *FrameEvent {
	f := &FrameEvent{Size: len(data)}
	if len(data) > MaxFrameData {
		data = data[:MaxFrameData]
		f.Truncated = true
	}
	f.Data = append([]byte(nil), data...)
	return f
}

// MessageEvent captures one command or its response at the wire layer.
type MessageEvent struct {
	// Type distinguishes commands from responses.
	Type MessageType `cbor:"1,keyasint"`

	// Command is the command line without terminator.
	Command string `cbor:"2,keyasint"`

	// Response is the collected response text (responses only).
	Response string `cbor:"3,keyasint,omitempty"`

	// Index is the 1-based position of the command within the operation.
	Index int `cbor:"4,keyasint,omitempty"`

	// Total is the number of commands the operation intends to send.
	Total int `cbor:"5,keyasint,omitempty"`

	// Rejected is set when the response carries the device error marker.
	Rejected bool `cbor:"6,keyasint,omitempty"`

	// Elapsed is the time from writing the command until the response window
	// closed (responses only). Stored as nanoseconds.
	Elapsed *time.Duration `cbor:"7,keyasint,omitempty"`
}

// MessageType distinguishes commands from responses.
type MessageType uint8

const (
	// MessageTypeCommand indicates a command sent to the device.
	MessageTypeCommand MessageType = 0
	// MessageTypeResponse indicates text received from the device.
	MessageTypeResponse MessageType = 1
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MessageTypeCommand:
		return "COMMAND"
	case MessageTypeResponse:
		return "RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures port and session lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityPort indicates a transport open/close.
	StateEntityPort StateEntity = 0
	// StateEntitySession indicates a session lifecycle change.
	StateEntitySession StateEntity = 1
	// StateEntityModel indicates a change of the configuration model.
	StateEntityModel StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityPort:
		return "PORT"
	case StateEntitySession:
		return "SESSION"
	case StateEntityModel:
		return "MODEL"
	default:
		return "UNKNOWN"
	}
}

// WarningEvent captures a field skipped by a decoder.
type WarningEvent struct {
	// Line is the 1-based source line (0 if not applicable).
	Line int `cbor:"1,keyasint,omitempty"`

	// Key is the field name.
	Key string `cbor:"2,keyasint,omitempty"`

	// Value is the rejected raw value.
	Value string `cbor:"3,keyasint,omitempty"`

	// Reason explains why the field was skipped.
	Reason string `cbor:"4,keyasint"`
}

// ErrorEventData captures failures at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Kind is the error classification (port, device, file, conflict, ...).
	Kind string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}

// InfoEvent carries a human-readable progress or summary line.
type InfoEvent struct {
	Text string `cbor:"1,keyasint"`
}
