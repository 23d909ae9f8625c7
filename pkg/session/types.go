package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/log"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/wire"
)

// Session errors.
var (
	ErrProtocolUnset = errors.New("no protocol selected")
	ErrNoResponse    = errors.New("no response from dongle; is it in config mode?")
	ErrSessionBusy   = errors.New("session busy")
	ErrNotOpen       = errors.New("session not open")
)

// DeviceRejectedError reports a command whose response carried the device
// error marker. The device keeps every command sent before it.
type DeviceRejectedError struct {
	// Command is the rejected command.
	Command wire.Command

	// Index is the 1-based position of the command in the sequence.
	Index int

	// Response is the full response text.
	Response string
}

func (e *DeviceRejectedError) Error() string {
	return fmt.Sprintf("dongle rejected %q (command %d): %s", e.Command.String(), e.Index, firstErrorLine(e.Response))
}

func firstErrorLine(response string) string {
	for _, line := range strings.Split(response, "\n") {
		if i := strings.Index(line, wire.ErrorMarker); i >= 0 {
			return strings.TrimSpace(line[i:])
		}
	}
	return strings.TrimSpace(response)
}

// State is the session lifecycle state.
type State uint8

const (
	StateClosed State = iota
	StateOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// Timing holds the read windows of each command. The first window of an
// exchange is the per-command window; later chunks use Follow.
type Timing struct {
	Test   time.Duration `yaml:"test"`
	Config time.Duration `yaml:"config"`
	Set    time.Duration `yaml:"set"`
	Save   time.Duration `yaml:"save"`
	Follow time.Duration `yaml:"follow"`
}

// DefaultTiming returns windows that suit the stock firmware.
func DefaultTiming() Timing {
	return Timing{
		Test:   100 * time.Millisecond,
		Config: 1000 * time.Millisecond,
		Set:    500 * time.Millisecond,
		Save:   1500 * time.Millisecond,
		Follow: 50 * time.Millisecond,
	}
}

// withDefaults fills zero windows from DefaultTiming.
func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.Test <= 0 {
		t.Test = d.Test
	}
	if t.Config <= 0 {
		t.Config = d.Config
	}
	if t.Set <= 0 {
		t.Set = d.Set
	}
	if t.Save <= 0 {
		t.Save = d.Save
	}
	if t.Follow <= 0 {
		t.Follow = d.Follow
	}
	return t
}

// Config configures a Session.
type Config struct {
	Timing Timing

	// Events receives the event stream. Nil disables it.
	Events log.Logger

	// Logger is used for operational diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// LoadResult is the outcome of RunLoad.
type LoadResult struct {
	// Config is the base configuration with the device's values applied.
	Config model.Config

	// Applied counts the settings taken from the response.
	Applied int

	// Warnings lists the settings that were skipped.
	Warnings []model.Warning

	// Response is the raw config response.
	Response string

	// SessionID identifies the operation in the event stream.
	SessionID string
}

// SaveResult is the outcome of RunSave.
type SaveResult struct {
	// Commands is the full encoded sequence.
	Commands []wire.Command

	// Sent counts the commands written to the device, including a rejected one.
	Sent int

	// Simulated is set for debug saves, which send nothing.
	Simulated bool

	// SessionID identifies the operation in the event stream.
	SessionID string
}
