package session

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/log"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/transport"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/wire"
)

// Session exchanges commands with the dongle over a transport.
type Session struct {
	transport transport.Transport
	timing    Timing
	events    log.Logger
	logger    *slog.Logger

	mu    sync.Mutex
	state State
	em    *log.Emitter
}

// New creates a session over t. The transport stays closed until an
// operation starts. A nil transport still allows debug saves; every other
// operation fails with transport.ErrNoPort.
func New(t transport.Transport, cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		transport: t,
		timing:    cfg.Timing.withDefaults(),
		events:    log.OrNoop(cfg.Events),
		logger:    logger,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Timing returns the read windows in use.
func (s *Session) Timing() Timing {
	return s.timing
}

// Open acquires the transport for a sequence of manual exchanges.
// Prefer RunLoad and RunSave, which manage the transport themselves.
func (s *Session) Open() error {
	return s.open(log.NewEmitter(s.events, log.OperationNone, s.portName()))
}

// Close releases the transport. Closing a closed session is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state != StateOpen {
		s.mu.Unlock()
		return nil
	}
	em := s.em
	s.mu.Unlock()
	return s.close(em)
}

// portName returns the transport name, or "" without a transport.
func (s *Session) portName() string {
	if s.transport == nil {
		return ""
	}
	return s.transport.Name()
}

func (s *Session) open(em *log.Emitter) error {
	if s.transport == nil {
		err := &transport.PortError{Op: "open", Err: transport.ErrNoPort}
		em.Error(log.LayerTransport, "port", "open", err)
		return err
	}

	s.mu.Lock()
	if s.state != StateClosed {
		s.mu.Unlock()
		return ErrSessionBusy
	}
	// Claim the session before touching the transport so that a concurrent
	// caller sees it busy.
	s.state = StateOpen
	s.em = em
	s.mu.Unlock()

	if err := s.transport.Open(); err != nil {
		s.mu.Lock()
		s.state = StateClosed
		s.em = nil
		s.mu.Unlock()

		err = s.portError("open", err)
		em.Error(log.LayerTransport, "port", "open", err)
		return err
	}

	em.State(log.LayerTransport, log.StateEntityPort, StateClosed.String(), StateOpen.String(), "")
	s.logger.Debug("port opened", "port", s.portName(), "session_id", em.SessionID())
	return nil
}

func (s *Session) close(em *log.Emitter) error {
	err := s.transport.Close()

	s.mu.Lock()
	s.state = StateClosed
	s.em = nil
	s.mu.Unlock()

	reason := ""
	if err != nil {
		reason = err.Error()
		err = s.portError("close", err)
	}
	em.State(log.LayerTransport, log.StateEntityPort, StateOpen.String(), StateClosed.String(), reason)
	s.logger.Debug("port closed", "port", s.portName(), "session_id", em.SessionID())
	return err
}

// Exchange writes one command and collects its response. It waits up to
// first for the first chunk and then up to follow for each further chunk,
// returning when a window elapses without data. The response may be empty.
func (s *Session) Exchange(cmd wire.Command, first, follow time.Duration) (string, error) {
	response, _, err := s.exchange(cmd, first, follow, 0, 0)
	return response, err
}

// exchange reports whether the command was written, so that a failed write
// is not counted as sent.
func (s *Session) exchange(cmd wire.Command, first, follow time.Duration, index, total int) (response string, written bool, err error) {
	s.mu.Lock()
	em := s.em
	open := s.state == StateOpen
	s.mu.Unlock()
	if !open {
		return "", false, ErrNotOpen
	}

	line := cmd.String()
	em.Command(line, index, total)
	start := time.Now()

	data := cmd.Line()
	if err := s.transport.Write(data); err != nil {
		err = s.portError("write", err)
		em.Error(log.LayerTransport, "port", line, err)
		return "", false, err
	}
	em.Frame(log.DirectionOut, data)

	var buf bytes.Buffer
	window := first
	for {
		chunk, err := s.transport.WaitAndReadAvailable(window)
		if err != nil {
			err = s.portError("read", err)
			em.Error(log.LayerTransport, "port", line, err)
			return decodeText(buf.Bytes()), true, err
		}
		if len(chunk) == 0 {
			break
		}
		em.Frame(log.DirectionIn, chunk)
		buf.Write(chunk)
		window = follow
	}

	response = decodeText(buf.Bytes())
	em.Response(line, response, index, total, wire.IsError(response), time.Since(start))
	return response, true, nil
}

// portError wraps err in a *transport.PortError unless it already is one.
func (s *Session) portError(op string, err error) error {
	if transport.IsPortError(err) {
		return err
	}
	return &transport.PortError{Op: op, Port: s.portName(), Err: err}
}

// decodeText drops invalid UTF-8 sequences.
func decodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}

// RunLoad reads the device configuration and applies it onto a copy of base.
// The transport is closed on every exit path.
func (s *Session) RunLoad(base model.Config) (res LoadResult, err error) {
	em := log.NewEmitter(s.events, log.OperationLoadDevice, s.portName())
	res = LoadResult{Config: base, SessionID: em.SessionID()}

	em.Infof("Loading configuration from dongle...")
	if err := s.open(em); err != nil {
		return res, err
	}
	defer func() {
		if cerr := s.close(em); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			em.Infof("Load from dongle failed. Port closed.")
		} else {
			em.Infof("Load from dongle complete. Port closed.")
		}
	}()

	// The test command flushes anything the firmware buffered before.
	if _, _, err := s.exchange(wire.Test(), s.timing.Test, s.timing.Follow, 1, 2); err != nil {
		return res, err
	}
	response, _, err := s.exchange(wire.ReadConfig(), s.timing.Config, s.timing.Follow, 2, 2)
	if err != nil {
		return res, err
	}
	res.Response = response
	if strings.TrimSpace(response) == "" {
		em.Error(log.LayerWire, "no_response", "config", ErrNoResponse)
		return res, ErrNoResponse
	}

	cfg := base
	decoded := wire.Decode(response, &cfg)
	for _, w := range decoded.Warnings {
		em.Warn(w.Line, w.Key, w.Value, w.Reason)
	}
	for _, w := range cfg.DuplicateWarnings() {
		em.Warn(w.Line, w.Key, w.Value, w.Reason)
	}

	em.Infof("Configuration load complete. Updated %d settings.", decoded.Applied)
	if decoded.Applied == 0 {
		em.Warn(0, "", "", "could not parse any valid settings from dongle response")
	}

	res.Config = cfg
	res.Applied = decoded.Applied
	res.Warnings = decoded.Warnings
	return res, nil
}

// RunSave writes cfg to the device and commits it. Commands are sent one at
// a time; the first response carrying the error marker aborts the sequence
// with a *DeviceRejectedError. The debug protocol performs no I/O.
func (s *Session) RunSave(cfg model.Config) (res SaveResult, err error) {
	em := log.NewEmitter(s.events, log.OperationSaveDevice, s.portName())
	res = SaveResult{Commands: wire.Encode(cfg), SessionID: em.SessionID()}
	total := len(res.Commands)

	if !cfg.Protocol.IsSet() {
		em.Error(log.LayerEngine, "validation", "save", ErrProtocolUnset)
		return res, ErrProtocolUnset
	}
	if !cfg.Protocol.Transmits() {
		res.Simulated = true
		em.Infof("--- DEBUG MODE (NO DATA SENT) ---")
		em.Infof("Commands that would be sent:")
		for _, line := range wire.Lines(res.Commands) {
			em.Infof("  %s", line)
		}
		return res, nil
	}

	em.Infof("Saving configuration to dongle...")
	if err := s.open(em); err != nil {
		return res, err
	}
	defer func() {
		if cerr := s.close(em); cerr != nil && err == nil {
			err = cerr
		}
		em.Infof("Save to dongle finished after %d/%d commands. Port closed.", res.Sent, total)
	}()

	for i, cmd := range res.Commands {
		window := s.timing.Set
		if cmd.Verb == wire.VerbSave {
			window = s.timing.Save
		}

		response, written, err := s.exchange(cmd, window, s.timing.Follow, i+1, total)
		if written {
			res.Sent = i + 1
		}
		if err != nil {
			return res, err
		}
		if wire.IsError(response) {
			rejected := &DeviceRejectedError{Command: cmd, Index: i + 1, Response: response}
			em.Error(log.LayerWire, "device", cmd.String(), rejected)
			return res, rejected
		}
		em.Infof("Progress: %d/%d commands sent", i+1, total)
	}

	em.Infof("All settings sent and saved to EEPROM.")
	return res, nil
}

// IsDeviceRejected reports whether err is or wraps a *DeviceRejectedError.
func IsDeviceRejected(err error) bool {
	var re *DeviceRejectedError
	return errors.As(err, &re)
}
