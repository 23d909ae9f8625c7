package transport

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the dongle firmware.
	DefaultBaudRate = 115200

	readBufferSize = 1024
)

// serialPort is the subset of serial.Port the transport uses.
type serialPort interface {
	SetReadTimeout(timeout time.Duration) error
	ResetInputBuffer() error
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Close() error
}

// openPort can be replaced in tests.
var openPort = func(name string, mode *serial.Mode) (serialPort, error) {
	return serial.Open(name, mode)
}

// Serial is a Transport over a serial device, 8N1.
type Serial struct {
	name string
	mode *serial.Mode

	mu   sync.Mutex
	port serialPort
}

// NewSerial creates a serial transport for the named device.
func NewSerial(name string, baudRate int) *Serial {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	return &Serial{
		name: name,
		mode: &serial.Mode{
			BaudRate: baudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
	}
}

// Name returns the device path.
func (s *Serial) Name() string {
	return s.name
}

// Open opens the device. A transport that is already open is reported busy.
func (s *Serial) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.name == "" {
		return &PortError{Op: "open", Port: s.name, Err: ErrNoPort}
	}
	if s.port != nil {
		return &PortError{Op: "open", Port: s.name, Err: ErrPortBusy}
	}

	p, err := openPort(s.name, s.mode)
	if err != nil {
		return &PortError{Op: "open", Port: s.name, Err: classifyOpenError(err)}
	}
	// Discard anything the firmware printed before we were listening.
	_ = p.ResetInputBuffer()
	s.port = p
	return nil
}

// Close closes the device.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// Write writes data to the device.
func (s *Serial) Write(data []byte) error {
	s.mu.Lock()
	p := s.port
	s.mu.Unlock()

	if p == nil {
		return &PortError{Op: "write", Port: s.name, Err: ErrPortClosed}
	}
	for len(data) > 0 {
		n, err := p.Write(data)
		if err != nil {
			return &PortError{Op: "write", Port: s.name, Err: err}
		}
		data = data[n:]
	}
	return nil
}

// WaitAndReadAvailable reads whatever arrives within timeout.
func (s *Serial) WaitAndReadAvailable(timeout time.Duration) ([]byte, error) {
	s.mu.Lock()
	p := s.port
	s.mu.Unlock()

	if p == nil {
		return nil, &PortError{Op: "read", Port: s.name, Err: ErrPortClosed}
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		return nil, &PortError{Op: "read", Port: s.name, Err: err}
	}

	buf := make([]byte, readBufferSize)
	n, err := p.Read(buf)
	if err != nil {
		return nil, &PortError{Op: "read", Port: s.name, Err: err}
	}
	// n == 0 means the read timed out.
	return buf[:n], nil
}

// classifyOpenError maps serial library codes onto the package sentinels.
func classifyOpenError(err error) error {
	code, ok := serialErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case serial.PortBusy:
		return fmt.Errorf("%w: %v", ErrPortBusy, err)
	case serial.PortNotFound, serial.InvalidSerialPort:
		return fmt.Errorf("%w: %v", ErrPortNotFound, err)
	default:
		return err
	}
}

func serialErrorCode(err error) (serial.PortErrorCode, bool) {
	var ptr *serial.PortError
	if errors.As(err, &ptr) {
		return ptr.Code(), true
	}
	var val serial.PortError
	if errors.As(err, &val) {
		return val.Code(), true
	}
	return 0, false
}

// Compile-time interface satisfaction check.
var _ Transport = (*Serial)(nil)
