package transport

import (
	"errors"
	"fmt"
	"time"
)

// Transport is an exclusively owned byte stream to the dongle.
type Transport interface {
	// Open acquires the port. It fails with a *PortError when the port is
	// missing, busy or otherwise unusable.
	Open() error

	// Close releases the port. Closing a closed transport is a no-op.
	Close() error

	// Write sends all of data.
	Write(data []byte) error

	// WaitAndReadAvailable waits up to timeout for data and returns whatever
	// arrived. An empty result means the window elapsed with no data.
	WaitAndReadAvailable(timeout time.Duration) ([]byte, error)

	// Name identifies the transport in logs.
	Name() string
}

var (
	ErrPortBusy     = errors.New("port busy")
	ErrPortNotFound = errors.New("port not found")
	ErrPortClosed   = errors.New("port not open")
	ErrNoPort       = errors.New("no port selected")
)

// PortError reports a failure to open, write or read the transport.
type PortError struct {
	// Op is the failed operation: "open", "write", "read" or "close".
	Op string

	// Port is the transport name.
	Port string

	Err error
}

func (e *PortError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
}

func (e *PortError) Unwrap() error { return e.Err }

// IsPortError reports whether err is or wraps a *PortError.
func IsPortError(err error) bool {
	var pe *PortError
	return errors.As(err, &pe)
}
