package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

type fakePort struct {
	written  []byte
	reads    [][]byte
	timeouts []time.Duration
	closed   bool
	resets   int
}

func (p *fakePort) SetReadTimeout(d time.Duration) error {
	p.timeouts = append(p.timeouts, d)
	return nil
}

func (p *fakePort) ResetInputBuffer() error {
	p.resets++
	return nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	// Accept at most 4 bytes per call to exercise the write loop.
	n := min(len(b), 4)
	p.written = append(p.written, b[:n]...)
	return n, nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	if len(p.reads) == 0 {
		return 0, nil
	}
	n := copy(b, p.reads[0])
	p.reads = p.reads[1:]
	return n, nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func withOpenPort(t *testing.T, fn func(string, *serial.Mode) (serialPort, error)) {
	t.Helper()
	orig := openPort
	openPort = fn
	t.Cleanup(func() { openPort = orig })
}

func TestSerialOpenWriteRead(t *testing.T) {
	port := &fakePort{reads: [][]byte{[]byte("TEST: ok\n")}}
	var gotMode *serial.Mode
	withOpenPort(t, func(name string, mode *serial.Mode) (serialPort, error) {
		gotMode = mode
		return port, nil
	})

	s := NewSerial("/dev/ttyACM0", 0)
	require.NoError(t, s.Open())
	assert.Equal(t, DefaultBaudRate, gotMode.BaudRate)
	assert.Equal(t, 1, port.resets)

	require.NoError(t, s.Write([]byte("test\n")))
	assert.Equal(t, "test\n", string(port.written))

	chunk, err := s.WaitAndReadAvailable(100 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "TEST: ok\n", string(chunk))

	chunk, err = s.WaitAndReadAvailable(50 * time.Millisecond)
	require.NoError(t, err)
	assert.Empty(t, chunk)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 50 * time.Millisecond}, port.timeouts)

	require.NoError(t, s.Close())
	assert.True(t, port.closed)
	require.NoError(t, s.Close())
}

func TestSerialOpenTwiceIsBusy(t *testing.T) {
	withOpenPort(t, func(string, *serial.Mode) (serialPort, error) { return &fakePort{}, nil })

	s := NewSerial("/dev/ttyUSB0", DefaultBaudRate)
	require.NoError(t, s.Open())
	err := s.Open()
	assert.True(t, IsPortError(err))
	assert.ErrorIs(t, err, ErrPortBusy)
}

func TestSerialOpenClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"library error", &serial.PortError{}},
		{"plain", errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withOpenPort(t, func(string, *serial.Mode) (serialPort, error) { return nil, tt.err })

			err := NewSerial("/dev/missing", DefaultBaudRate).Open()
			var pe *PortError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "open", pe.Op)
			assert.Equal(t, "/dev/missing", pe.Port)
		})
	}
}

func TestSerialNoName(t *testing.T) {
	err := NewSerial("", DefaultBaudRate).Open()
	assert.ErrorIs(t, err, ErrNoPort)
}

func TestSerialClosedIO(t *testing.T) {
	s := NewSerial("/dev/ttyACM0", DefaultBaudRate)
	assert.ErrorIs(t, s.Write([]byte("x")), ErrPortClosed)
	_, err := s.WaitAndReadAvailable(time.Millisecond)
	assert.ErrorIs(t, err, ErrPortClosed)
}
