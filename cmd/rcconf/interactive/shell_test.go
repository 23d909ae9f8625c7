package interactive

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/configurator"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/simulator"
)

func newShell(dongle *simulator.Dongle) (*Shell, *configurator.Configurator, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := configurator.Config{}
	if dongle != nil {
		cfg.Transport = dongle
	}
	c := configurator.New(cfg)
	return New(c, &buf), c, &buf
}

func TestExecuteQuit(t *testing.T) {
	s, _, _ := newShell(nil)
	for _, cmd := range []string{"quit", "exit", "q", "  QUIT  "} {
		assert.False(t, s.Execute(cmd), cmd)
	}
	assert.True(t, s.Execute(""))
	assert.True(t, s.Execute("help"))
}

func TestExecuteUnknown(t *testing.T) {
	s, _, out := newShell(nil)
	assert.True(t, s.Execute("frobnicate"))
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestExecuteSetAndConflict(t *testing.T) {
	s, c, out := newShell(nil)

	s.Execute("set rudder 5")
	assert.Contains(t, out.String(), "rudder -> channel 5\n")

	out.Reset()
	s.Execute("set throttle 5")
	assert.Contains(t, out.String(), "is already assigned to rudder")
	assert.Equal(t, model.ChannelDisabled, c.Snapshot().Channel(model.InputThrottle))

	out.Reset()
	s.Execute("set throttle")
	assert.Equal(t, "Usage: set <input> <channel>\n", out.String())
}

func TestExecuteAvailable(t *testing.T) {
	s, c, out := newShell(nil)
	for ch := model.Channel(1); ch <= model.MaxChannel; ch++ {
		if ch == 4 {
			continue
		}
		in, _ := model.Button(int(ch))
		require.NoError(t, c.Assign(in, ch))
	}

	s.Execute("available x_axis")
	assert.Equal(t, "x_axis: 0(off) 4\n", out.String())
}

func TestExecuteProtocol(t *testing.T) {
	s, c, out := newShell(nil)

	s.Execute("protocol FPORT")
	assert.Equal(t, model.ProtocolFPORT, c.Snapshot().Protocol)

	out.Reset()
	s.Execute("protocol")
	assert.Contains(t, out.String(), "Protocol: fport\n")
	assert.Contains(t, out.String(), "Available: ibus, sbus, crsf, dsmx, dsm2, fport, ppm, debug\n")

	out.Reset()
	s.Execute("protocol pwm")
	assert.Contains(t, out.String(), "Error:")
}

func TestExecuteClearAll(t *testing.T) {
	s, c, _ := newShell(nil)
	require.NoError(t, c.Assign(model.InputXAxis, 1))
	require.NoError(t, c.Assign(model.InputYAxis, 2))

	s.Execute("clear x_axis")
	assert.Equal(t, model.ChannelDisabled, c.Snapshot().Channel(model.InputXAxis))

	s.Execute("clear all")
	assert.Empty(t, c.Snapshot().Enabled())
}

func TestExecuteDeviceRoundTrip(t *testing.T) {
	dongle := simulator.New(simulator.DefaultConfig(), simulator.Options{})
	s, c, out := newShell(dongle)

	s.Execute("load")
	assert.Contains(t, out.String(), "Protocol: ibus")
	assert.True(t, c.Snapshot().Equal(simulator.DefaultConfig()))

	out.Reset()
	s.Execute("set z_axis 9")
	s.Execute("save")
	assert.Contains(t, out.String(), "Sent 47/47 commands.")
	stored := dongle.Stored()
	assert.Equal(t, model.Channel(9), stored.Channel(model.InputZAxis))
}

func TestExecuteSaveWithoutPort(t *testing.T) {
	s, c, out := newShell(nil)
	c.SetProtocol(model.ProtocolIBUS)

	s.Execute("save")
	assert.Contains(t, out.String(), "Failed:")
}

func TestExecuteImportExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamepad.yaml")

	s, c, out := newShell(nil)
	c.SetProtocol(model.ProtocolDSMX)
	require.NoError(t, c.Assign(model.InputHatSwitch1, 12))
	s.Execute("export " + path)
	assert.NotContains(t, out.String(), "Failed:")

	s2, c2, out2 := newShell(nil)
	s2.Execute("import " + path)
	assert.NotContains(t, out2.String(), "Failed:")
	assert.True(t, c2.Snapshot().Equal(c.Snapshot()))

	s2.Execute("import")
	assert.Contains(t, out2.String(), "Usage: import <file>")
}
