package simulator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/transport"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/wire"
)

func send(t *testing.T, d *Dongle, line string) string {
	t.Helper()
	require.NoError(t, d.Write([]byte(line+"\n")))
	var b strings.Builder
	for {
		chunk, err := d.WaitAndReadAvailable(time.Millisecond)
		require.NoError(t, err)
		if len(chunk) == 0 {
			return b.String()
		}
		b.Write(chunk)
	}
}

func TestDongleConfigDecodes(t *testing.T) {
	d := New(DefaultConfig(), Options{ChunkSize: 7})
	require.NoError(t, d.Open())
	defer d.Close()

	resp := send(t, d, "config")
	assert.True(t, strings.HasPrefix(resp, "RX: config\n"))

	cfg := model.NewConfig()
	res := wire.Decode(resp, &cfg)
	assert.Empty(t, res.Warnings)
	assert.True(t, cfg.Equal(DefaultConfig()))
}

func TestDongleSetAndSave(t *testing.T) {
	d := New(model.NewConfig(), Options{})
	require.NoError(t, d.Open())
	defer d.Close()

	assert.Contains(t, send(t, d, "set protocol SBUS"), "SET: protocol = sbus")
	assert.Contains(t, send(t, d, "set throttle 9"), "SET: throttle = 9")
	assert.Equal(t, model.ProtocolUnset, d.Stored().Protocol, "not saved yet")

	assert.Contains(t, send(t, d, "save"), "Configuration saved to EEPROM.")
	stored := d.Stored()
	assert.Equal(t, model.ProtocolSBUS, stored.Protocol)
	assert.Equal(t, model.Channel(9), stored.Channel(model.InputThrottle))
}

func TestDongleErrors(t *testing.T) {
	d := New(model.NewConfig(), Options{})
	require.NoError(t, d.Open())
	defer d.Close()

	tests := []struct {
		line string
		want string
	}{
		{"set x_axis 17", "ERROR: Invalid channel 17 for x_axis. Must be 0-16."},
		{"set protocol debug", "ERROR: Invalid protocol debug."},
		{"set joystick 3", "ERROR: Unknown control joystick."},
		{"set x_axis", "ERROR: Set command requires exactly one control and one value."},
		{"frobnicate", "Type 'help' for a list of commands."},
	}
	for _, tt := range tests {
		resp := send(t, d, tt.line)
		assert.Contains(t, resp, tt.want, tt.line)
		assert.True(t, wire.IsError(resp), tt.line)
	}
}

func TestDongleClearAndReboot(t *testing.T) {
	d := New(DefaultConfig(), Options{})
	require.NoError(t, d.Open())
	defer d.Close()

	send(t, d, "clear")
	working := d.Working()
	assert.Empty(t, working.Enabled())
	assert.Equal(t, model.ProtocolIBUS, working.Protocol)

	send(t, d, "reboot")
	assert.True(t, d.Working().Equal(DefaultConfig()), "reboot reloads EEPROM")
}

func TestDongleFaults(t *testing.T) {
	busy := New(model.NewConfig(), Options{Busy: true})
	err := busy.Open()
	assert.ErrorIs(t, err, transport.ErrPortBusy)

	d := New(model.NewConfig(), Options{RejectAt: 2})
	require.NoError(t, d.Open())
	assert.NotContains(t, send(t, d, "test"), "ERROR:")
	assert.Contains(t, send(t, d, "test"), "ERROR: Simulated failure.")
	require.NoError(t, d.Close())

	silent := New(model.NewConfig(), Options{Silent: true})
	require.NoError(t, silent.Open())
	assert.Empty(t, send(t, silent, "config"))
	assert.Equal(t, []string{"config"}, silent.Received())
}

func TestDongleRequiresOpen(t *testing.T) {
	d := New(model.NewConfig(), Options{})
	assert.True(t, transport.IsPortError(d.Write([]byte("test\n"))))

	require.NoError(t, d.Open())
	assert.True(t, transport.IsPortError(d.Open()), "second open is busy")
}

func TestDonglePartialLines(t *testing.T) {
	d := New(model.NewConfig(), Options{})
	require.NoError(t, d.Open())
	defer d.Close()

	require.NoError(t, d.Write([]byte("te")))
	assert.Empty(t, d.Received())
	require.NoError(t, d.Write([]byte("st\n")))
	assert.Equal(t, []string{"test"}, d.Received())
}
