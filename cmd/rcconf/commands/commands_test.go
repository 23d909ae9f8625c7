package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayzeef/rc-gamepad-configurator/cmd/rcconf/commands"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/configurator"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/persistence"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/session"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/simulator"
)

func newConfigurator(dongle *simulator.Dongle) *configurator.Configurator {
	if dongle == nil {
		return configurator.New(configurator.Config{})
	}
	return configurator.New(configurator.Config{Transport: dongle})
}

func readFile(t *testing.T, path string) model.Config {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg := model.NewConfig()
	warnings, err := persistence.Unmarshal(data, &cfg)
	require.NoError(t, err)
	require.Empty(t, warnings)
	return cfg
}

func TestParseInput(t *testing.T) {
	in, err := commands.ParseInput(" Throttle ")
	require.NoError(t, err)
	assert.Equal(t, model.InputThrottle, in)

	_, err = commands.ParseInput("joystick")
	assert.ErrorContains(t, err, "unknown input: joystick")
}

func TestRunLoadWritesOutput(t *testing.T) {
	dongle := simulator.New(simulator.DefaultConfig(), simulator.Options{})
	c := newConfigurator(dongle)
	out := filepath.Join(t.TempDir(), "dongle.json")

	var buf bytes.Buffer
	require.NoError(t, commands.RunLoad(c, out, &buf))

	assert.Contains(t, buf.String(), "Protocol: ibus")
	assert.Contains(t, buf.String(), "  x_axis         1\n")
	assert.Contains(t, buf.String(), "  hat_switch_1   -\n")
	assert.True(t, readFile(t, out).Equal(simulator.DefaultConfig()))
}

func TestRunSaveSendsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gamepad.json")
	dongle := simulator.New(model.NewConfig(), simulator.Options{})

	var buf bytes.Buffer
	require.NoError(t, commands.RunProtocol(newConfigurator(nil), path, "CRSF", &buf))
	require.NoError(t, commands.RunSet(newConfigurator(nil), path, "throttle", "3", &buf))
	require.NoError(t, commands.RunSave(newConfigurator(dongle), path, &buf))

	assert.Contains(t, buf.String(), "Sent 47/47 commands.")
	stored := dongle.Stored()
	assert.Equal(t, model.ProtocolCRSF, stored.Protocol)
	assert.Equal(t, model.Channel(3), stored.Channel(model.InputThrottle))
}

func TestRunSaveRejectedReportsProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamepad.json")
	require.NoError(t, commands.RunProtocol(newConfigurator(nil), path, "sbus", &bytes.Buffer{}))

	dongle := simulator.New(model.NewConfig(), simulator.Options{RejectAt: 5})
	var buf bytes.Buffer
	err := commands.RunSave(newConfigurator(dongle), path, &buf)

	assert.True(t, session.IsDeviceRejected(err))
	assert.Contains(t, buf.String(), "Sent 5/47 commands before the failure")
	assert.Equal(t, model.ProtocolUnset, dongle.Stored().Protocol)
}

func TestRunSaveDebugSendsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamepad.json")
	require.NoError(t, commands.RunProtocol(newConfigurator(nil), path, "debug", &bytes.Buffer{}))

	var buf bytes.Buffer
	require.NoError(t, commands.RunSave(newConfigurator(nil), path, &buf))
	assert.Contains(t, buf.String(), "Debug protocol: 47 commands listed, nothing sent.")
}

func TestRunSetConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamepad.json")
	var buf bytes.Buffer
	require.NoError(t, commands.RunProtocol(newConfigurator(nil), path, "ibus", &buf))
	require.NoError(t, commands.RunSet(newConfigurator(nil), path, "x_axis", "4", &buf))

	err := commands.RunSet(newConfigurator(nil), path, "y_axis", "4", &buf)
	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ErrorContains(t, err, "clear x_axis first")

	cfg := readFile(t, path)
	assert.Equal(t, model.Channel(4), cfg.Channel(model.InputXAxis))
	assert.Equal(t, model.ChannelDisabled, cfg.Channel(model.InputYAxis))
}

func TestRunSetValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamepad.json")
	require.NoError(t, commands.RunProtocol(newConfigurator(nil), path, "ibus", &bytes.Buffer{}))

	tests := []struct {
		name    string
		input   string
		channel string
	}{
		{"unknown input", "joystick", "1"},
		{"out of range", "x_axis", "17"},
		{"not a number", "x_axis", "one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := commands.RunSet(newConfigurator(nil), path, tt.input, tt.channel, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}

func TestRunClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamepad.json")
	c := newConfigurator(simulator.New(simulator.DefaultConfig(), simulator.Options{}))
	require.NoError(t, commands.RunLoad(c, path, &bytes.Buffer{}))

	var buf bytes.Buffer
	require.NoError(t, commands.RunClear(newConfigurator(nil), path, "x_axis", &buf))
	assert.Equal(t, "x_axis -> disabled\n", buf.String())
	cfg := readFile(t, path)
	assert.Equal(t, model.ChannelDisabled, cfg.Channel(model.InputXAxis))
	assert.Equal(t, model.Channel(2), cfg.Channel(model.InputYAxis))

	require.NoError(t, commands.RunClear(newConfigurator(nil), path, "ALL", &buf))
	cfg = readFile(t, path)
	assert.Empty(t, cfg.Enabled())
	assert.Equal(t, model.ProtocolIBUS, cfg.Protocol)
}

func TestRunProtocol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "gamepad.json")

	var buf bytes.Buffer
	require.NoError(t, commands.RunProtocol(newConfigurator(nil), path, "PPM", &buf))
	assert.Equal(t, "protocol -> ppm\n", buf.String())
	assert.Equal(t, model.ProtocolPPM, readFile(t, path).Protocol)

	err := commands.RunProtocol(newConfigurator(nil), path, "pwm", &buf)
	assert.Error(t, err)
}

func TestRunExportConvertsFormat(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gamepad.json")
	dst := filepath.Join(dir, "gamepad.yaml")
	c := newConfigurator(simulator.New(simulator.DefaultConfig(), simulator.Options{}))
	require.NoError(t, commands.RunLoad(c, src, &bytes.Buffer{}))

	var buf bytes.Buffer
	require.NoError(t, commands.RunExport(newConfigurator(nil), src, dst, &buf))
	assert.Equal(t, "exported "+src+" -> "+dst+" (yaml)\n", buf.String())

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "protocol: ibus\n")

	cfg := model.NewConfig()
	res, err := persistence.UnmarshalFormat(data, persistence.FormatYAML, &cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.True(t, cfg.Equal(simulator.DefaultConfig()))
}

func TestRunShowMissingFile(t *testing.T) {
	err := commands.RunShow(newConfigurator(nil), filepath.Join(t.TempDir(), "none.json"), &bytes.Buffer{})
	var fileErr *persistence.FileError
	assert.ErrorAs(t, err, &fileErr)
}

func TestPrintConfigDuplicates(t *testing.T) {
	cfg := model.NewConfig()
	cfg.Protocol = model.ProtocolIBUS
	require.NoError(t, cfg.Set(model.InputRudder, 9))
	require.NoError(t, cfg.Set(model.InputThrottle, 9))

	var buf bytes.Buffer
	commands.PrintConfig(&buf, cfg)
	assert.Contains(t, buf.String(), "--- Hat Switches ---")
	assert.Contains(t, buf.String(), "Warning: channel 9 is assigned to rudder, throttle\n")
}

func TestPrintChannels(t *testing.T) {
	var buf bytes.Buffer
	commands.PrintChannels(&buf, model.InputZAxis, []model.Channel{0, 3, 16})
	assert.Equal(t, "z_axis: 0(off) 3 16\n", buf.String())
}
