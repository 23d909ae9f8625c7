package rcconf_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/configurator"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/log"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/persistence"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/session"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/simulator"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/wire"
)

// TestE2E_FileToDeviceAndBack writes a file, saves it to the dongle, reads
// it back from the dongle and compares the result with the file.
func TestE2E_FileToDeviceAndBack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gamepad.json")
	dst := filepath.Join(dir, "readback.yaml")

	// Edit and store a configuration
	editor := configurator.New(configurator.Config{})
	editor.SetProtocol(model.ProtocolSBUS)
	for in, ch := range map[model.Input]model.Channel{
		model.InputXAxis:      1,
		model.InputYAxis:      2,
		model.InputThrottle:   3,
		model.InputRudder:     4,
		model.InputHatSwitch2: 16,
	} {
		if err := editor.Assign(in, ch); err != nil {
			t.Fatalf("Assign(%s, %d) failed: %v", in, ch, err)
		}
	}
	if err := editor.SaveFile(src); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	// Send it to the dongle
	dongle := simulator.New(simulator.DefaultConfig(), simulator.Options{ChunkSize: 13})
	sender := configurator.New(configurator.Config{Transport: dongle})
	if _, err := sender.LoadFile(src); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	saved, err := sender.SaveToDevice()
	if err != nil {
		t.Fatalf("SaveToDevice failed: %v", err)
	}
	if saved.Sent != wire.SaveCommandCount {
		t.Errorf("Sent = %d, want %d", saved.Sent, wire.SaveCommandCount)
	}

	// Read it back through a fresh configurator
	reader := configurator.New(configurator.Config{Transport: dongle})
	loaded, err := reader.LoadFromDevice()
	if err != nil {
		t.Fatalf("LoadFromDevice failed: %v", err)
	}
	if len(loaded.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", loaded.Warnings)
	}
	if !reader.Snapshot().Equal(editor.Snapshot()) {
		t.Errorf("device configuration differs from the file")
	}

	// Store the readback as YAML and compare with the JSON original
	if err := reader.SaveFile(dst); err != nil {
		t.Fatalf("SaveFile(yaml) failed: %v", err)
	}
	fromYAML := model.NewConfig()
	if _, err := persistence.NewStore(dst, nil).Load(&fromYAML); err != nil {
		t.Fatalf("Load(yaml) failed: %v", err)
	}
	if !fromYAML.Equal(editor.Snapshot()) {
		t.Errorf("YAML readback differs from the JSON original")
	}
}

// TestE2E_RejectedSaveKeepsEEPROM checks that a save aborted by the dongle
// leaves the stored configuration alone.
func TestE2E_RejectedSaveKeepsEEPROM(t *testing.T) {
	dongle := simulator.New(simulator.DefaultConfig(), simulator.Options{RejectAt: 20})
	c := configurator.New(configurator.Config{Transport: dongle})
	c.SetProtocol(model.ProtocolCRSF)

	res, err := c.SaveToDevice()
	var rejected *session.DeviceRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected DeviceRejectedError, got %v", err)
	}
	if rejected.Index != 20 || res.Sent != 20 {
		t.Errorf("rejected at %d after %d sent, want 20/20", rejected.Index, res.Sent)
	}
	if !dongle.Stored().Equal(simulator.DefaultConfig()) {
		t.Errorf("EEPROM changed by an aborted save")
	}
}

// TestE2E_EventLog records a load and a save to an event log file and reads
// the operations back by session.
func TestE2E_EventLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.rlog")
	fl, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	dongle := simulator.New(simulator.DefaultConfig(), simulator.Options{})
	c := configurator.New(configurator.Config{Transport: dongle, Events: fl})
	if _, err := c.LoadFromDevice(); err != nil {
		t.Fatalf("LoadFromDevice failed: %v", err)
	}
	if err := c.Assign(model.InputZAxis, 9); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if _, err := c.SaveToDevice(); err != nil {
		t.Fatalf("SaveToDevice failed: %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	layer := log.LayerWire
	direction := log.DirectionOut
	category := log.CategoryMessage
	r, err := log.NewFilteredReader(path, log.Filter{Layer: &layer, Direction: &direction, Category: &category})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer r.Close()

	sessions := make(map[string]int)
	var commands []string
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		sessions[ev.SessionID]++
		commands = append(commands, ev.Message.Command)
	}

	// test + config, then the 47 save commands
	if len(sessions) != 2 {
		t.Errorf("got %d sessions, want 2", len(sessions))
	}
	if len(commands) != 2+wire.SaveCommandCount {
		t.Fatalf("got %d commands, want %d", len(commands), 2+wire.SaveCommandCount)
	}
	if commands[0] != "test" || commands[1] != "config" || commands[len(commands)-1] != "save" {
		t.Errorf("unexpected command order: %v ... %v", commands[:2], commands[len(commands)-1])
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("event log missing: %v", err)
	}
}
