package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/log"
)

func TestStatsCountsByLayer(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, Layer: log.LayerTransport, Category: log.CategoryMessage},
		{Timestamp: ts, Layer: log.LayerTransport, Category: log.CategoryMessage},
		{Timestamp: ts, Layer: log.LayerWire, Category: log.CategoryMessage},
		{Timestamp: ts, Layer: log.LayerEngine, Category: log.CategoryInfo},
	}

	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"TRANSPORT:   2", "WIRE:        1", "ENGINE:      1", "Total Events: 4"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestStatsSessions(t *testing.T) {
	path := recordSession(t)

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	var load, save, edit *SessionStats
	for _, s := range stats.Sessions {
		switch s.Operation {
		case log.OperationLoadDevice:
			load = s
		case log.OperationSaveDevice:
			save = s
		case log.OperationEdit:
			edit = s
		}
	}
	if load == nil || save == nil || edit == nil {
		t.Fatalf("expected load, save and edit sessions, got %d sessions", len(stats.Sessions))
	}
	if load.Commands != 2 || load.Failed {
		t.Errorf("load: commands = %d, failed = %v", load.Commands, load.Failed)
	}
	if save.Commands != 5 || !save.Failed {
		t.Errorf("save: commands = %d, failed = %v", save.Commands, save.Failed)
	}
	if stats.Rejected != 1 {
		t.Errorf("rejected = %d, want 1", stats.Rejected)
	}

	var buf bytes.Buffer
	printStats(&buf, stats)
	output := buf.String()
	if !strings.Contains(output, "Sessions: 3") {
		t.Errorf("expected 3 sessions, got: %s", output)
	}
	if !strings.Contains(output, "Rejected commands: 1") {
		t.Errorf("expected rejected count, got: %s", output)
	}
}
