package commands

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/log"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		events = append(events, event)
	}
	return events
}

func TestFilterBySessionID(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, SessionID: "sess-1", Category: log.CategoryMessage},
		{Timestamp: ts, SessionID: "sess-2", Category: log.CategoryMessage},
		{Timestamp: ts, SessionID: "sess-1", Category: log.CategoryInfo},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.rlog")

	count, err := RunFilter(path, FilterOptions{Output: outPath, SessionID: "sess-1"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}

	for _, e := range readAll(t, outPath) {
		if e.SessionID != "sess-1" {
			t.Errorf("expected sess-1, got %s", e.SessionID)
		}
	}
}

func TestFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: base, SessionID: "sess-1"},
		{Timestamp: base.Add(time.Hour), SessionID: "sess-1"},
		{Timestamp: base.Add(2 * time.Hour), SessionID: "sess-1"},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.rlog")

	count, err := RunFilter(path, FilterOptions{
		Output:    outPath,
		TimeStart: base.Add(30 * time.Minute).Format(time.RFC3339),
		TimeEnd:   base.Add(90 * time.Minute).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 event, got %d", count)
	}
}

func TestFilterByOperation(t *testing.T) {
	path := recordSession(t)
	outPath := filepath.Join(t.TempDir(), "filtered.rlog")

	count, err := RunFilter(path, FilterOptions{Output: outPath, Operation: "load-device", Layer: "wire"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	events := readAll(t, outPath)
	if len(events) != count {
		t.Fatalf("count = %d, file holds %d", count, len(events))
	}
	// Two commands and their responses.
	if count != 4 {
		t.Errorf("expected 4 wire events, got %d", count)
	}
	for _, e := range events {
		if e.Operation != log.OperationLoadDevice || e.Layer != log.LayerWire {
			t.Errorf("unexpected event %s %s", e.Operation, e.Layer)
		}
	}
}

func TestFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, nil)

	tests := []FilterOptions{
		{Output: "x", TimeStart: "yesterday"},
		{Output: "x", Layer: "service"},
		{Output: "x", Direction: "both"},
		{Output: "x", Category: "control"},
		{Output: "x", Operation: "flash"},
	}
	for _, opts := range tests {
		if _, err := RunFilter(path, opts); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}
