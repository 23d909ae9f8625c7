// Package commands implements the rcconf-log CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
	Operation *log.Operation
}

// Matches reports whether the event passes the filter.
func (f ViewFilter) Matches(event log.Event) bool {
	filter := log.Filter{
		Layer:     f.Layer,
		Direction: f.Direction,
		Category:  f.Category,
		Operation: f.Operation,
	}
	return filter.Matches(event)
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessionID := shortenSessionID(event.SessionID)
	dir := event.Direction.String()

	var typeLabel string
	switch {
	case event.Frame != nil:
		typeLabel = "Frame"
	case event.Message != nil:
		typeLabel = event.Message.Type.String()
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Warning != nil:
		typeLabel = "Warning"
	case event.Error != nil:
		typeLabel = "Error"
	case event.Info != nil:
		typeLabel = "Info"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [session:%s] %-3s %s %s %s\n", ts, sessionID, dir, event.Layer.String(), event.Operation.String(), typeLabel)
	if event.Port != "" {
		fmt.Fprintf(w, "  Port: %s\n", event.Port)
	}

	switch {
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.Message != nil:
		formatMessageDetails(w, event.Message)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Warning != nil:
		formatWarningDetails(w, event.Warning)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	case event.Info != nil:
		fmt.Fprintf(w, "  %s\n", event.Info.Text)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatFrameDetails writes frame-specific details. The dongle speaks ASCII,
// so the data is shown quoted rather than as hex.
func formatFrameDetails(w io.Writer, frame *log.FrameEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", frame.Size)
	if len(frame.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", strconv.Quote(string(frame.Data)))
		if frame.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

// formatMessageDetails writes message-specific details.
func formatMessageDetails(w io.Writer, msg *log.MessageEvent) {
	fmt.Fprintf(w, "  Command: %s\n", msg.Command)
	if msg.Total > 0 {
		fmt.Fprintf(w, "  Sequence: %d/%d\n", msg.Index, msg.Total)
	}

	if msg.Type == log.MessageTypeResponse {
		if msg.Rejected {
			fmt.Fprintln(w, "  Rejected: yes")
		}
		if msg.Elapsed != nil {
			fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*msg.Elapsed))
		}
		for _, line := range strings.Split(strings.TrimRight(msg.Response, "\r\n"), "\n") {
			line = strings.TrimRight(line, "\r")
			if line != "" {
				fmt.Fprintf(w, "  | %s\n", line)
			}
		}
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatWarningDetails writes warning details.
func formatWarningDetails(w io.Writer, warn *log.WarningEvent) {
	if warn.Line > 0 {
		fmt.Fprintf(w, "  Line: %d\n", warn.Line)
	}
	if warn.Key != "" {
		fmt.Fprintf(w, "  Key: %s\n", warn.Key)
	}
	if warn.Value != "" {
		value, _ := json.Marshal(warn.Value)
		fmt.Fprintf(w, "  Value: %s\n", value)
	}
	fmt.Fprintf(w, "  Reason: %s\n", warn.Reason)
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Kind != "" {
		fmt.Fprintf(w, "  Kind: %s\n", err.Kind)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

// parseLayer parses a layer string (case-insensitive).
func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "wire":
		return log.LayerWire, nil
	case "engine":
		return log.LayerEngine, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, wire, or engine)", s)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "warning":
		return log.CategoryWarning, nil
	case "error":
		return log.CategoryError, nil
	case "info":
		return log.CategoryInfo, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, state, warning, error, or info)", s)
	}
}

// ParseOperationFlag parses an operation string from command-line flag (case-insensitive).
func ParseOperationFlag(s string) (log.Operation, error) {
	return parseOperation(s)
}

// parseOperation parses an operation string. Both "load-device" and
// "LOAD_DEVICE" spellings are accepted.
func parseOperation(s string) (log.Operation, error) {
	switch strings.ReplaceAll(strings.ToLower(s), "_", "-") {
	case "load-device":
		return log.OperationLoadDevice, nil
	case "save-device":
		return log.OperationSaveDevice, nil
	case "load-file":
		return log.OperationLoadFile, nil
	case "save-file":
		return log.OperationSaveFile, nil
	case "edit":
		return log.OperationEdit, nil
	default:
		return 0, fmt.Errorf("invalid operation: %s (must be load-device, save-device, load-file, save-file, or edit)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if !filter.Matches(event) {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
