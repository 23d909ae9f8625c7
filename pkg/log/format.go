package log

import (
	"fmt"
	"strings"
)

// Format renders the event payload as a single status-log line, the way the
// configurator shows it to a user, e.g. "CMD >> set x_axis 3".
func Format(event Event) string {
	switch {
	case event.Message != nil:
		if event.Message.Type == MessageTypeCommand {
			return "CMD >> " + event.Message.Command
		}
		return "RSP << " + strings.TrimSpace(event.Message.Response)
	case event.Frame != nil:
		return fmt.Sprintf("%s %d bytes", event.Direction, event.Frame.Size)
	case event.StateChange != nil:
		s := fmt.Sprintf("%s %s -> %s", event.StateChange.Entity, event.StateChange.OldState, event.StateChange.NewState)
		if event.StateChange.Reason != "" {
			s += " (" + event.StateChange.Reason + ")"
		}
		return s
	case event.Warning != nil:
		w := event.Warning
		if w.Key == "" {
			return "Warning: " + w.Reason
		}
		if w.Line > 0 {
			return fmt.Sprintf("Warning: line %d: %s %q: %s", w.Line, w.Key, w.Value, w.Reason)
		}
		return fmt.Sprintf("Warning: %s %q: %s", w.Key, w.Value, w.Reason)
	case event.Error != nil:
		if event.Error.Context != "" {
			return fmt.Sprintf("Error: %s: %s", event.Error.Context, event.Error.Message)
		}
		return "Error: " + event.Error.Message
	case event.Info != nil:
		return event.Info.Text
	default:
		return ""
	}
}
