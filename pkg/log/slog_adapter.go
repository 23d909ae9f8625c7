package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger.
// Warnings and errors are logged at their own levels; everything else at Debug.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Operation != OperationNone {
		attrs = append(attrs, slog.String("operation", event.Operation.String()))
	}
	if event.Port != "" {
		attrs = append(attrs, slog.String("port", event.Port))
	}

	level := slog.LevelDebug
	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		)
	case event.Message != nil:
		attrs = append(attrs,
			slog.String("msg_type", event.Message.Type.String()),
			slog.String("command", event.Message.Command),
		)
		if event.Message.Index > 0 {
			attrs = append(attrs,
				slog.Int("index", event.Message.Index),
				slog.Int("total", event.Message.Total),
			)
		}
		if event.Message.Type == MessageTypeResponse {
			attrs = append(attrs, slog.String("response", event.Message.Response))
		}
		if event.Message.Rejected {
			attrs = append(attrs, slog.Bool("rejected", true))
		}
		if event.Message.Elapsed != nil {
			attrs = append(attrs, slog.Duration("elapsed", *event.Message.Elapsed))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Warning != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("key", event.Warning.Key),
			slog.String("value", event.Warning.Value),
			slog.String("reason", event.Warning.Reason),
		)
		if event.Warning.Line > 0 {
			attrs = append(attrs, slog.Int("line", event.Warning.Line))
		}
	case event.Error != nil:
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_kind", event.Error.Kind),
			slog.String("error_context", event.Error.Context),
		)
	case event.Info != nil:
		level = slog.LevelInfo
		attrs = append(attrs, slog.String("text", event.Info.Text))
	}

	a.logger.LogAttrs(context.Background(), level, "dongle", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
