// Package log provides the configurator's event stream.
//
// Every device exchange, state change and decode warning produced by a load
// or save is reported as an Event to a Logger. Presentation layers subscribe
// by supplying a Logger instead of being called back into directly. This is
// separate from operational logging (slog): events form a complete,
// machine-readable trace of what was sent to and received from the dongle.
//
// # Basic Usage
//
//	// Console output while developing
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// Persistent trace for later analysis with rcconf-log
//	fileLogger, _ := log.NewFileLogger("dongle.rlog")
//
//	// A UI reading events from a channel
//	ch := log.NewChanLogger(64)
//	go render(ch.Events())
//
//	// Several at once
//	logger = log.NewMultiLogger(logger, fileLogger, ch)
//
// # Event Types
//
// Events are captured at three layers:
//   - Transport: raw byte chunks and port open/close (FrameEvent, StateChangeEvent)
//   - Wire: commands sent and responses received (MessageEvent)
//   - Engine: operation progress, decode warnings and failures
//     (InfoEvent, WarningEvent, ErrorEventData)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .rlog extension.
package log
