// Package session drives request/response exchanges with the dongle.
//
// A Session owns a transport for the duration of one operation. Every
// operation opens the transport, exchanges commands strictly one at a time,
// and closes the transport on every exit path:
//
//   - RunLoad flushes stale output with "test", reads the configuration with
//     "config" and decodes it onto a base configuration.
//   - RunSave sends the 47-command save sequence and aborts at the first
//     response that carries "ERROR:". Commands already applied stay applied
//     on the device; nothing is rolled back or retried.
//
// A save with the debug protocol performs no I/O and only reports the
// commands that would have been sent.
//
// Sessions are synchronous: each exchange blocks for its read windows and
// cannot be cancelled. Overlapping operations on one session fail with
// ErrSessionBusy.
package session
