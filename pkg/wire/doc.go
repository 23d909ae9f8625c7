// Package wire implements the dongle's line-oriented configuration protocol.
//
// The host sends one ASCII command per line and reads back free-form text.
// A full save is the ordered sequence
//
//	set protocol <name>
//	set <input-key> <channel>   (45 times, in model.AllInputs order)
//	save
//
// and a load sends "config", whose answer contains a section introduced by
// the marker line
//
//	=== Current Configuration ===
//
// followed by "KEY: value" lines. Decoding is best-effort: lines outside the
// section, diagnostics echoed by the firmware ("RX:", "ERROR:") and malformed
// fields are skipped, and each rejected field is reported as a warning.
//
// Any response containing "ERROR:" means the device rejected the command.
package wire
