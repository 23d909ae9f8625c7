// Package model defines the dongle configuration: the selected RC protocol
// and the mapping of the 45 logical gamepad inputs to receiver channels.
//
// # Channel Exclusivity
//
// A receiver channel (1-16) may drive at most one input. Interactive edits go
// through Config.Assign, which rejects a channel already held by another
// input with a *ConflictError instead of silently moving it:
//
//	cfg := model.NewConfig()
//	_ = cfg.Assign(model.InputXAxis, 3)
//	err := cfg.Assign(model.InputYAxis, 3) // *ConflictError{Holder: x_axis}
//
// Config.Set writes a value without checking exclusivity. Decoders use it
// because the device is the source of truth and may report the same channel
// on two inputs; Config.Duplicates reports such overlaps.
//
// Config is a value type. Assigning it copies the whole mapping, so a copy
// can serve as a snapshot for undo or comparison.
package model
