package model

import "fmt"

// ConflictError is returned by Assign when the requested channel is already
// held by another input. The caller must clear the holder first.
type ConflictError struct {
	Input   Input
	Channel Channel
	Holder  Input
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("channel %d for %s is already assigned to %s", e.Channel, e.Input, e.Holder)
}

// ValidationError reports a value that cannot be stored in the model.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Reason)
}
