package model

import (
	"strconv"
	"strings"
)

// Channel is a receiver output slot. Zero disables the input.
type Channel uint8

const (
	// ChannelDisabled leaves the input unmapped.
	ChannelDisabled Channel = 0
	// MaxChannel is the highest receiver channel.
	MaxChannel Channel = 16
)

// Valid reports whether the channel is within [0, MaxChannel].
func (c Channel) Valid() bool {
	return c <= MaxChannel
}

// Enabled reports whether the channel maps to a receiver output.
func (c Channel) Enabled() bool {
	return c != ChannelDisabled && c.Valid()
}

// String returns "disabled" or "channel N".
func (c Channel) String() string {
	if c == ChannelDisabled {
		return "disabled"
	}
	return "channel " + strconv.Itoa(int(c))
}

// ChannelFromInt range-checks an integer channel number.
func ChannelFromInt(field string, n int) (Channel, error) {
	if n < 0 || n > int(MaxChannel) {
		return 0, &ValidationError{Field: field, Value: strconv.Itoa(n), Reason: "channel must be 0-16"}
	}
	return Channel(n), nil
}

// ParseChannel parses a decimal channel number for the named field.
func ParseChannel(field, s string) (Channel, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: field, Value: s, Reason: "not an integer"}
	}
	return ChannelFromInt(field, n)
}
