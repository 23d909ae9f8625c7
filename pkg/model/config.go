package model

import (
	"sort"
	"strconv"
)

// Config is the in-memory dongle configuration.
// The zero value is a valid configuration with no protocol selected and
// every input disabled.
type Config struct {
	Protocol Protocol

	channels [NumInputs]Channel
}

// NewConfig returns an empty configuration.
func NewConfig() Config {
	return Config{}
}

// Channel returns the channel assigned to the input.
func (c Config) Channel(in Input) Channel {
	if !in.Valid() {
		return ChannelDisabled
	}
	return c.channels[in]
}

// Set stores a channel without checking exclusivity.
// Use Assign for interactive edits.
func (c *Config) Set(in Input, ch Channel) error {
	if !in.Valid() {
		return &ValidationError{Field: "input", Value: in.Key(), Reason: "unknown input"}
	}
	if !ch.Valid() {
		return &ValidationError{Field: in.Key(), Value: strconv.Itoa(int(ch)), Reason: "channel must be 0-16"}
	}
	c.channels[in] = ch
	return nil
}

// Holder returns the first input, in enumeration order, mapped to ch other
// than except. Disabled channels have no holder.
func (c Config) Holder(ch Channel, except Input) (Input, bool) {
	if !ch.Enabled() {
		return 0, false
	}
	for i, v := range c.channels {
		if v == ch && Input(i) != except {
			return Input(i), true
		}
	}
	return 0, false
}

// Enabled returns the inputs with a channel assigned, in enumeration order.
func (c Config) Enabled() []Input {
	var out []Input
	for i, v := range c.channels {
		if v.Enabled() {
			out = append(out, Input(i))
		}
	}
	return out
}

// Duplicates returns every enabled channel held by more than one input,
// mapped to its holders in enumeration order.
func (c Config) Duplicates() map[Channel][]Input {
	holders := make(map[Channel][]Input)
	for i, v := range c.channels {
		if v.Enabled() {
			holders[v] = append(holders[v], Input(i))
		}
	}
	for ch, ins := range holders {
		if len(ins) < 2 {
			delete(holders, ch)
		}
	}
	return holders
}

// DuplicateChannels returns the keys of Duplicates in ascending order.
func (c Config) DuplicateChannels() []Channel {
	dups := c.Duplicates()
	out := make([]Channel, 0, len(dups))
	for ch := range dups {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Reset disables every input. The protocol is kept.
func (c *Config) Reset() {
	c.channels = [NumInputs]Channel{}
}

// Equal reports whether both configurations hold the same protocol and
// assignments.
func (c Config) Equal(other Config) bool {
	return c == other
}
