package model

import "strconv"

// AvailableChannels returns the channels that can be offered for the input,
// in ascending order: disabled, every channel not held by another input, and
// the input's current channel even if another input also holds it.
func (c Config) AvailableChannels(in Input) []Channel {
	taken := make(map[Channel]bool, MaxChannel)
	for i, v := range c.channels {
		if Input(i) != in && v.Enabled() {
			taken[v] = true
		}
	}

	current := c.Channel(in)
	out := []Channel{ChannelDisabled}
	for ch := Channel(1); ch <= MaxChannel; ch++ {
		if !taken[ch] || ch == current {
			out = append(out, ch)
		}
	}
	return out
}

// Assign maps the input to ch. Disabling always succeeds. A channel held by a
// different input is rejected with a *ConflictError and the configuration is
// left unchanged; the holder is never reassigned implicitly.
func (c *Config) Assign(in Input, ch Channel) error {
	if !in.Valid() {
		return &ValidationError{Field: "input", Value: in.Key(), Reason: "unknown input"}
	}
	if !ch.Valid() {
		return &ValidationError{Field: in.Key(), Value: strconv.Itoa(int(ch)), Reason: "channel must be 0-16"}
	}
	if holder, ok := c.Holder(ch, in); ok {
		return &ConflictError{Input: in, Channel: ch, Holder: holder}
	}
	c.channels[in] = ch
	return nil
}

// Clear disables the input.
func (c *Config) Clear(in Input) error {
	return c.Assign(in, ChannelDisabled)
}
