package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Warning describes a field that was skipped while reading a device response
// or a file. Line is 1-based and zero when the source has no lines.
type Warning struct {
	Line   int
	Key    string
	Value  string
	Reason string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q: %s", w.Line, w.Key, w.Value, w.Reason)
	}
	return fmt.Sprintf("%s: %q: %s", w.Key, w.Value, w.Reason)
}

// DuplicateWarnings describes every channel held by more than one input, in
// channel order.
func (c Config) DuplicateWarnings() []Warning {
	dups := c.Duplicates()
	var out []Warning
	for _, ch := range c.DuplicateChannels() {
		keys := make([]string, len(dups[ch]))
		for i, in := range dups[ch] {
			keys[i] = in.Key()
		}
		out = append(out, Warning{
			Value:  strconv.Itoa(int(ch)),
			Reason: ch.String() + " is assigned to " + strings.Join(keys, ", "),
		})
	}
	return out
}
