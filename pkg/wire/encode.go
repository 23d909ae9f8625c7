package wire

import "github.com/stayzeef/rc-gamepad-configurator/pkg/model"

// SaveCommandCount is the length of a full save sequence.
const SaveCommandCount = 1 + model.NumInputs + 1

// Encode returns the ordered commands that write cfg to the dongle and commit
// it. The debug protocol is encoded like any other; keeping it off the wire is
// the caller's job.
func Encode(cfg model.Config) []Command {
	cmds := make([]Command, 0, SaveCommandCount)
	cmds = append(cmds, SetProtocol(cfg.Protocol))
	for _, in := range model.AllInputs() {
		cmds = append(cmds, SetChannel(in, cfg.Channel(in)))
	}
	return append(cmds, Save())
}

// Lines renders commands as text lines without terminators.
func Lines(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.String()
	}
	return out
}
