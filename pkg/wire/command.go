package wire

import (
	"strconv"
	"strings"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
)

// Verb is the first word of a command line.
type Verb string

const (
	VerbTest    Verb = "test"
	VerbConfig  Verb = "config"
	VerbSet     Verb = "set"
	VerbSave    Verb = "save"
	VerbHelp    Verb = "help"
	VerbClear   Verb = "clear"
	VerbDefault Verb = "default"
	VerbReboot  Verb = "reboot"
)

// ProtocolKey is the set target that selects the RC protocol.
const ProtocolKey = "protocol"

// Command is a single line sent to the dongle.
type Command struct {
	Verb Verb

	// Key and Value are only used by set.
	Key   string
	Value string
}

// Test returns the connectivity check command.
func Test() Command { return Command{Verb: VerbTest} }

// ReadConfig returns the command that dumps the stored configuration.
func ReadConfig() Command { return Command{Verb: VerbConfig} }

// Save returns the command that commits the configuration to EEPROM.
func Save() Command { return Command{Verb: VerbSave} }

// SetProtocol returns "set protocol <name>".
func SetProtocol(p model.Protocol) Command {
	return Command{Verb: VerbSet, Key: ProtocolKey, Value: p.String()}
}

// SetChannel returns "set <key> <channel>".
func SetChannel(in model.Input, ch model.Channel) Command {
	return Command{Verb: VerbSet, Key: in.Key(), Value: strconv.Itoa(int(ch))}
}

// String renders the command line without the terminating newline.
func (c Command) String() string {
	if c.Verb == VerbSet {
		return string(c.Verb) + " " + c.Key + " " + c.Value
	}
	return string(c.Verb)
}

// Line renders the command with its newline terminator.
func (c Command) Line() []byte {
	return []byte(c.String() + "\n")
}

// ParseCommand splits a received command line. Set arguments are returned
// as-is; validating them is up to the receiver. The boolean is false for an
// empty line.
func ParseCommand(line string) (Command, []string, bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return Command{}, nil, false
	}
	cmd := Command{Verb: Verb(strings.ToLower(fields[0]))}
	args := fields[1:]
	if cmd.Verb == VerbSet && len(args) == 2 {
		cmd.Key = strings.ToLower(args[0])
		cmd.Value = strings.ToLower(args[1])
	}
	return cmd, args, true
}
