package simulator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/transport"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/wire"
)

// Name is reported as the transport name.
const Name = "simulator"

// Options controls fault injection.
type Options struct {
	// RejectAt makes the Nth received command (1-based, counted across the
	// lifetime of the dongle) answer with an error. Zero disables it.
	RejectAt int

	// Busy makes Open fail as if another program held the port.
	Busy bool

	// Silent makes the dongle swallow commands without answering.
	Silent bool

	// ChunkSize bounds each read, so responses arrive in several chunks.
	// Zero means 64 bytes.
	ChunkSize int
}

// Dongle is an in-memory dongle in configuration mode.
type Dongle struct {
	opts Options

	mu       sync.Mutex
	open     bool
	working  model.Config
	eeprom   model.Config
	input    []byte
	output   bytes.Buffer
	received []string
}

// New creates a dongle whose EEPROM holds cfg.
func New(cfg model.Config, opts Options) *Dongle {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 64
	}
	return &Dongle{opts: opts, working: cfg, eeprom: cfg}
}

// DefaultConfig returns the configuration the firmware generates on first
// boot or on the "default" command.
func DefaultConfig() model.Config {
	cfg := model.NewConfig()
	cfg.Protocol = model.ProtocolIBUS
	_ = cfg.Set(model.InputXAxis, 1)
	_ = cfg.Set(model.InputYAxis, 2)
	_ = cfg.Set(model.InputRyAxis, 3)
	_ = cfg.Set(model.InputRxAxis, 4)
	_ = cfg.Set(model.InputRzAxis, 7)
	for i, ch := range []model.Channel{5, 6, 8} {
		b, _ := model.Button(i + 1)
		_ = cfg.Set(b, ch)
	}
	return cfg
}

// Name returns the transport name.
func (d *Dongle) Name() string { return Name }

// Open claims the simulated port.
func (d *Dongle) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.opts.Busy || d.open {
		return &transport.PortError{Op: "open", Port: Name, Err: transport.ErrPortBusy}
	}
	d.open = true
	return nil
}

// Close releases the port. Unread output and partial input are discarded.
func (d *Dongle) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.open = false
	d.input = nil
	d.output.Reset()
	return nil
}

// Write feeds bytes to the command parser. Complete lines are executed
// immediately.
func (d *Dongle) Write(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return &transport.PortError{Op: "write", Port: Name, Err: transport.ErrPortClosed}
	}
	d.input = append(d.input, data...)
	for {
		i := bytes.IndexByte(d.input, '\n')
		if i < 0 {
			return nil
		}
		line := strings.TrimSpace(string(d.input[:i]))
		d.input = d.input[i+1:]
		if line != "" {
			d.handle(line)
		}
	}
}

// WaitAndReadAvailable returns the next chunk of pending output, or an empty
// chunk right away when nothing is pending.
func (d *Dongle) WaitAndReadAvailable(_ time.Duration) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return nil, &transport.PortError{Op: "read", Port: Name, Err: transport.ErrPortClosed}
	}
	n := min(d.output.Len(), d.opts.ChunkSize)
	if n == 0 {
		return nil, nil
	}
	return append([]byte(nil), d.output.Next(n)...), nil
}

// Received returns the command lines received so far.
func (d *Dongle) Received() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.received...)
}

// Working returns the in-memory configuration.
func (d *Dongle) Working() model.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.working
}

// Stored returns the configuration last saved to EEPROM.
func (d *Dongle) Stored() model.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eeprom
}

func (d *Dongle) println(format string, args ...any) {
	fmt.Fprintf(&d.output, format+"\n", args...)
}

func (d *Dongle) handle(line string) {
	d.received = append(d.received, line)
	if d.opts.Silent {
		return
	}

	d.println("RX: %s", line)
	if d.opts.RejectAt > 0 && len(d.received) == d.opts.RejectAt {
		d.println("ERROR: Simulated failure.")
		return
	}

	cmd, args, _ := wire.ParseCommand(line)
	switch cmd.Verb {
	case wire.VerbHelp:
		d.printHelp()
	case wire.VerbConfig:
		d.output.WriteString(wire.FormatConfig(d.working))
	case wire.VerbTest:
		d.println("TEST: Serial communication is working.")
	case wire.VerbClear:
		d.println("Clearing all channel mappings.")
		d.working.Reset()
		d.working.Protocol = model.ProtocolIBUS
		d.println("Configuration cleared to defaults.")
	case wire.VerbDefault:
		d.println("Generating default configuration...")
		d.working = DefaultConfig()
		d.eeprom = d.working
		d.println("Default configuration generated and saved.")
	case wire.VerbReboot:
		d.println("Rebooting system...")
		d.working = d.eeprom
	case wire.VerbSave:
		d.println("Saving configuration to EEPROM...")
		d.eeprom = d.working
		d.println("Configuration saved to EEPROM.")
	case wire.VerbSet:
		d.handleSet(args)
	default:
		d.println("ERROR: Unknown command.")
		d.println("Type 'help' for a list of commands.")
	}
}

func (d *Dongle) handleSet(args []string) {
	if len(args) != 2 {
		d.println("ERROR: Set command requires exactly one control and one value.")
		d.println("Usage: set <control> <value>")
		return
	}
	control := strings.ToLower(args[0])
	value := args[1]

	if control == wire.ProtocolKey {
		p, err := model.ParseProtocol(value)
		if err != nil || !p.Transmits() {
			d.println("ERROR: Invalid protocol %s. Valid: ibus, sbus, crsf, dsmx, dsm2, fport, ppm", value)
			return
		}
		d.working.Protocol = p
		d.println("SET: protocol = %s", p)
		d.println("Configuration updated in memory. Use 'save' command to write to EEPROM.")
		return
	}

	// The firmware converts with toInt, which yields 0 for non-numeric text.
	n, err := strconv.Atoi(value)
	if err != nil {
		n = 0
	}
	ch, err := model.ChannelFromInt(control, n)
	if err != nil {
		d.println("ERROR: Invalid channel %s for %s. Must be 0-16.", value, control)
		return
	}
	in, ok := model.LookupInput(control)
	if !ok {
		d.println("ERROR: Unknown control %s.", control)
		return
	}
	_ = d.working.Set(in, ch)
	d.println("SET: %s = %d", control, ch)
	d.println("Configuration updated in memory. Use 'save' command to write to EEPROM.")
}

func (d *Dongle) printHelp() {
	d.output.WriteString(`
=== RC Gamepad Dongle Help ===
*** CONFIG MODE ***

Commands:
help, config, test, clear, default, save, reboot
set <control> <channel>
set protocol <protocol>
Protocols: ibus, sbus, crsf, dsmx
          dsm2, fport, ppm
Controls: x_axis y_axis z_axis
          rx_axis ry_axis rz_axis
          rudder throttle accelerator
          brake steering
          button_1..32 hat_switch_1 hat_switch_2
Channels: 1-16, 0=disable
=============================================

`)
}

// Compile-time interface satisfaction check.
var _ transport.Transport = (*Dongle)(nil)
