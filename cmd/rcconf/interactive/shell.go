// Package interactive provides the interactive command-line interface
// for rcconf.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/stayzeef/rc-gamepad-configurator/cmd/rcconf/commands"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/configurator"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
)

// Shell edits one working configuration and moves it between the dongle
// and files.
type Shell struct {
	c   *configurator.Configurator
	out io.Writer
}

// New creates a shell that writes to out until Run takes over the terminal.
func New(c *configurator.Configurator, out io.Writer) *Shell {
	return &Shell{c: c, out: out}
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rcconf> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if !s.Execute(line) {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}

// Execute runs one command line. It returns false when the user asked to quit.
func (s *Shell) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "show", "s":
		commands.PrintConfig(s.out, s.c.Snapshot())

	case "protocol", "p":
		s.cmdProtocol(args)

	case "set":
		s.cmdSet(args)

	case "clear":
		s.cmdClear(args)

	case "available", "avail", "a":
		s.cmdAvailable(args)

	case "load":
		s.report(s.cmdLoad())

	case "save":
		s.report(s.cmdSave())

	case "import":
		s.cmdImport(args)

	case "export":
		s.cmdExport(args)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
RC Dongle Configurator Commands:
  Editing:
    show                    - Show the working configuration
    protocol [name]         - Show or select the protocol
    set <input> <channel>   - Map an input to a channel (0 disables)
    clear <input>|all       - Disable one input or every input
    available <input>       - List the channels an input can take

  Dongle:
    load                    - Read the configuration from the dongle
    save                    - Write the configuration to the dongle

  Files:
    import <file>           - Read a configuration file (.json, .yaml)
    export <file>           - Write the configuration to a file

  General:
    help                    - Show this help
    quit                    - Exit`)
}

// report prints errors that the event stream does not already show.
func (s *Shell) report(err error) {
	if err != nil {
		fmt.Fprintf(s.out, "Failed: %v\n", err)
	}
}

func (s *Shell) cmdProtocol(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Protocol: %s\n", s.c.Snapshot().Protocol)
		names := make([]string, 0, len(model.Protocols()))
		for _, p := range model.Protocols() {
			names = append(names, p.String())
		}
		fmt.Fprintf(s.out, "Available: %s\n", strings.Join(names, ", "))
		return
	}
	p, err := model.ParseProtocol(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.c.SetProtocol(p)
	fmt.Fprintf(s.out, "protocol -> %s\n", p)
}

func (s *Shell) cmdSet(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: set <input> <channel>")
		return
	}
	in, err := commands.ParseInput(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	ch, err := model.ParseChannel(in.Key(), args[1])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if err := s.c.Assign(in, ch); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s -> %s\n", in.Key(), ch)
}

func (s *Shell) cmdClear(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: clear <input>|all")
		return
	}
	if strings.EqualFold(args[0], "all") {
		s.c.Reset()
		return
	}
	in, err := commands.ParseInput(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if err := s.c.Clear(in); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s -> %s\n", in.Key(), model.ChannelDisabled)
}

func (s *Shell) cmdAvailable(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: available <input>")
		return
	}
	in, err := commands.ParseInput(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	commands.PrintChannels(s.out, in, s.c.Available(in))
}

func (s *Shell) cmdLoad() error {
	if _, err := s.c.LoadFromDevice(); err != nil {
		return err
	}
	commands.PrintConfig(s.out, s.c.Snapshot())
	return nil
}

func (s *Shell) cmdSave() error {
	res, err := s.c.SaveToDevice()
	if err != nil {
		return err
	}
	if !res.Simulated {
		fmt.Fprintf(s.out, "Sent %d/%d commands.\n", res.Sent, len(res.Commands))
	}
	return nil
}

func (s *Shell) cmdImport(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: import <file>")
		return
	}
	_, err := s.c.LoadFile(args[0])
	s.report(err)
}

func (s *Shell) cmdExport(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: export <file>")
		return
	}
	s.report(s.c.SaveFile(args[0]))
}

func completer() *readline.PrefixCompleter {
	inputs := make([]readline.PrefixCompleterInterface, 0, model.NumInputs)
	for _, in := range model.AllInputs() {
		inputs = append(inputs, readline.PcItem(in.Key()))
	}
	protocols := make([]readline.PrefixCompleterInterface, 0, len(model.Protocols()))
	for _, p := range model.Protocols() {
		protocols = append(protocols, readline.PcItem(p.String()))
	}
	clearItems := append([]readline.PrefixCompleterInterface{readline.PcItem("all")}, inputs...)

	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("show"),
		readline.PcItem("protocol", protocols...),
		readline.PcItem("set", inputs...),
		readline.PcItem("clear", clearItems...),
		readline.PcItem("available", inputs...),
		readline.PcItem("load"),
		readline.PcItem("save"),
		readline.PcItem("import"),
		readline.PcItem("export"),
		readline.PcItem("quit"),
	)
}
