// Command rcconf configures the channel mapping of an RC gamepad dongle.
//
// It reads and writes the dongle configuration over a serial port, edits
// configuration files and offers an interactive shell.
//
// Usage:
//
//	rcconf [flags] <command> [args]
//
// Flags:
//
//	-port string       Serial port of the dongle (e.g. /dev/ttyACM0, COM3)
//	-baud int          Baud rate (default 115200)
//	-simulate          Talk to a built-in simulated dongle instead of a port
//	-config string     Tool configuration file (YAML)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-event-log string  Write the event stream to a .rlog file
//
// Examples:
//
//	# Read the dongle configuration into a file
//	rcconf -port /dev/ttyACM0 load -o gamepad.json
//
//	# Map the throttle to channel 3 and write the file to the dongle
//	rcconf set gamepad.json throttle 3
//	rcconf -port /dev/ttyACM0 save gamepad.json
//
//	# Edit interactively against the simulator
//	rcconf -simulate shell
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/stayzeef/rc-gamepad-configurator/cmd/rcconf/commands"
	"github.com/stayzeef/rc-gamepad-configurator/cmd/rcconf/interactive"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/configurator"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/simulator"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/transport"
)

const usage = `rcconf - RC gamepad dongle configurator

Usage:
  rcconf [flags] <command> [args]

Commands:
  load [-o file]              Read the dongle configuration (optionally save it)
  save <file>                 Write a configuration file to the dongle
  show <file>                 Print a configuration file
  set <file> <input> <ch>     Map an input to a channel in a file
  clear <file> <input>|all    Disable one input or every input in a file
  protocol <file> <name>      Select the protocol in a file
  export <src> <dst>          Convert a configuration file (.json, .yaml)
  shell                       Start the interactive shell

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rcconf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	cfg := defaultConfig()
	configFile := fs.String("config", "", "Tool configuration file (YAML)")
	port := fs.String("port", "", "Serial port of the dongle")
	baud := fs.Int("baud", cfg.Baud, "Baud rate")
	simulate := fs.Bool("simulate", false, "Use the built-in simulated dongle")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	eventLog := fs.String("event-log", "", "Write the event stream to a .rlog file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *configFile != "" {
		if err := loadConfigFile(*configFile, &cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "baud":
			cfg.Baud = *baud
		case "simulate":
			cfg.Simulate = *simulate
		case "log-level":
			cfg.LogLevel = *logLevel
		case "event-log":
			cfg.EventLog = *eventLog
		}
	})

	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	logger := setupLogging(cfg.LogLevel)
	events, closeEvents, err := setupEvents(stdout, cfg.EventLog, logger, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeEvents()

	c := configurator.New(configurator.Config{
		Transport: newTransport(cfg, logger),
		Timing:    cfg.Timing,
		Events:    events,
		Logger:    logger,
	})

	if err := dispatch(c, rest[0], rest[1:], stdout, stderr); err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newTransport(cfg Config, logger *slog.Logger) transport.Transport {
	if cfg.Simulate {
		logger.Debug("using simulated dongle")
		return simulator.New(simulator.DefaultConfig(), simulator.Options{})
	}
	if cfg.Port == "" {
		return nil
	}
	logger.Debug("using serial port", "port", cfg.Port, "baud", cfg.Baud)
	return transport.NewSerial(cfg.Port, cfg.Baud)
}

// errUsage reports that usage help was already printed.
var errUsage = errors.New("usage")

func dispatch(c *configurator.Configurator, cmd string, args []string, stdout, stderr io.Writer) error {
	need := func(n int, form string) error {
		if len(args) != n {
			fmt.Fprintf(stderr, "Usage: rcconf %s\n", form)
			return errUsage
		}
		return nil
	}

	switch cmd {
	case "load":
		fs := flag.NewFlagSet("load", flag.ContinueOnError)
		fs.SetOutput(stderr)
		output := fs.String("o", "", "Also write the configuration to this file")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		return commands.RunLoad(c, *output, stdout)

	case "save":
		if err := need(1, "save <file>"); err != nil {
			return err
		}
		return commands.RunSave(c, args[0], stdout)

	case "show":
		if err := need(1, "show <file>"); err != nil {
			return err
		}
		return commands.RunShow(c, args[0], stdout)

	case "set":
		if err := need(3, "set <file> <input> <channel>"); err != nil {
			return err
		}
		return commands.RunSet(c, args[0], args[1], args[2], stdout)

	case "clear":
		if err := need(2, "clear <file> <input>|all"); err != nil {
			return err
		}
		return commands.RunClear(c, args[0], args[1], stdout)

	case "protocol":
		if err := need(2, "protocol <file> <name>"); err != nil {
			return err
		}
		return commands.RunProtocol(c, args[0], args[1], stdout)

	case "export":
		if err := need(2, "export <src> <dst>"); err != nil {
			return err
		}
		return commands.RunExport(c, args[0], args[1], stdout)

	case "shell":
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
		defer cancel()
		return interactive.New(c, stdout).Run(ctx)

	case "help":
		fmt.Fprint(stdout, usage)
		return nil

	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		return errUsage
	}
}
