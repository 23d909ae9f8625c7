// Package commands implements the rcconf CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/configurator"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/persistence"
)

// ParseInput looks up an input key case-insensitively.
func ParseInput(s string) (model.Input, error) {
	in, ok := model.LookupInput(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return 0, fmt.Errorf("unknown input: %s", s)
	}
	return in, nil
}

// RunLoad reads the dongle configuration and prints it. With output set the
// configuration is also written to that file.
func RunLoad(c *configurator.Configurator, output string, w io.Writer) error {
	if _, err := c.LoadFromDevice(); err != nil {
		return err
	}
	PrintConfig(w, c.Snapshot())
	if output != "" {
		return c.SaveFile(output)
	}
	return nil
}

// RunSave writes the configuration file at path to the dongle.
func RunSave(c *configurator.Configurator, path string, w io.Writer) error {
	if _, err := c.LoadFile(path); err != nil {
		return err
	}
	res, err := c.SaveToDevice()
	if err != nil {
		if res.Sent > 0 {
			fmt.Fprintf(w, "Sent %d/%d commands before the failure; the dongle keeps them in memory until reboot.\n", res.Sent, len(res.Commands))
		}
		return err
	}
	if res.Simulated {
		fmt.Fprintf(w, "Debug protocol: %d commands listed, nothing sent.\n", len(res.Commands))
		return nil
	}
	fmt.Fprintf(w, "Sent %d/%d commands.\n", res.Sent, len(res.Commands))
	return nil
}

// RunShow prints the configuration file at path.
func RunShow(c *configurator.Configurator, path string, w io.Writer) error {
	if _, err := c.LoadFile(path); err != nil {
		return err
	}
	PrintConfig(w, c.Snapshot())
	return nil
}

// RunSet maps an input to a channel in the file at path. A channel held by
// another input is refused.
func RunSet(c *configurator.Configurator, path, input, channel string, w io.Writer) error {
	in, err := ParseInput(input)
	if err != nil {
		return err
	}
	ch, err := model.ParseChannel(in.Key(), channel)
	if err != nil {
		return err
	}
	return editFile(c, path, func() error {
		if err := c.Assign(in, ch); err != nil {
			var conflict *model.ConflictError
			if errors.As(err, &conflict) {
				return fmt.Errorf("%w; clear %s first", err, conflict.Holder.Key())
			}
			return err
		}
		fmt.Fprintf(w, "%s -> %s\n", in.Key(), ch)
		return nil
	})
}

// RunClear disables one input, or every input when input is "all".
func RunClear(c *configurator.Configurator, path, input string, w io.Writer) error {
	if strings.EqualFold(input, "all") {
		return editFile(c, path, func() error {
			c.Reset()
			return nil
		})
	}
	in, err := ParseInput(input)
	if err != nil {
		return err
	}
	return editFile(c, path, func() error {
		if err := c.Clear(in); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s -> %s\n", in.Key(), model.ChannelDisabled)
		return nil
	})
}

// RunProtocol sets the protocol in the file at path. The file need not exist.
func RunProtocol(c *configurator.Configurator, path, name string, w io.Writer) error {
	p, err := model.ParseProtocol(name)
	if err != nil {
		return err
	}
	// Setting the protocol is how a new configuration file starts.
	if _, err := os.Stat(path); err == nil {
		if _, err := c.LoadFile(path); err != nil {
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	c.SetProtocol(p)
	if err := c.SaveFile(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "protocol -> %s\n", p)
	return nil
}

// RunExport copies the configuration in src to dst, converting between
// JSON and YAML by file extension.
func RunExport(c *configurator.Configurator, src, dst string, w io.Writer) error {
	if _, err := c.LoadFile(src); err != nil {
		return err
	}
	if err := c.SaveFile(dst); err != nil {
		return err
	}
	fmt.Fprintf(w, "exported %s -> %s (%s)\n", src, dst, persistence.FormatForPath(dst))
	return nil
}

// editFile loads path, applies edit and writes the result back.
func editFile(c *configurator.Configurator, path string, edit func() error) error {
	if _, err := c.LoadFile(path); err != nil {
		return err
	}
	if err := edit(); err != nil {
		return err
	}
	return c.SaveFile(path)
}
