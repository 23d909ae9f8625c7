package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/session"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/transport"
)

// Config holds the tool settings. Values come from the optional YAML file
// given with -config and are overridden by flags set on the command line.
type Config struct {
	Port     string         `yaml:"port"`
	Baud     int            `yaml:"baud"`
	Simulate bool           `yaml:"simulate"`
	LogLevel string         `yaml:"log_level"`
	EventLog string         `yaml:"event_log"`
	Timing   session.Timing `yaml:"timing"`
}

// defaultConfig returns the settings used when neither file nor flags set them.
func defaultConfig() Config {
	return Config{
		Baud:     transport.DefaultBaudRate,
		LogLevel: "info",
		Timing:   session.DefaultTiming(),
	}
}

// loadConfigFile overlays the YAML file at path onto cfg. Keys missing from
// the file keep their current values.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tool config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse tool config %s: %w", path, err)
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Baud <= 0 {
		return fmt.Errorf("baud rate must be positive, got %d", cfg.Baud)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", cfg.LogLevel)
	}
	t := cfg.Timing
	if t.Test < 0 || t.Config < 0 || t.Set < 0 || t.Save < 0 || t.Follow < 0 {
		return fmt.Errorf("timing windows must not be negative")
	}
	return nil
}
