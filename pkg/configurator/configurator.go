package configurator

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/log"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/persistence"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/session"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/transport"
)

// Config configures a Configurator.
type Config struct {
	// Transport reaches the dongle. Device operations fail with
	// transport.ErrNoPort when it is nil.
	Transport transport.Transport

	// Timing holds the device read windows. Zero fields use the defaults.
	Timing session.Timing

	// Filesystem is used for configuration files. Nil uses the OS.
	Filesystem persistence.Filesystem

	// Events receives the event stream. Nil disables it.
	Events log.Logger

	// Logger is used for operational diagnostics. Nil uses slog.Default().
	Logger *slog.Logger

	// Initial is the starting configuration. The zero value has no
	// protocol and every input disabled.
	Initial model.Config
}

// Configurator owns the working configuration.
type Configurator struct {
	mu      sync.Mutex
	cfg     model.Config
	session *session.Session

	fs     persistence.Filesystem
	events log.Logger
	logger *slog.Logger
	port   string
}

// New creates a configurator.
func New(config Config) *Configurator {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Configurator{
		cfg:    config.Initial,
		fs:     config.Filesystem,
		events: log.OrNoop(config.Events),
		logger: logger,
	}
	if config.Transport != nil {
		c.port = config.Transport.Name()
	}
	c.session = session.New(config.Transport, session.Config{
		Timing: config.Timing,
		Events: config.Events,
		Logger: logger,
	})
	return c
}

// Snapshot returns a copy of the working configuration.
func (c *Configurator) Snapshot() model.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Available returns the channels in can take without a conflict.
func (c *Configurator) Available(in model.Input) []model.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.AvailableChannels(in)
}

// Assign maps in to ch. A channel held by another input is refused with a
// *model.ConflictError and the configuration is unchanged.
func (c *Configurator) Assign(in model.Input, ch model.Channel) error {
	c.mu.Lock()
	old := c.cfg.Channel(in)
	err := c.cfg.Assign(in, ch)
	c.mu.Unlock()

	em := c.emitter(log.OperationEdit)
	if err != nil {
		em.Error(log.LayerEngine, errorKind(err), in.Key(), err)
		return err
	}
	if old != ch {
		em.State(log.LayerEngine, log.StateEntityModel, in.Key()+"="+strconv.Itoa(int(old)), in.Key()+"="+strconv.Itoa(int(ch)), "")
	}
	return nil
}

// Clear disables in.
func (c *Configurator) Clear(in model.Input) error {
	return c.Assign(in, model.ChannelDisabled)
}

// SetProtocol selects the protocol.
func (c *Configurator) SetProtocol(p model.Protocol) {
	c.mu.Lock()
	old := c.cfg.Protocol
	c.cfg.Protocol = p
	c.mu.Unlock()

	if old != p {
		em := c.emitter(log.OperationEdit)
		em.State(log.LayerEngine, log.StateEntityModel, "protocol="+old.String(), "protocol="+p.String(), "")
	}
}

// Reset disables every input and keeps the protocol.
func (c *Configurator) Reset() {
	c.mu.Lock()
	c.cfg.Reset()
	c.mu.Unlock()

	c.emitter(log.OperationEdit).Infof("All channel mappings cleared.")
}

// LoadFromDevice reads the dongle configuration into the working
// configuration. On failure the working configuration is unchanged.
func (c *Configurator) LoadFromDevice() (session.LoadResult, error) {
	res, err := c.session.RunLoad(c.Snapshot())
	if err != nil {
		c.logger.Debug("device load failed", "port", c.port, "error", err)
		return res, err
	}

	c.mu.Lock()
	c.cfg = res.Config
	c.mu.Unlock()
	return res, nil
}

// SaveToDevice writes the working configuration to the dongle and commits
// it. With the debug protocol nothing is sent.
func (c *Configurator) SaveToDevice() (session.SaveResult, error) {
	res, err := c.session.RunSave(c.Snapshot())
	if err != nil {
		c.logger.Debug("device save failed", "port", c.port, "sent", res.Sent, "error", err)
	}
	return res, err
}

// LoadFile reads a configuration file into the working configuration. A
// structural problem leaves the configuration unchanged; bad fields are
// skipped with warning events.
func (c *Configurator) LoadFile(path string) (persistence.Result, error) {
	em := c.emitter(log.OperationLoadFile)
	store := persistence.NewStore(path, c.fs)

	cfg := c.Snapshot()
	res, err := store.Load(&cfg)
	if err != nil {
		em.Error(log.LayerEngine, errorKind(err), path, err)
		return res, err
	}

	for _, w := range res.Warnings {
		em.Warn(w.Line, w.Key, w.Value, w.Reason)
	}
	for _, w := range cfg.DuplicateWarnings() {
		em.Warn(w.Line, w.Key, w.Value, w.Reason)
	}

	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()

	c.logger.Debug("configuration file read", "path", store.Path(), "format", store.Format(), "applied", res.Applied)
	em.Infof("Loaded %d settings from %s.", res.Applied, path)
	return res, nil
}

// SaveFile writes the working configuration to a file. A configuration
// without a protocol is refused with persistence.ErrProtocolUnset.
func (c *Configurator) SaveFile(path string) error {
	em := c.emitter(log.OperationSaveFile)
	store := persistence.NewStore(path, c.fs)

	if err := store.Save(c.Snapshot()); err != nil {
		em.Error(log.LayerEngine, errorKind(err), path, err)
		return err
	}
	c.logger.Debug("configuration file written", "path", store.Path(), "format", store.Format())
	em.Infof("Configuration saved to %s.", path)
	return nil
}

func (c *Configurator) emitter(op log.Operation) *log.Emitter {
	return log.NewEmitter(c.events, op, c.port)
}

// errorKind names the error class for error events.
func errorKind(err error) string {
	var (
		conflict   *model.ConflictError
		validation *model.ValidationError
		file       *persistence.FileError
		port       *transport.PortError
	)
	switch {
	case errors.As(err, &conflict):
		return "conflict"
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &file):
		return "file"
	case errors.As(err, &port):
		return "port"
	case errors.Is(err, persistence.ErrProtocolUnset), errors.Is(err, session.ErrProtocolUnset):
		return "validation"
	default:
		return fmt.Sprintf("%T", err)
	}
}
