package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
)

// ErrProtocolUnset is returned when saving a configuration without a protocol.
var ErrProtocolUnset = errors.New("cannot save: no protocol selected")

// FileError reports a file that could not be read, written or parsed.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s config file: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s config file %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Filesystem is the file access used by Store.
type Filesystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFilesystem reads and writes the local filesystem.
type OSFilesystem struct{}

// ReadFile reads the whole file.
func (OSFilesystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile creates the parent directory if needed and replaces the file.
func (OSFilesystem) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Store loads and saves configurations at one path. The format follows the
// file extension.
type Store struct {
	mu     sync.Mutex
	path   string
	format Format
	fs     Filesystem
}

// NewStore creates a store for path. A nil fs uses OSFilesystem.
func NewStore(path string, fs Filesystem) *Store {
	if fs == nil {
		fs = OSFilesystem{}
	}
	return &Store{path: path, format: FormatForPath(path), fs: fs}
}

// Path returns the file path.
func (s *Store) Path() string { return s.path }

// Format returns the file format.
func (s *Store) Format() Format { return s.format }

// Load reads the file onto cfg. Read and structural errors are returned as
// *FileError and leave cfg unchanged.
func (s *Store) Load(cfg *model.Config) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return Result{}, &FileError{Op: "read", Path: s.path, Err: err}
	}

	res, err := UnmarshalFormat(data, s.format, cfg)
	if err != nil {
		var fe *FileError
		if errors.As(err, &fe) {
			fe.Path = s.path
		}
		return Result{}, err
	}
	return res, nil
}

// Save writes cfg to the file. A configuration without a protocol is refused.
func (s *Store) Save(cfg model.Config) error {
	if !cfg.Protocol.IsSet() {
		return ErrProtocolUnset
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := MarshalFormat(cfg, s.format)
	if err != nil {
		return &FileError{Op: "encode", Path: s.path, Err: err}
	}
	if err := s.fs.WriteFile(s.path, data); err != nil {
		return &FileError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
