package types

import (
	"errors"
	"path/filepath"
)

// Config holds backend selection and parameters for opening a Persister.
type Config struct {
	Backend         string `json:"backend" yaml:"backend"`
	Format          string `json:"format" yaml:"format"`
	DataDir         string `json:"data_dir" yaml:"data_dir"`
	File            string `json:"file" yaml:"file"`
	DefaultCategory string `json:"default_category" yaml:"default_category"`
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Supported flat-file formats for BackendFile.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrFormatUnknown  = errors.New("unknown file format")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendSQLite: true,
}

// knownFormats lists the flat-file formats that Validate accepts.
var knownFormats = map[string]bool{
	FormatJSON:  true,
	FormatJSONL: true,
	FormatYAML:  true,
}

// Validate checks that the Config is well-formed. An empty Format is valid
// and means FormatJSON.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendFile && c.Format != "" && !knownFormats[c.Format] {
		return ErrFormatUnknown
	}
	return nil
}

// EffectiveFormat returns the configured format or FormatJSON when unset.
func (c Config) EffectiveFormat() string {
	if c.Format == "" {
		return FormatJSON
	}
	return c.Format
}

// FileName returns the task file name, deriving it from the backend and
// format when File is unset.
func (c Config) FileName() string {
	if c.File != "" {
		return c.File
	}
	if c.Backend == BackendSQLite {
		return "tasks.db"
	}
	return "tasks." + c.EffectiveFormat()
}

// Path returns the full path of the task file inside DataDir. An absolute
// File is returned unchanged.
func (c Config) Path() string {
	name := c.FileName()
	if filepath.IsAbs(name) {
		return name
	}
	dir := c.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}
