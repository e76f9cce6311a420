package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownFileFormat reports a config file whose extension is not recognized.
var ErrUnknownFileFormat = errors.New("unknown config file format")

// FileFormat is the serialization of a config file.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatJSON FileFormat = "json"
	FileFormatTOML FileFormat = "toml"
)

// FileFormatForPath picks the format from a file extension. Extensionless
// rc files are read as JSON, as eslint does.
func FileFormatForPath(path string) (FileFormat, error) {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		ext = ""
	}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return FileFormatYAML, nil
	case ".json", "":
		return FileFormatJSON, nil
	case ".toml":
		return FileFormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFileFormat, path)
}

// Decode parses data in the given format.
func Decode(format FileFormat, data []byte) (*Config, error) {
	switch format {
	case FileFormatYAML:
		return FromYAML(data)
	case FileFormatJSON:
		return FromJSON(data)
	case FileFormatTOML:
		return FromTOML(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFileFormat, format)
}

// FromJSON parses a configuration from JSON bytes.
func FromJSON(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	cfg.ensureMaps()
	return cfg, nil
}

// ToJSON serializes the configuration as indented JSON.
func (c *Config) ToJSON() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return append(data, '\n'), nil
}

// FromTOML parses a configuration from TOML bytes.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	cfg.ensureMaps()
	return cfg, nil
}
