package vtkxml

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-vtkxml/internal/patch"
)

// Config holds file-level settings for decoding and printing documents.
type Config struct {
	// ChunkSize is the number of bytes read from the input at a time.
	ChunkSize int `yaml:"chunk_size"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// MaxPrintedValues limits how many values of each array are printed;
	// 0 prints all of them.
	MaxPrintedValues int `yaml:"max_printed_values"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:        patch.DefaultChunkSize,
		LogLevel:         "info",
		MaxPrintedValues: 0,
	}
}

// LoadConfig reads a YAML configuration file. Fields absent from the file
// keep their defaults; unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(b)) > 0 {
		return cfg, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return errors.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.MaxPrintedValues < 0 {
		return errors.Errorf("max_printed_values must not be negative, got %d", c.MaxPrintedValues)
	}
	return nil
}
