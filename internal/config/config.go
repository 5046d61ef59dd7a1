// Package config loads the refctl configuration file.
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/rawbytedev/cref"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Format   string
	Encoding string
	Log      LogConfig
	Memory   MemoryConfig
}

type LogConfig struct {
	Level     string
	NoColor   bool
	Timestamp bool
}

type MemoryConfig struct {
	MaxZeroScan int
}

func Default() Config {
	return Config{
		Format:   FormatText,
		Encoding: cref.DefaultEncoding,
		Log:      LogConfig{Level: "info"},
		Memory:   MemoryConfig{MaxZeroScan: cref.DefaultMaxZeroScan},
	}
}

type fileConfig struct {
	Format   string `toml:"format"`
	Encoding string `toml:"encoding"`
	Log      struct {
		Level     string `toml:"level"`
		NoColor   bool   `toml:"no_color"`
		Timestamp bool   `toml:"timestamp"`
	} `toml:"log"`
	Memory struct {
		MaxZeroScan int `toml:"max_zero_scan"`
	} `toml:"memory"`
}

// Load overlays the keys present in the file at path onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("encoding") {
		cfg.Encoding = strings.TrimSpace(raw.Encoding)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("memory", "max_zero_scan") {
		cfg.Memory.MaxZeroScan = raw.Memory.MaxZeroScan
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return errors.Wrapf(ErrInvalidConfig, "format %q", c.Format)
	}
	if _, err := cref.ByteLength("", c.Encoding); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "encoding %q", c.Encoding)
	}
	if c.Memory.MaxZeroScan <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "memory.max_zero_scan must be positive, got %d", c.Memory.MaxZeroScan)
	}
	return nil
}

func (c Config) Options() cref.Options {
	return cref.Options{MaxZeroScan: c.Memory.MaxZeroScan}
}

// Apply pushes the library options into cref.
func (c Config) Apply() {
	cref.Configure(c.Options())
}
