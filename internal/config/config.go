// Package config loads crux settings from crux.toml or crux.yaml.
//
// The file format follows the extension: .toml is decoded with
// BurntSushi/toml, .yaml and .yml with yaml.v3. Keys missing from the file
// keep their defaults; command line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// FileNames are searched, in order, by Discover.
var FileNames = []string{"crux.toml", "crux.yaml", "crux.yml"}

var ErrUnsupportedFormat = errors.New("unsupported config format")

type Config struct {
	Extension string       `toml:"extension" yaml:"extension"`
	Color     string       `toml:"color" yaml:"color"`
	LogLevel  string       `toml:"log_level" yaml:"log_level"`
	Tokens    TokensConfig `toml:"tokens" yaml:"tokens"`
}

// TokensConfig holds settings for the tokens command.
type TokensConfig struct {
	Format string `toml:"format" yaml:"format"`
}

func Default() Config {
	return Config{
		Extension: ".crx",
		Color:     "auto",
		LogLevel:  "warn",
		Tokens:    TokensConfig{Format: "table"},
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes data on top of the defaults and validates the result.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Discover returns the first config file from FileNames present in dir.
func Discover(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Validate checks every key and names the first offending one.
func (c Config) Validate() error {
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("config: extension %q must start with a dot", c.Extension)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("config: color must be auto, always or never, got %q", c.Color)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	switch c.Tokens.Format {
	case "table", "yaml", "text":
	default:
		return fmt.Errorf("config: tokens.format must be table, yaml or text, got %q", c.Tokens.Format)
	}
	return nil
}

// Encode writes c as TOML, the format init scaffolds.
func (c Config) Encode() ([]byte, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return []byte(sb.String()), nil
}
