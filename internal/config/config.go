// Package config loads the optional YAML configuration file of the pp
// command. Every field is a pointer so unset keys can be told apart from zero
// values; command-line flags override file values.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoConfig reports that no configuration file exists.
var ErrNoConfig = errors.New("no config file")

// EnvPath overrides the configuration file location.
const EnvPath = "PRETTYPRINT_CONFIG_PATH"

// FileConfig is the on-disk YAML configuration shape.
type FileConfig struct {
	Theme         *string  `yaml:"theme"`
	Language      *string  `yaml:"language"`
	Style         *string  `yaml:"style"`
	Tabs          *int     `yaml:"tabs"`
	Wrap          *string  `yaml:"wrap"`
	Color         *string  `yaml:"color"`
	TrueColor     *bool    `yaml:"true_color"`
	ItalicText    *bool    `yaml:"italic_text"`
	Paging        *string  `yaml:"paging"`
	Pager         *string  `yaml:"pager"`
	TerminalWidth *int     `yaml:"terminal_width"`
	MapSyntax     []string `yaml:"map_syntax"`
}

// LoadFile reads a YAML config file from path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Path returns the configuration file location: $PRETTYPRINT_CONFIG_PATH, or
// prettyprint/config.yml under $XDG_CONFIG_HOME or ~/.config.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "prettyprint", "config.yml")
}

// LoadGlobal loads the file at Path. It returns ErrNoConfig when the file does
// not exist.
func LoadGlobal() (FileConfig, error) {
	p := Path()
	if p == "" {
		return FileConfig{}, ErrNoConfig
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileConfig{}, ErrNoConfig
		}
		return FileConfig{}, err
	}
	return LoadFile(p)
}
