// Package config loads the optional .ember.toml project file: a plain
// struct with toml tags, decoded with BurntSushi/toml, where a missing
// file is not an error.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the fields .ember.toml may set.
type Config struct {
	Color       string `toml:"color"`        // "auto" | "on" | "off"
	HistoryFile string `toml:"history_file"` // REPL line history path
	NativesRoot string `toml:"natives_root"`  // base dir for readFile() paths
	MaxReadKB   int64  `toml:"max_read_kb"`   // readFile() size cap, in KiB
}

// Default returns the configuration used when no .ember.toml is found.
func Default() Config {
	return Config{Color: "auto"}
}

// EnvVar names the environment variable that overrides the default
// config file location.
const EnvVar = "EMBER_CONFIG"

// Path resolves the config file to load: $EMBER_CONFIG if set, else
// ".ember.toml" in the working directory.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvVar)); p != "" {
		return p
	}
	return ".ember.toml"
}

// Load reads and decodes the config file at Path(). A missing file is
// not an error; Load returns Default() instead.
func Load() (Config, error) {
	cfg := Default()
	path := Path()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	return cfg, nil
}

// MaxReadBytes converts MaxReadKB to bytes, or 0 when unset (the VM
// falls back to its own default in that case).
func (c Config) MaxReadBytes() int64 {
	if c.MaxReadKB <= 0 {
		return 0
	}
	return c.MaxReadKB * 1024
}
