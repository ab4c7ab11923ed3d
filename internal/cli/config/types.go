// Package config provides configuration management for the hashassets CLI.
//
// Values are layered with koanf: built-in defaults, then the project config
// file, then HASHASSETS_* environment variables, then explicitly set flags.
package config

import (
	"time"

	sharedcfg "github.com/leapstack-labs/hashassets/internal/config"
)

// Config holds all CLI configuration options.
type Config struct {
	Root          string        `koanf:"root"`
	AssetsDir     string        `koanf:"assets_dir"`
	Extensions    []string      `koanf:"extensions"`
	HashAlgorithm string        `koanf:"hash_algorithm"`
	HashLength    int           `koanf:"hash_length"`
	Verbose       bool          `koanf:"verbose"`
	LogFormat     string        `koanf:"log_format"`
	Diff          bool          `koanf:"diff"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "HASHASSETS_"

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Root:          sharedcfg.DefaultRoot,
		AssetsDir:     sharedcfg.DefaultAssetsDir,
		Extensions:    sharedcfg.Extensions(),
		HashAlgorithm: sharedcfg.DefaultHashAlgorithm,
		HashLength:    sharedcfg.DefaultHashLength,
		LogFormat:     sharedcfg.DefaultLogFormat,
		WatchDebounce: sharedcfg.DefaultWatchDebounce,
	}
}
