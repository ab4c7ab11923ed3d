package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/hashassets/internal/fingerprint"
	"github.com/leapstack-labs/hashassets/internal/hasher"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}

	if _, err := fingerprint.ResolveAssetsDir(c.Root, c.AssetsDir); err != nil {
		return fmt.Errorf("invalid assets_dir: %w", err)
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must list at least one extension")
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid extension %q: extensions must start with '.' (e.g. .js)", ext)
		}
	}

	algorithm, err := hasher.Lookup(c.HashAlgorithm)
	if err != nil {
		return err
	}
	if err := hasher.ValidateLength(algorithm, c.HashLength); err != nil {
		return err
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log_format %q (want %s or %s)", c.LogFormat, LogFormatText, LogFormatJSON)
	}

	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative")
	}

	return nil
}
