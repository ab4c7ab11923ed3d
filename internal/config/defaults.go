// Package config holds the shared defaults and config file discovery for hashassets.
// It is decoupled from CLI concerns so the watch loop and tests can rely on the
// same values the command line starts from.
package config

import "time"

// Default configuration values.
const (
	DefaultRoot          = "dist"
	DefaultAssetsDir     = "assets"
	DefaultHashAlgorithm = "sha256"
	DefaultHashLength    = 16
	DefaultLogFormat     = "text"
	DefaultWatchDebounce = 200 * time.Millisecond
)

// DefaultExtensions is the whitelist of asset extensions eligible for renaming.
var DefaultExtensions = []string{
	".js", ".mjs", ".css",
	".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".avif", ".ico",
	".woff", ".woff2", ".ttf",
}

// Extensions returns a copy of DefaultExtensions.
func Extensions() []string {
	out := make([]string, len(DefaultExtensions))
	copy(out, DefaultExtensions)
	return out
}
