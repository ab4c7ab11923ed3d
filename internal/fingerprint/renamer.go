package fingerprint

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Hasher computes the content digest used as an asset's new base name.
type Hasher interface {
	Digest(data []byte) string
}

// RenameStats counts what a rename pass did with each directory entry.
type RenameStats struct {
	Renamed   int
	Canonical int
	Skipped   int
}

// Renamer renames whitelisted files in a single directory after their digest.
type Renamer struct {
	dir        string
	extensions map[string]struct{}
	hasher     Hasher
	logger     *slog.Logger
}

// NewRenamer creates a renamer for dir. Extensions include the leading dot
// and are matched exactly.
func NewRenamer(dir string, extensions []string, hasher Hasher, logger *slog.Logger) *Renamer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[ext] = struct{}{}
	}
	return &Renamer{
		dir:        dir,
		extensions: exts,
		hasher:     hasher,
		logger:     logger,
	}
}

// Rename performs one pass over the asset directory and returns the renames
// that succeeded. Only a failure to list the directory is returned as an
// error; unreadable or unrenamable entries are logged and left out of the
// mapping.
//
// If the target name already exists the rename is still attempted. On POSIX
// systems this replaces the existing file, which holds the same content when
// its name is canonical; where rename refuses to overwrite, the entry is
// skipped like any other rename failure.
func (r *Renamer) Rename() (*Mapping, RenameStats, error) {
	var stats RenameStats

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %s: %w", ErrAssetsDirMissing, r.dir, err)
	}

	mapping := NewMapping()
	for _, entry := range entries {
		oldName := entry.Name()
		ext := filepath.Ext(oldName)
		if _, ok := r.extensions[ext]; !ok {
			continue
		}

		oldPath := filepath.Join(r.dir, oldName)
		if !entry.Type().IsRegular() {
			r.logger.Warn("skipping non-regular asset entry", "path", oldPath)
			stats.Skipped++
			continue
		}

		data, err := os.ReadFile(oldPath) //nolint:gosec // G304: path comes from listing the asset directory
		if err != nil {
			r.logger.Warn("failed to read asset", "path", oldPath, "error", err.Error())
			stats.Skipped++
			continue
		}

		newName := r.hasher.Digest(data) + ext
		if newName == oldName {
			r.logger.Debug("asset already canonical", "name", oldName)
			stats.Canonical++
			continue
		}

		newPath := filepath.Join(r.dir, newName)
		if _, err := os.Lstat(newPath); err == nil {
			r.logger.Warn("rename target already exists, duplicate content", "old", oldName, "new", newName)
		}

		if err := os.Rename(oldPath, newPath); err != nil {
			r.logger.Warn("failed to rename asset", "old", oldName, "new", newName, "error", err.Error())
			stats.Skipped++
			continue
		}

		if err := mapping.Add(oldName, newName); err != nil {
			// Directory listings have unique names; keep the first rename.
			r.logger.Warn("ignoring duplicate rename", "old", oldName, "error", err.Error())
			continue
		}
		stats.Renamed++
		r.logger.Info("renamed asset", "old", oldName, "new", newName)
	}

	return mapping, stats, nil
}
