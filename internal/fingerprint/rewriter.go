package fingerprint

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/leapstack-labs/hashassets/internal/classify"
	"github.com/leapstack-labs/hashassets/internal/diff"
)

// FileLister enumerates the files of an output tree.
type FileLister interface {
	Files(root string) ([]string, error)
}

// RewriteStats counts what a rewrite pass did across the tree.
type RewriteStats struct {
	Scanned      int
	Binary       int
	Skipped      int
	Rewritten    int
	Replacements int
	BytesRead    int64
}

// Rewriter substitutes renamed asset names in every text file under a root.
type Rewriter struct {
	root       string
	lister     FileLister
	classifier classify.Classifier
	logger     *slog.Logger
	diffOut    io.Writer
}

// NewRewriter creates a rewriter. A nil classifier uses classify.Default.
// When diffOut is non-nil a unified diff of each rewritten file is written to it.
func NewRewriter(root string, lister FileLister, classifier classify.Classifier, logger *slog.Logger, diffOut io.Writer) *Rewriter {
	if classifier == nil {
		classifier = classify.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Rewriter{
		root:       root,
		lister:     lister,
		classifier: classifier,
		logger:     logger,
		diffOut:    diffOut,
	}
}

// Rewrite applies m to every text file in the tree and reports how many
// files changed. Failing to enumerate the root is returned as ErrTreeScan;
// per-file read, decode, and write failures are logged and skipped.
func (w *Rewriter) Rewrite(m *Mapping) (RewriteStats, error) {
	var stats RewriteStats
	if m.Len() == 0 {
		return stats, nil
	}

	files, err := w.lister.Files(w.root)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrTreeScan, err)
	}

	pairs := m.Pairs()
	for _, path := range files {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from scanning the output tree
		if err != nil {
			w.logger.Warn("failed to read file", "path", path, "error", err.Error())
			stats.Skipped++
			continue
		}
		stats.Scanned++
		stats.BytesRead += int64(len(data))

		if w.classifier.IsBinary(data) {
			stats.Binary++
			continue
		}
		if !utf8.Valid(data) {
			w.logger.Warn("skipping file that is not valid UTF-8", "path", path)
			stats.Skipped++
			continue
		}

		updated, count := Substitute(data, pairs)
		if count == 0 || bytes.Equal(updated, data) {
			continue
		}

		if err := writeFileAtomic(path, updated); err != nil {
			w.logger.Warn("failed to write file", "path", path, "error", err.Error())
			stats.Skipped++
			continue
		}

		stats.Rewritten++
		stats.Replacements += count
		w.logger.Info("rewrote references", "path", path, "replacements", count)
		w.writeDiff(path, data, updated)
	}

	return stats, nil
}

// Substitute replaces every occurrence of each pair's old name with its new
// name, in pair order, and returns the result with the replacement count.
func Substitute(data []byte, pairs []Pair) ([]byte, int) {
	total := 0
	for _, p := range pairs {
		old := []byte(p.Old)
		n := bytes.Count(data, old)
		if n == 0 {
			continue
		}
		data = bytes.ReplaceAll(data, old, []byte(p.New))
		total += n
	}
	return data, total
}

func (w *Rewriter) writeDiff(path string, before, after []byte) {
	if w.diffOut == nil {
		return
	}
	name := path
	if rel, err := filepath.Rel(w.root, path); err == nil {
		name = filepath.ToSlash(rel)
	}
	patch, err := diff.Unified(name, before, after, 0)
	if err != nil {
		w.logger.Debug("failed to render diff", "path", path, "error", err.Error())
		return
	}
	_, _ = io.WriteString(w.diffOut, patch)
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so a failed write leaves the original content in place.
func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to set mode on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
