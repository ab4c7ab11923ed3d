package fingerprint

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/leapstack-labs/hashassets/internal/classify"
	"github.com/leapstack-labs/hashassets/internal/scan"
)

// MaxIterations bounds the rename/rewrite rounds of a single run.
const MaxIterations = 10

// Options configures a Driver.
type Options struct {
	// Root is the output tree whose text files are rewritten.
	Root string
	// AssetsDir is the directory holding renamable assets, relative to Root
	// unless absolute. It must lie inside Root.
	AssetsDir string
	// Extensions is the whitelist of renamable extensions, each with its leading dot.
	Extensions []string
	// Hasher names renamed assets. Required.
	Hasher Hasher
	// Classifier detects binary files (optional, uses classify.Default if nil).
	Classifier classify.Classifier
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
	// DiffOut receives unified diffs of rewritten files (optional).
	DiffOut io.Writer
}

// Result summarises a run.
type Result struct {
	// Iterations is the number of rename passes performed.
	Iterations int
	Renamed    int
	Rewritten  int
	BytesRead  int64
}

type renamePhase interface {
	Rename() (*Mapping, RenameStats, error)
}

type rewritePhase interface {
	Rewrite(m *Mapping) (RewriteStats, error)
}

// Driver repeats rename and rewrite passes until the tree reaches a fixed point.
type Driver struct {
	renamer  renamePhase
	rewriter rewritePhase
	logger   *slog.Logger
}

// New validates opts and creates a driver.
func New(opts Options) (*Driver, error) {
	if opts.Root == "" {
		return nil, errors.New("root directory is required")
	}
	if opts.Hasher == nil {
		return nil, errors.New("hasher is required")
	}
	if len(opts.Extensions) == 0 {
		return nil, errors.New("at least one extension is required")
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", opts.Root, err)
	}
	assetsDir, err := ResolveAssetsDir(root, opts.AssetsDir)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing driver", "root", root, "assets_dir", assetsDir, "extensions", opts.Extensions)

	return &Driver{
		renamer:  NewRenamer(assetsDir, opts.Extensions, opts.Hasher, logger),
		rewriter: NewRewriter(root, scan.NewScanner(logger), opts.Classifier, logger, opts.DiffOut),
		logger:   logger,
	}, nil
}

// ResolveAssetsDir joins assetsDir onto root unless it is absolute and
// checks that the result stays inside root.
func ResolveAssetsDir(root, assetsDir string) (string, error) {
	dir := assetsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	dir = filepath.Clean(dir)

	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("assets directory %s is outside root %s", dir, root)
	}
	return dir, nil
}

// Run alternates rename and rewrite passes until a pass renames nothing or
// rewrites nothing. It fails when the asset directory or tree root cannot be
// listed, or when MaxIterations passes still leave changes behind.
func (d *Driver) Run() (Result, error) {
	var result Result

	iteration := 1
	for {
		result.Iterations = iteration
		d.logger.Debug("starting iteration", "iteration", iteration)

		mapping, renameStats, err := d.renamer.Rename()
		if err != nil {
			return result, err
		}
		result.Renamed += mapping.Len()

		if mapping.Len() == 0 {
			d.logger.Info("assets converged",
				"iteration", iteration,
				"canonical", renameStats.Canonical,
				"skipped", renameStats.Skipped)
			d.logSummary(result)
			return result, nil
		}

		rewriteStats, err := d.rewriter.Rewrite(mapping)
		if err != nil {
			return result, err
		}
		result.Rewritten += rewriteStats.Rewritten
		result.BytesRead += rewriteStats.BytesRead

		d.logger.Info("iteration complete",
			"iteration", iteration,
			"renamed", mapping.Len(),
			"rewritten", rewriteStats.Rewritten,
			"skipped", renameStats.Skipped+rewriteStats.Skipped)

		if rewriteStats.Rewritten == 0 {
			d.logSummary(result)
			return result, nil
		}

		iteration++
		if iteration > MaxIterations {
			d.logger.Error("no fixed point reached", "iterations", MaxIterations)
			return result, fmt.Errorf("%w: still changing after %d iterations", ErrIterationCeiling, MaxIterations)
		}
	}
}

func (d *Driver) logSummary(result Result) {
	d.logger.Info("fingerprinting finished",
		"iterations", result.Iterations,
		"renamed", result.Renamed,
		"rewritten", result.Rewritten,
		"read", humanize.Bytes(uint64(result.BytesRead))) //nolint:gosec // G115: BytesRead is never negative
}
