package commands

import (
	"io"
	"log/slog"

	"github.com/leapstack-labs/hashassets/internal/classify"
	"github.com/leapstack-labs/hashassets/internal/cli/config"
	"github.com/leapstack-labs/hashassets/internal/fingerprint"
	"github.com/leapstack-labs/hashassets/internal/hasher"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Hasher *hasher.Hasher
}

// NewCommandContext builds the hasher from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	h, err := hasher.New(cfg.HashAlgorithm, cfg.HashLength)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Hasher: h,
	}, nil
}

// NewDriver creates a fingerprint driver for the configured output tree.
// When diffOut is non-nil, unified diffs of rewritten files are written to it.
func (c *CommandContext) NewDriver(diffOut io.Writer) (*fingerprint.Driver, error) {
	return fingerprint.New(fingerprint.Options{
		Root:       c.Cfg.Root,
		AssetsDir:  c.Cfg.AssetsDir,
		Extensions: c.Cfg.Extensions,
		Hasher:     c.Hasher,
		Classifier: classify.Default(),
		Logger:     c.Logger,
		DiffOut:    diffOut,
	})
}

// diffWriter returns w when diffs were requested, nil otherwise.
func diffWriter(cfg *config.Config, w io.Writer) io.Writer {
	if !cfg.Diff {
		return nil
	}
	return w
}
