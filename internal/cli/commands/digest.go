package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewDigestCommand creates the digest command.
func NewDigestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "digest <file>...",
		Short: "Print the fingerprinted name of files",
		Long: `Print the name each file would be renamed to, using the configured hash
algorithm and length. Files are only read.`,
		Example: `  hashassets digest dist/assets/app.js
  hashassets digest --hash-algorithm blake3 dist/assets/*.css`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDigest,
	}
}

func runDigest(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	for _, path := range args {
		data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied path is the point of the command
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%s  %s\n", cc.Hasher.Digest(data), filepath.Ext(path), path)
	}
	return nil
}
