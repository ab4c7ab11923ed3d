package commands

import (
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fingerprint assets and rewrite references",
		Long: `Rename every whitelisted file in the assets directory after its content
digest, then rewrite all references to the old names across the output tree.

Passes repeat until nothing changes. Assets that reference each other may
take several passes; a run that has not settled after 10 passes fails.`,
		Example: `  # Fingerprint ./dist/assets and rewrite references under ./dist
  hashassets run

  # Custom layout
  hashassets run --root public --assets-dir static/js --extensions .js,.css

  # Show what was rewritten
  hashassets run --diff`,
		Aliases: []string{"build"},
		Args:    cobra.NoArgs,
		RunE:    runRun,
	}

	cmd.Flags().Bool("diff", false, "Print a unified diff of every rewritten file")

	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	driver, err := cc.NewDriver(diffWriter(cc.Cfg, cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	_, err = driver.Run()
	return err
}
