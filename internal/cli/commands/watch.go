package commands

import (
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/hashassets/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Fingerprint again whenever the output tree changes",
		Long: `Run once, then watch the output tree and run again after each burst of
changes, for example when a build tool in watch mode rewrites its output.

A failed run is logged and watching continues. Stop with Ctrl+C.`,
		Example: `  # Watch ./dist
  hashassets watch

  # Wait longer for the build tool to finish writing
  hashassets watch --watch-debounce 1s`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().Bool("diff", false, "Print a unified diff of every rewritten file")
	cmd.Flags().Duration("watch-debounce", 0, "Quiet period after the last change before running (default 200ms)")

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	driver, err := cc.NewDriver(diffWriter(cc.Cfg, cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(cc.Cfg.Root, cc.Cfg.WatchDebounce, func() error {
		_, err := driver.Run()
		return err
	}, cc.Logger)

	return w.Serve(ctx)
}
