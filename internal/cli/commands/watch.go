package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
	"github.com/justyntemme/docbrowser/internal/docs"
)

func newWatchCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "List the current directory again whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.store()
			if err != nil {
				return err
			}
			if err := e.browser.Watch(s); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			printDocuments(out, s, false)
			ui.Info(out, "watching %s, press Ctrl+C to stop", docs.HumanReadablePath(s.WorkingDirectory(), s.Root()))

			for {
				select {
				case <-ctx.Done():
					return nil
				case dir, ok := <-e.browser.Events():
					if !ok {
						return nil
					}
					if e.browser.Reload(dir) {
						printDocuments(out, s, false)
					}
				}
			}
		},
	}
}
