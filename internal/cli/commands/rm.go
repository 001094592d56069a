package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
)

func newRmCommand(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <name>...",
		Aliases: []string{"delete"},
		Short:   "Delete documents",
		Long: `Delete documents from the current directory.

Deleted documents go to the trash unless it is disabled in the config.
When delete confirmation is on, you are asked first unless --yes is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.store()
			if err != nil {
				return err
			}
			targets, err := lookup(s, args...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if e.browser.ConfirmDelete() && !yes {
				fmt.Fprintf(out, "Delete %s? [y/N] ", strings.Join(args, ", "))
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					ui.Info(out, "nothing deleted")
					return nil
				}
			}

			failed := 0
			for _, d := range targets {
				s.Delete(d)
				// Delete logs and keeps the document on failure.
				if _, still := s.DocumentNamed(d.Name); still {
					ui.Error(cmd.ErrOrStderr(), "could not delete %s", d.Name)
					failed++
					continue
				}
				ui.Success(out, "deleted %s", s.RelativePath(d))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d deletes failed", failed, len(targets))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
