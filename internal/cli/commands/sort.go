package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
	"github.com/justyntemme/docbrowser/internal/docs"
)

func newSortCommand(e *env) *cobra.Command {
	var (
		ascending   bool
		toggle      bool
		makeDefault bool
	)
	cmd := &cobra.Command{
		Use:   "sort <date|name>",
		Short: "Change and remember the order of the current directory",
		Long: `Change the order of the current directory. The choice is remembered for
that directory.

With --toggle the command behaves like the column buttons of a file list:
choosing the active column flips its direction, choosing the other column
switches to it, newest or last first.`,
		ValidArgs: []string{"date", "name"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := docs.ParseSortOption(args[0])
			if err != nil {
				return err
			}
			s, err := e.store()
			if err != nil {
				return err
			}

			if toggle {
				if opt.Axis == docs.ByName {
					opt = s.Sorting().ToggleName()
				} else {
					opt = s.Sorting().ToggleDate()
				}
			} else if cmd.Flags().Changed("asc") {
				opt.Ascending = ascending
			}

			if err := e.browser.SetSorting(s, opt); err != nil {
				return fmt.Errorf("save sort order: %w", err)
			}
			if makeDefault {
				if err := e.cfg.SetDefaultSort(opt.Axis.String(), opt.Ascending); err != nil {
					return fmt.Errorf("save default sort: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			ui.Success(out, "sorting by %s %s", opt.Axis, ui.SortArrow(opt.Icon()))
			printDocuments(out, s, false)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ascending, "asc", false, "Sort ascending (oldest or A first)")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "Toggle like a column header instead of setting")
	cmd.Flags().BoolVar(&makeDefault, "default", false, "Also use this order for directories without a saved one")
	return cmd
}
