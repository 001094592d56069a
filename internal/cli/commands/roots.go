package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
)

func newRootsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roots",
		Short: "List the directories available for browsing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := e.browser.Roots()
			out := cmd.OutOrStdout()
			ui.SectionHeader(out, "Roots", len(roots))
			tbl := ui.NewTable(out, "NAME", "PATH")
			for _, r := range roots {
				tbl.AddRow(r.Name, r.Path)
			}
			tbl.Print()
			return nil
		},
	}

	var name string
	addCmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Add a root to the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if err := e.cfg.AddRoot(name, path); err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "added root %s", path)
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Display name (default: directory name)")

	removeCmd := &cobra.Command{
		Use:     "remove <path>",
		Aliases: []string{"rm"},
		Short:   "Remove a root from the config file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if r, ok := e.browser.Root(path); ok {
				path = r.Path
			}
			if err := e.cfg.RemoveRoot(path); err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "removed root %s", path)
			return nil
		},
	}

	cmd.AddCommand(addCmd, removeCmd)
	return cmd
}
