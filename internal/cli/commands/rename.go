package commands

import (
	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
)

func newRenameCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <old> <new>",
		Aliases: []string{"mv"},
		Short:   "Rename a document without replacing another",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.store()
			if err != nil {
				return err
			}
			found, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			renamed, err := s.Rename(found[0], args[1])
			if err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "renamed %s to %s", args[0], s.RelativePath(renamed))
			return nil
		},
	}
}
