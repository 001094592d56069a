package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
	"github.com/justyntemme/docbrowser/internal/docs"
)

func newMkdirCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir [name]",
		Short: "Create a folder",
		Long: `Create a folder in the current directory.

Without a name the first free "New Folder", "New Folder (1)", ... is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.store()
			if err != nil {
				return err
			}

			var folder docs.Document
			if len(args) == 0 {
				folder, err = s.CreateNewFolder()
			} else {
				folder, err = s.CreateFolder(args[0])
			}
			if errors.Is(err, docs.ErrExists) && len(args) == 1 {
				return fmt.Errorf("%q already exists, choose another name", args[0])
			}
			if err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "created %s", s.RelativePath(folder))
			return nil
		},
	}
}
