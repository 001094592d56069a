package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
)

func newImportCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <src>...",
		Short: "Copy files or folders into the current directory",
		Long: `Copy files or folders into the current directory.

Existing documents are never replaced: a conflicting name is imported as
"name (1).ext", "name (2).ext" and so on.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.store()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, src := range args {
				d, ok := s.ImportFile(src)
				if !ok {
					ui.Error(cmd.ErrOrStderr(), "could not import %s", src)
					failed++
					continue
				}
				if d.Name != filepath.Base(src) {
					ui.Success(out, "imported %s as %s", src, s.RelativePath(d))
					continue
				}
				ui.Success(out, "imported %s", s.RelativePath(d))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d imports failed", failed, len(args))
			}
			return nil
		},
	}
}
