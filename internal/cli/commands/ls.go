package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
	"github.com/justyntemme/docbrowser/internal/docs"
)

func newLsCommand(e *env) *cobra.Command {
	var relative bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the documents of the current directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.store()
			if err != nil {
				return err
			}
			printDocuments(cmd.OutOrStdout(), s, relative)
			return nil
		},
	}
	cmd.Flags().BoolVar(&relative, "relative", false, "Show modification times relative to now")
	return cmd
}

func printDocuments(w io.Writer, s *docs.Store, relative bool) {
	documents := s.Documents()
	sorting := s.Sorting()

	title := docs.HumanReadablePath(s.WorkingDirectory(), s.Root())
	ui.SectionHeader(w, title, len(documents))
	fmt.Fprintln(w, ui.DimStyle.Render(fmt.Sprintf("sorted by %s %s", sorting.Axis, ui.SortArrow(sorting.Icon()))))

	tbl := ui.NewTable(w,
		"NAME",
		"SIZE",
		"MODIFIED "+ui.SortArrow(sorting.DateIcon()),
	)
	for _, d := range documents {
		name, size := d.Name, d.FormattedSize()
		if d.IsDir {
			name, size = ui.FolderStyle.Render(d.Name+"/"), "-"
		}
		modified := d.FormattedModified()
		if relative {
			modified = d.RelativeModified()
		}
		tbl.AddRow(name, size, modified)
	}
	tbl.Print()
}
