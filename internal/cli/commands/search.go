package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
)

func newSearchCommand(e *env) *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find documents by name in every root",
		Long: `Find documents whose name contains the query, ignoring case, in every root
and all of their subdirectories.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := e.browser.Search(args[0])
			out := cmd.OutOrStdout()

			if len(results) == 0 {
				ui.Info(out, "no documents match %q", args[0])
				return nil
			}

			if tree {
				t := ui.NewPathTree(fmt.Sprintf("%d results for %q", len(results), args[0]))
				for _, r := range results {
					t.Insert(r.DisplayPath())
				}
				fmt.Fprint(out, t.Render())
				return nil
			}

			ui.SectionHeader(out, "Results", len(results))
			tbl := ui.NewTable(out, "NAME", "LOCATION", "MODIFIED")
			for _, r := range results {
				name := r.Document.Name
				if r.Document.IsDir {
					name += "/"
				}
				tbl.AddRow(name, r.DisplayPath(), r.Document.FormattedModified())
			}
			tbl.Print()
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "Show results as a tree")
	return cmd
}
