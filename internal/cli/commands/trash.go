package commands

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
	"github.com/justyntemme/docbrowser/internal/docs"
	"github.com/justyntemme/docbrowser/internal/fs"
	"github.com/justyntemme/docbrowser/internal/trash"
)

var errTrashDisabled = errors.New("the trash is disabled in the config (browser.useTrash)")

func newTrashCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect, restore or empty deleted documents",
	}

	bin := func() (*trash.Bin, error) {
		b := e.browser.Trash()
		if b == nil {
			return nil, errTrashDisabled
		}
		return b, nil
	}

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List deleted documents, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bin()
			if err != nil {
				return err
			}
			items, err := b.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ui.SectionHeader(out, "Trash", len(items))
			tbl := ui.NewTable(out, "NAME", "ORIGINAL LOCATION", "DELETED", "SIZE")
			for _, item := range items {
				size := humanize.Bytes(uint64(max(item.Size, 0)))
				if item.IsDir {
					size = "-"
				}
				tbl.AddRow(item.Name, item.OriginalPath, humanize.Time(item.DeletedAt), size)
			}
			tbl.Print()
			return nil
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <name>",
		Short: "Put the most recently deleted document called name back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bin()
			if err != nil {
				return err
			}
			items, err := b.List()
			if err != nil {
				return err
			}
			for _, item := range items {
				if item.Name != args[0] {
					continue
				}
				if err := b.Restore(item); err != nil {
					if fs.IsExist(err) {
						return fmt.Errorf("restore %s: %w", item.OriginalPath, docs.ErrExists)
					}
					return err
				}
				ui.Success(cmd.OutOrStdout(), "restored %s", item.OriginalPath)
				return nil
			}
			return fmt.Errorf("%q is not in the trash", args[0])
		},
	}

	emptyCmd := &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete everything in the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bin()
			if err != nil {
				return err
			}
			if err := b.Empty(); err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "trash emptied")
			return nil
		},
	}

	cmd.AddCommand(listCmd, restoreCmd, emptyCmd)
	return cmd
}
