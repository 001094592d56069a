package commands

import (
	"github.com/spf13/cobra"
)

func newOpenCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open a document with its default application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.store()
			if err != nil {
				return err
			}
			found, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			return e.browser.OpenDocument(found[0])
		},
	}
}
