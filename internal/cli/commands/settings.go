package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/cli/ui"
	"github.com/justyntemme/docbrowser/internal/prefs"
)

func newSettingsCommand(e *env) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "settings [key [kind value]]",
		Short: "Show or change saved settings",
		Long: `Without arguments, list every saved setting. With a key, show it. With a
key, a kind (bool, int, double, float, string) and a value, save it.`,
		Example: `  docbrowser settings
  docbrowser settings confirm_delete bool false
  docbrowser settings --delete confirm_delete`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0, 1, 3:
				return nil
			}
			return fmt.Errorf("expected 0, 1 or 3 arguments, got %d", len(args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			db := e.browser.Prefs()
			out := cmd.OutOrStdout()

			switch {
			case remove:
				if len(args) != 1 {
					return fmt.Errorf("--delete takes exactly one key")
				}
				if err := db.DeleteSetting(args[0]); err != nil {
					return err
				}
				ui.Success(out, "deleted %s", args[0])

			case len(args) == 0:
				entries, err := db.Settings()
				if err != nil {
					return err
				}
				ui.SectionHeader(out, "Settings", len(entries))
				tbl := ui.NewTable(out, "KEY", "KIND", "VALUE")
				for _, entry := range entries {
					tbl.AddRow(entry.Key, entry.Value.Kind(), entry.Value.Display())
				}
				tbl.Print()

			case len(args) == 1:
				v, ok, err := db.Setting(args[0])
				if err != nil {
					return err
				}
				if !ok {
					ui.Info(out, "%s is not set", args[0])
					return nil
				}
				fmt.Fprintf(out, "%s (%s) = %s\n", args[0], v.Kind(), v.Display())

			default:
				kind, err := prefs.ParseKind(args[1])
				if err != nil {
					return err
				}
				v, err := prefs.ParseValue(kind, args[2])
				if err != nil {
					return err
				}
				if err := db.SetSetting(args[0], v); err != nil {
					return err
				}
				ui.Success(out, "%s = %s", args[0], v.Display())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete the given key")
	return cmd
}
