package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/redcycle-go/internal/application/session/commands"
)

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the session to catalog defaults",
		Long: `Restore the session to catalog defaults and delete the stored snapshot for
the active profile. Running it twice is the same as running it once.

Example:
  redcycle reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("reset discards the whole session: re-run with --yes to confirm")
			}
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				if _, err := app.Send(cmd.Context(), &commands.ResetSessionCommand{}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Session %q reset to defaults\n", app.Config.Session.Profile)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the reset")

	return cmd
}
