package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(build appBuilder) *cobra.Command {
	var resetAlerts bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := build()
			if err != nil {
				return err
			}
			defer cleanup()

			if err = app.Session.ClearToken(); err != nil {
				return err
			}
			if resetAlerts {
				if err = app.Markers.ClearMarker(); err != nil {
					return err
				}
			}

			fmt.Fprintln(out(cmd), "Logged out")
			return nil
		},
	}

	cmd.Flags().BoolVar(&resetAlerts, "reset-alerts", false, "Also forget which result was last alerted")
	return cmd
}
