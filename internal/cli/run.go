package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRunCmd(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Register the monitor task and serve until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := build()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Serve(ctx)
		},
	}
}
