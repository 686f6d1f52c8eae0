package cli

import (
	"errors"
	"fmt"
	"skinwatch/internal/models"

	"github.com/spf13/cobra"
)

var ErrCheckFailed = errors.New("check failed")

func newCheckCmd(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the monitor pipeline once and print the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := build()
			if err != nil {
				return err
			}
			defer cleanup()

			outcome := app.Check(cmd.Context())
			fmt.Fprintln(out(cmd), outcome)

			switch outcome {
			case models.OutcomeDeliveryFailed, models.OutcomeStoreError, models.OutcomeFailed:
				return fmt.Errorf("%w: %s", ErrCheckFailed, outcome)
			}
			return nil
		},
	}
}
