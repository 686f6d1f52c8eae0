package cli

import (
	"fmt"
	"sort"
	"skinwatch/internal/scheduler"
	"skinwatch/internal/storage"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, last alert and scheduled tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := build()
			if err != nil {
				return err
			}
			defer cleanup()

			w := out(cmd)

			token, ok, err := app.Session.Token()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(w, "session:      none")
			} else {
				info := storage.DescribeToken(token)
				switch {
				case info.Opaque:
					fmt.Fprintln(w, "session:      present (opaque token)")
				case info.Expired(time.Now()):
					fmt.Fprintf(w, "session:      expired %s (subject %s)\n", info.ExpiresAt.UTC().Format(time.RFC3339), info.Subject)
				case info.ExpiresAt.IsZero():
					fmt.Fprintf(w, "session:      present (subject %s)\n", info.Subject)
				default:
					fmt.Fprintf(w, "session:      valid until %s (subject %s)\n", info.ExpiresAt.UTC().Format(time.RFC3339), info.Subject)
				}
			}

			marker, err := app.Markers.Marker()
			if err != nil {
				return err
			}
			if marker == nil {
				fmt.Fprintln(w, "last alert:   none")
			} else {
				fmt.Fprintf(w, "last alert:   %s\n", marker.LastAlertedTimestamp)
			}

			tasks, err := scheduler.SavedTasks(app.Store)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(tasks))
			for name := range tasks {
				names = append(names, name)
			}
			sort.Strings(names)
			if len(names) == 0 {
				fmt.Fprintln(w, "tasks:        none")
			}
			for _, name := range names {
				fmt.Fprintf(w, "task:         %s every %s\n", name, tasks[name])
			}
			return nil
		},
	}
}
