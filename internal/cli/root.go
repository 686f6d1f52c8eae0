package cli

import (
	"io"
	"skinwatch/internal"
	"skinwatch/internal/di"
	"skinwatch/internal/structures"

	"github.com/spf13/cobra"
)

const DefaultConfigPath = "skinwatch.yaml"

// AppFactory builds the wired application; tests swap it for a fake graph.
type AppFactory func(flags *structures.CliFlags) (*internal.App, func(), error)

// Execute builds the root command tree and runs the CLI.
func Execute(version string) error {
	return NewRootCmd(version, di.InitApp).Execute()
}

func NewRootCmd(version string, factory AppFactory) *cobra.Command {
	flags := &structures.CliFlags{ConfigPath: DefaultConfigPath}

	rootCmd := &cobra.Command{
		Use:           "skinwatch",
		Short:         "Background monitor that alerts on high-risk skin scan results",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetVersionTemplate("skinwatch version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", DefaultConfigPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "Mirror logs to stderr")

	build := func() (*internal.App, func(), error) {
		app, cleanup, err := factory(flags)
		if err != nil {
			return nil, nil, err
		}
		return app, func() {
			cleanup()
			app.Close()
		}, nil
	}

	rootCmd.AddCommand(
		newRunCmd(build),
		newCheckCmd(build),
		newLoginCmd(build),
		newLogoutCmd(build),
		newStatusCmd(build),
		newInitCmd(flags),
	)

	return rootCmd
}

type appBuilder func() (*internal.App, func(), error)

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
