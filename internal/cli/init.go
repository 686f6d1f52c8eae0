package cli

import (
	"bytes"
	"fmt"
	"os"
	"skinwatch/internal/structures"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = "# skinwatch configuration\n# api.baseUrl must point at the scan service.\n"

// DefaultConfig mirrors the defaults applied by the config provider.
func DefaultConfig() *structures.Config {
	return &structures.Config{
		Api: structures.ApiConfig{
			BaseUrl: "http://127.0.0.1:8080",
			Timeout: 30 * time.Second,
		},
		Store: structures.StoreConfig{
			FilePath: "skinwatch.dat",
			Compress: true,
		},
		Monitor: structures.MonitorConfig{
			TaskName:   "high-risk-check",
			Interval:   15 * time.Minute,
			Background: true,
		},
		Channels: structures.ChannelsConfig{
			Local: structures.LocalChannelConfig{Enabled: true, Output: "-"},
		},
		WebServer: structures.Server{
			Host: "127.0.0.1",
			Port: 8089,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   ".",
		},
		Cache: structures.CacheConfig{
			Enabled: true,
			Size:    16,
			TTL:     time.Hour,
		},
	}
}

func newInitCmd(flags *structures.CliFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(flags.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", flags.ConfigPath)
			}

			var buf bytes.Buffer
			buf.WriteString(configHeader)
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(DefaultConfig()); err != nil {
				return err
			}
			if err := enc.Close(); err != nil {
				return err
			}

			if err := os.WriteFile(flags.ConfigPath, buf.Bytes(), 0600); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Wrote %s\n", flags.ConfigPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
