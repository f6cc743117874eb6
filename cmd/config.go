package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/nsisync/internal/config"
	"github.com/marcus/nsisync/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the sync configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return err
		}
		masked := *cfg
		if masked.APIKey != "" {
			masked.APIKey = "********"
		}
		return output.JSON(masked)
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "Set the UH feed server URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Update(getBaseDir(), func(cfg *config.Config) {
			cfg.ServerURL = args[0]
		}); err != nil {
			return err
		}
		output.Success("Server set to %s", args[0])
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Set the UH feed API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Update(getBaseDir(), func(cfg *config.Config) {
			cfg.APIKey = args[0]
		}); err != nil {
			return err
		}
		output.Success("API key updated")
		return nil
	},
}

var configSetIntervalCmd = &cobra.Command{
	Use:   "set-interval <duration>",
	Short: "Set the periodic sync interval (e.g. 30s, 5m)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := time.ParseDuration(args[0])
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid interval %q", args[0])
		}
		if err := config.Update(getBaseDir(), func(cfg *config.Config) {
			cfg.Interval = args[0]
		}); err != nil {
			return err
		}
		output.Success("Interval set to %s", d)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetServerCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configSetIntervalCmd)
	rootCmd.AddCommand(configCmd)
}
