package commands

// Root command for Cobra CLI
// Holds the flags shared by every subcommand
// Registers all subcommands (render, publish)

import (
	"fmt"

	"sales-chart/internal/infra/config"
	logging "sales-chart/internal/infra/log"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "sales-chart",
	Short: "Sales Chart - renders sales series to PNG and publishes them to Telegram",
	Long: `Sales Chart renders a sales series as a line, bar or scatter chart titled
"Sales Over Time" and saves it as a PNG. The publish command also sends the
rendered chart to a Telegram chat.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// loadConfig reads the layered config for cmd and starts file logging in
// app.log_dir. Errors before logging is up are only reported by main.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Init(cfg.App.LogDir); err != nil {
		return nil, fmt.Errorf("failed to initialize logging in %s: %w", cfg.App.LogDir, err)
	}
	return cfg, nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().String("log-dir", "logs", "directory for log files (config app.log_dir, env LOG_DIR)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(publishCmd)
}
