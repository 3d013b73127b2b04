package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	apiURL  string
	timeout string
)

var rootCmd = &cobra.Command{
	Use:   "poolctl",
	Short: "Administer a running pick'em pool",
	Long: `poolctl drives the pool API for commissioner tasks.

Examples:
  poolctl season create --name 2025 --starts 2025-08-01 --ends 2026-02-15 --activate
  poolctl result save <contest-id> --home 24 --visitor 21
  poolctl participant add --username ann --email ann@example.com
  poolctl remind send
  poolctl standings`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("POOL_API_URL", "http://localhost:8080/api"), "pool API base URL")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "30s", "request timeout")
}
