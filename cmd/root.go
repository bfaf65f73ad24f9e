// Package cmd implements the dispatchd command line interface.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dispatchd",
	Short: "Field technician dispatch engine",
	Long: `dispatchd matches field technicians to pending service dispatch requests.
Candidates are ranked by skill, proximity, workload availability and
historical performance; the winner is committed with a race-safe write.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A local .env is optional; config and FD_ env vars take over from here.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
