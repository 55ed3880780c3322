package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "gatepass",
	Short: "Visitor-vehicle reservation automation",
	Long: `gatepass talks to the apartment visitor reservation service: it lists
current reservations, registers a recurring weekday schedule without
double-booking, and deletes reservations by id.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
