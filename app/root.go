// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "warrantydesk",
	Short: "WarrantyDesk is the web portal of the warranty management platform",
	Long: `WarrantyDesk is the web portal of the warranty management platform.
It serves role-specific dashboards for platform operators, dealers and
customers against the warranty backend API.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
