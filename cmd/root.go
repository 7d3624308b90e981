package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopledger",
	Short: "Inventory ledger and sales CLI",
	Long:  "Command line tools for the shopledger inventory and sales backend.",
}

// Execute runs the root command after applying registered commands.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
