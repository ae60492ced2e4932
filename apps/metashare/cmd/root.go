package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "metashare",
	Short: "MetaShare API server and client",
	Long: `MetaShare serves the API for managing GitHub-backed repositories, their
projects and tasks, and the Salesforce scratch orgs used to work on them.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
