// Package main provides the entry point for the AI Tools Dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aitoolsdash/dashboard/internal/config"
	"github.com/aitoolsdash/dashboard/internal/di/providers"
)

// flags is shared by every subcommand through the persistent flag set.
var flags *config.Flags

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "AI Tools Dashboard - local catalog of AI tools and prompts",
	Long: `Keeps a local catalog of AI tools, their categories and saved prompts,
and serves it to the dashboard UI over a JSON API on localhost.

Run without arguments to start the API server.`,
	Version:       providers.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	flags = config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
