package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	env := &environment{}

	rootCmd := &cobra.Command{
		Use:   "securecheck",
		Short: "Traffic stop reporting dashboard",
		Long: `SecureCheck reports on police traffic stops.

It serves a dashboard API over the traffic_logs store and a spreadsheet
extract, and exposes the same views on the command line:
  - Overview table with headline metrics
  - A fixed catalog of analytical queries
  - Vehicle number lookup with plain-language summaries`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup(cmd.Name() == "serve")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.teardown()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env.configPath, "config", "c", "", "Path to a config file (default: ./config.yaml)")

	rootCmd.AddCommand(serveCmd(env))
	rootCmd.AddCommand(overviewCmd(env))
	rootCmd.AddCommand(catalogCmd(env))
	rootCmd.AddCommand(runCmd(env))
	rootCmd.AddCommand(lookupCmd(env))

	return rootCmd
}
