package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version = "dev"

	// Global flags
	stateDir string

	// Root command
	rootCmd = &cobra.Command{
		Use:     "queuectl",
		Short:   "CLI-based background job queue",
		Long:    `queuectl is a persistent background job queue backed by a single SQLite file. Jobs are shell commands executed by worker processes with bounded retry, exponential backoff and a dead-letter queue.`,
		Version: Version,

		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default ~/.queuectl)")

	rootCmd.AddCommand(enqueueCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dlqCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(purgeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
