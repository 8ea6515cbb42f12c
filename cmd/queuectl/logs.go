package main

import (
	"fmt"

	"github.com/queuectl/queuectl"
	"github.com/spf13/cobra"
)

var (
	logsLimit int

	logsCmd = &cobra.Command{
		Use:   "logs",
		Short: "Show recent job execution logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			entries, err := e.store.Recent(cmd.Context(), logsLimit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No execution logs")
				return nil
			}
			for _, entry := range entries {
				result := "FAIL"
				if entry.Success {
					result = "OK"
				}
				fmt.Printf("%s  %-4s  %-10s  attempt %d  %dms  %s\n",
					queuectl.FormatTimestamp(entry.CreatedAt),
					result,
					entry.State,
					entry.Attempts,
					entry.DurationMS,
					entry.JobID,
				)
			}
			return nil
		},
	}
)

func init() {
	logsCmd.Flags().IntVar(&logsLimit, "limit", 20, "maximum number of log rows to show")
}
