package main

import (
	"fmt"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
	"github.com/spf13/cobra"
)

var (
	dlqCmd = &cobra.Command{
		Use:   "dlq",
		Short: "Manage the Dead Letter Queue",
	}

	dlqListCmd = &cobra.Command{
		Use:   "list",
		Short: "List all jobs in the Dead Letter Queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			jobs, err := e.store.List(cmd.Context(), job.StateDead, 0)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Println("No jobs in Dead Letter Queue")
				return nil
			}
			fmt.Printf("Found %d job(s) in Dead Letter Queue:\n\n", len(jobs))
			for _, jb := range jobs {
				fmt.Printf("ID: %s\n", jb.ID)
				fmt.Printf("  Command: %s\n", jb.Command)
				fmt.Printf("  Attempts: %d/%d\n", jb.Attempts, jb.MaxRetries)
				fmt.Printf("  Failed at: %s\n", queuectl.FormatTimestamp(jb.UpdatedAt))
				fmt.Println()
			}
			return nil
		},
	}

	dlqRetryCmd = &cobra.Command{
		Use:   "retry <job-id>",
		Short: "Retry a job from the Dead Letter Queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			ok, err := e.manager.RetryDead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("job %q not found or not in Dead Letter Queue", args[0])
			}
			fmt.Printf("Job %q moved back to pending queue\n", args[0])
			return nil
		},
	}
)

func init() {
	dlqCmd.AddCommand(dlqListCmd)
	dlqCmd.AddCommand(dlqRetryCmd)
}
