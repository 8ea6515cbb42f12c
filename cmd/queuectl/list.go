package main

import (
	"fmt"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
	"github.com/spf13/cobra"
)

var (
	listState string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var state job.State
			if listState != "" {
				parsed, err := job.ParseState(listState)
				if err != nil {
					return err
				}
				state = parsed
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			jobs, err := e.store.List(cmd.Context(), state, 0)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				if state != "" {
					fmt.Printf("No jobs found with state %q\n", state)
				} else {
					fmt.Println("No jobs found")
				}
				return nil
			}
			suffix := ""
			if state != "" {
				suffix = fmt.Sprintf(" (%s)", state)
			}
			fmt.Printf("Found %d job(s)%s:\n\n", len(jobs), suffix)
			for _, jb := range jobs {
				printJob(jb)
			}
			return nil
		},
	}
)

func printJob(jb *job.Job) {
	fmt.Printf("ID: %s\n", jb.ID)
	fmt.Printf("  Command: %s\n", jb.Command)
	fmt.Printf("  State: %s\n", jb.State)
	fmt.Printf("  Attempts: %d/%d\n", jb.Attempts, jb.MaxRetries)
	fmt.Printf("  Created: %s\n", queuectl.FormatTimestamp(jb.CreatedAt))
	if jb.RunAt != nil {
		fmt.Printf("  Run At: %s\n", queuectl.FormatTimestamp(*jb.RunAt))
	}
	if jb.NextRetryAt != nil {
		fmt.Printf("  Next Retry: %s\n", queuectl.FormatTimestamp(*jb.NextRetryAt))
	}
	fmt.Println()
}

func init() {
	listCmd.Flags().StringVar(&listState, "state", "", "filter jobs by state (pending, processing, completed, failed, dead)")
}
