package main

import (
	"fmt"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
	"github.com/spf13/cobra"
)

var (
	purgeState     string
	purgeOlderThan time.Duration

	purgeCmd = &cobra.Command{
		Use:   "purge",
		Short: "Delete terminal jobs",
		Long: `Delete completed and dead jobs from the database. With --state,
only the given terminal state is targeted; with --older-than, only
jobs last updated at least that long ago are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var state job.State
			if purgeState != "" {
				parsed, err := job.ParseState(purgeState)
				if err != nil {
					return err
				}
				state = parsed
			}
			var before *time.Time
			if purgeOlderThan > 0 {
				cutoff := queuectl.Now().Add(-purgeOlderThan)
				before = &cutoff
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			count, err := e.store.Prune(cmd.Context(), state, before)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d job(s)\n", count)
			return nil
		},
	}
)

func init() {
	purgeCmd.Flags().StringVar(&purgeState, "state", "", "terminal state to target (completed or dead; default both)")
	purgeCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 0, "only delete jobs last updated at least this long ago")
}
