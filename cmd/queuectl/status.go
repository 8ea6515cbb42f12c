package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/proc"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show summary of job states and active workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		stats, err := e.store.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("=== queuectl status ===")
		fmt.Println()
		fmt.Println("Job States:")
		total := 0
		for _, state := range job.States {
			count := stats[state]
			total += count
			fmt.Printf("  %-12s %4d\n", state, count)
		}
		fmt.Printf("  %-12s %4d\n", "total", total)

		fmt.Println()
		fmt.Println("Active Workers:")
		registry := proc.NewRegistry(e.dir)
		pids := registry.Load()
		if len(pids) == 0 {
			fmt.Println("  No active workers")
		} else {
			var alive []int
			for _, pid := range pids {
				if proc.Alive(pid) {
					fmt.Printf("  Worker (PID: %d) - Running\n", pid)
					alive = append(alive, pid)
				} else {
					fmt.Printf("  Worker (PID: %d) - Not running\n", pid)
				}
			}
			if len(alive) != len(pids) {
				if err := registry.Save(alive); err != nil {
					return err
				}
			}
		}

		fmt.Println()
		fmt.Println("Configuration:")
		settings := e.cfg.All()
		keys := make([]string, 0, len(settings))
		for key := range settings {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %s: %v\n", strings.ReplaceAll(key, "_", "-"), settings[key])
		}
		return nil
	},
}
