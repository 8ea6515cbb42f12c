package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/proc"
	"github.com/spf13/cobra"
)

const workerLogName = "worker.log"

var (
	workerCount int
	workerID    string

	workerCmd = &cobra.Command{
		Use:   "worker",
		Short: "Manage worker processes",
	}

	workerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start one or more worker processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workerCount < 1 {
				return fmt.Errorf("count must be at least 1")
			}
			dir, err := resolveStateDir()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			registry := proc.NewRegistry(dir)
			alive := 0
			for _, pid := range registry.Load() {
				if proc.Alive(pid) {
					alive++
				}
			}
			if alive > 0 {
				fmt.Printf("Warning: found %d running worker process(es)\n", alive)
			}
			exe, err := os.Executable()
			if err != nil {
				return err
			}
			logFile, err := os.OpenFile(filepath.Join(dir, workerLogName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer logFile.Close()
			var pids []int
			for i := 0; i < workerCount; i++ {
				child := exec.Command(exe, "worker", "run", "--state-dir", dir)
				child.Stdout = logFile
				child.Stderr = logFile
				if err := child.Start(); err != nil {
					return fmt.Errorf("cannot start worker %d: %w", i+1, err)
				}
				pids = append(pids, child.Process.Pid)
				_ = child.Process.Release()
				fmt.Printf("Started worker %d (PID: %d)\n", i+1, pids[i])
			}
			if err := registry.Add(pids...); err != nil {
				return err
			}
			fmt.Printf("\nStarted %d worker(s). Use 'queuectl worker stop' to stop them.\n", workerCount)
			return nil
		},
	}

	workerStopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Stop all running worker processes gracefully",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveStateDir()
			if err != nil {
				return err
			}
			registry := proc.NewRegistry(dir)
			pids := registry.Load()
			stopped := 0
			var remaining []int
			for _, pid := range pids {
				if err := proc.Terminate(pid); err != nil {
					fmt.Fprintf(os.Stderr, "Error stopping worker %d: %v\n", pid, err)
					remaining = append(remaining, pid)
					continue
				}
				stopped++
			}
			if stopped > 0 {
				// Give workers a moment to finish their in-flight attempt.
				time.Sleep(2 * time.Second)
			}
			var survivors []int
			for _, pid := range append(remaining, pids...) {
				if proc.Alive(pid) {
					survivors = append(survivors, pid)
				}
			}
			if err := registry.Save(dedupe(survivors)); err != nil {
				return err
			}
			if stopped > 0 {
				fmt.Printf("Stopped %d worker(s)\n", stopped)
			} else {
				fmt.Println("No running workers found")
			}
			return nil
		},
	}

	workerRunCmd = &cobra.Command{
		Use:    "run",
		Short:  "Run a single worker loop in the foreground",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			id := workerID
			if id == "" {
				id = fmt.Sprintf("worker-%d-%s", os.Getpid(), uuid.NewString()[:8])
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			defaultTimeout := time.Duration(e.cfg.DefaultTimeout()) * time.Second
			worker := queuectl.NewWorker(id, e.store, e.manager, &queuectl.WorkerConfig{
				PollInterval:   e.cfg.PollInterval(),
				DefaultTimeout: defaultTimeout,
			}, log)
			reaper := queuectl.NewReaper(e.store, &queuectl.ReaperConfig{
				Interval: time.Minute,
				Cutoff:   2 * defaultTimeout,
			}, log)

			if err := worker.Start(ctx); err != nil {
				return err
			}
			if err := reaper.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			stop()

			// The in-flight attempt is run to completion, so the stop
			// grace must cover a full job timeout.
			if err := worker.Stop(defaultTimeout + 5*time.Second); err != nil {
				log.Error("worker stop", "err", err)
			}
			if err := reaper.Stop(5 * time.Second); err != nil {
				log.Error("reaper stop", "err", err)
			}
			return nil
		},
	}
)

func dedupe(pids []int) []int {
	seen := make(map[int]bool, len(pids))
	var ret []int
	for _, pid := range pids {
		if seen[pid] {
			continue
		}
		seen[pid] = true
		ret = append(ret, pid)
	}
	return ret
}

func init() {
	workerStartCmd.Flags().IntVar(&workerCount, "count", 1, "number of workers to start")
	workerRunCmd.Flags().StringVar(&workerID, "id", "", "worker identifier (generated when empty)")

	workerCmd.AddCommand(workerStartCmd)
	workerCmd.AddCommand(workerStopCmd)
	workerCmd.AddCommand(workerRunCmd)
}
