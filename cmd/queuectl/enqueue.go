package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/queuectl/queuectl"
	"github.com/spf13/cobra"
)

var (
	enqueueFile string

	enqueueCmd = &cobra.Command{
		Use:   "enqueue [job-json]",
		Short: "Enqueue a new job",
		Long: `Enqueue a new job described by a JSON object, e.g.
'{"id":"job1","command":"sleep 2"}'. Required fields are id and
command; optional fields are max_retries, priority, run_at and
timeout. With --file, the JSON is read from a file instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := ""
			if len(args) > 0 {
				payload = args[0]
			}
			if enqueueFile != "" {
				data, err := os.ReadFile(enqueueFile)
				if err != nil {
					return err
				}
				payload = strings.TrimSpace(string(data))
			}
			if payload == "" {
				return fmt.Errorf("either provide the job JSON argument or use --file")
			}
			sub, err := queuectl.ParseSubmission([]byte(payload))
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			jb, err := e.manager.Enqueue(cmd.Context(), sub)
			if err != nil {
				return err
			}
			rendered, err := json.MarshalIndent(jb, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println("Job enqueued successfully:")
			fmt.Println(string(rendered))
			return nil
		},
	}
)

func init() {
	enqueueCmd.Flags().StringVarP(&enqueueFile, "file", "f", "", "read job JSON from file")
}
