package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/queuectl/queuectl/config"
	"github.com/spf13/cobra"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	configGetCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value(s)",
		Long: `Get the value of a configuration key, or every effective
setting when no key is given. Known keys are max-retries,
backoff-base and poll-interval.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				value, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s = %s\n", args[0], value)
				return nil
			}
			settings := cfg.All()
			keys := make([]string, 0, len(settings))
			for key := range settings {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			fmt.Println("Configuration:")
			for _, key := range keys {
				fmt.Printf("  %s = %v\n", strings.ReplaceAll(key, "_", "-"), settings[key])
			}
			return nil
		},
	}

	configSetCmd = &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration key. Known keys are max-retries (int),
backoff-base (int or float) and poll-interval (int seconds).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
)

func loadConfig() (*config.Config, error) {
	dir, err := resolveStateDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return config.Load(dir)
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
