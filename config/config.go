package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the configuration file kept in the state directory.
const FileName = "config.json"

// File keys are snake_case on disk; the CLI exposes them in
// kebab-case.
const (
	keyMaxRetries     = "max_retries"
	keyBackoffBase    = "backoff_base"
	keyPollInterval   = "poll_interval"
	keyDefaultTimeout = "default_timeout"
)

var defaults = map[string]any{
	keyMaxRetries:     3,
	keyBackoffBase:    2,
	keyPollInterval:   1,
	keyDefaultTimeout: 3600,
}

// cliKeys maps the settable CLI names to their file keys.
var cliKeys = map[string]string{
	"max-retries":   keyMaxRetries,
	"backoff-base":  keyBackoffBase,
	"poll-interval": keyPollInterval,
}

// Config is the process-wide queue configuration.
//
// It is loaded once at startup from config.json in the state
// directory, merged over the defaults, and passed explicitly to the
// components that read it. Keys present in the file but unknown to
// this version are preserved on round-trip.
type Config struct {
	v    *viper.Viper
	path string
}

// Load reads the configuration from dir, creating the file with
// defaults when it does not exist yet.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := v.WriteConfigAs(path); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}
	return &Config{v: v, path: path}, nil
}

// MaxRetries is the default retry bound applied at enqueue time.
func (c *Config) MaxRetries() int {
	return c.v.GetInt(keyMaxRetries)
}

// BackoffBase is the exponent base of the retry backoff schedule.
func (c *Config) BackoffBase() float64 {
	return c.v.GetFloat64(keyBackoffBase)
}

// PollInterval is the idle sleep between worker lease attempts.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.v.GetInt(keyPollInterval)) * time.Second
}

// DefaultTimeout is the per-job execution timeout in seconds applied
// when a submission does not specify one.
func (c *Config) DefaultTimeout() int {
	return c.v.GetInt(keyDefaultTimeout)
}

// All returns every effective setting, defaults included.
func (c *Config) All() map[string]any {
	return c.v.AllSettings()
}

// Get returns the value of a CLI-exposed key.
//
// An unknown key is an error.
func (c *Config) Get(cliKey string) (string, error) {
	key, ok := cliKeys[cliKey]
	if !ok {
		return "", fmt.Errorf("unknown config key: %s", cliKey)
	}
	return fmt.Sprint(c.v.Get(key)), nil
}

// Set parses and stores the value of a CLI-exposed key and writes the
// file back.
//
// max-retries and poll-interval take integers; backoff-base takes an
// integer or a float. Unknown keys and unparsable values are errors
// and leave the file untouched.
func (c *Config) Set(cliKey string, raw string) error {
	key, ok := cliKeys[cliKey]
	if !ok {
		return fmt.Errorf("unknown config key: %s", cliKey)
	}
	value, err := parseValue(key, raw)
	if err != nil {
		return err
	}
	c.v.Set(key, value)
	return c.v.WriteConfigAs(c.path)
}

func parseValue(key string, raw string) (any, error) {
	if key == keyBackoffBase && strings.Contains(raw, ".") {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %s", key, raw)
		}
		return value, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %s", key, raw)
	}
	return value, nil
}
