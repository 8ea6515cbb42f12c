// Package config manages the queue's JSON configuration file.
//
// The configuration lives in the state directory next to the database
// and is shared by every process. Defaults are merged at load time, so
// a missing or partial file always yields a complete configuration.
// Keys written by newer versions are preserved when an older binary
// rewrites the file.
package config
