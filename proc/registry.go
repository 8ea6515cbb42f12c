package proc

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileName is the PID registry kept in the state directory.
const FileName = "worker_pids.json"

// Registry tracks the OS PIDs of spawned worker processes.
//
// The registry is a plain JSON array on disk so that any process (or
// operator) can inspect it. It is advisory: liveness is always
// re-checked against the OS before a PID is acted on.
type Registry struct {
	path string
}

// NewRegistry creates a Registry rooted in the given state directory.
func NewRegistry(dir string) *Registry {
	return &Registry{path: filepath.Join(dir, FileName)}
}

// Load returns the recorded PIDs. A missing or unreadable file is
// treated as an empty registry.
func (r *Registry) Load() []int {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}
	var pids []int
	if err := json.Unmarshal(data, &pids); err != nil {
		return nil
	}
	return pids
}

// Save overwrites the registry with the given PIDs.
func (r *Registry) Save(pids []int) error {
	if pids == nil {
		pids = []int{}
	}
	data, err := json.Marshal(pids)
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}

// Add appends pids to the registry, keeping already-recorded entries.
func (r *Registry) Add(pids ...int) error {
	return r.Save(append(r.Load(), pids...))
}
