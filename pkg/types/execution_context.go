package types

import (
	"path/filepath"
	"strings"
)

// ExecutionContext is the single shared mutable resource for a run. It is
// constructed once before any module runs and passed by pointer to every
// operation. Path fields never change after construction; only the creation
// tracking and backup fields mutate.
type ExecutionContext struct {
	// InstallDir is the absolute directory modules install into.
	InstallDir string

	// ConfigDir is the absolute directory containing the config file.
	// Operation sources resolve relative to it.
	ConfigDir string

	// LogFile is the absolute path of the append-only audit log.
	LogFile string

	// StatusFile is the absolute path of the persisted status document.
	StatusFile string

	// Force permits overwriting pre-existing destination files and keeps the
	// run going past a failed module.
	Force bool

	// AppliedPaths holds every path this run brought into existence under
	// InstallDir, in creation order, without duplicates. Rollback consumes
	// it in reverse.
	AppliedPaths []string

	// StatusBackup is the path of the pre-run status file snapshot, or empty
	// when no status file existed before the run.
	StatusBackup string
}

// RecordCreated tracks a newly-created path for rollback. Paths outside the
// install dir, the install dir itself, and already-tracked paths are ignored,
// so callers can record unconditionally after checking prior existence.
func (c *ExecutionContext) RecordCreated(path string) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return
	}
	if !c.ContainsPath(resolved) {
		return
	}
	for _, p := range c.AppliedPaths {
		if p == resolved {
			return
		}
	}
	c.AppliedPaths = append(c.AppliedPaths, resolved)
}

// ContainsPath reports whether path is strictly inside the install dir.
// The install dir itself does not count as inside.
func (c *ExecutionContext) ContainsPath(path string) bool {
	root := filepath.Clean(c.InstallDir)
	p := filepath.Clean(path)
	return p != root && strings.HasPrefix(p, root+string(filepath.Separator))
}
