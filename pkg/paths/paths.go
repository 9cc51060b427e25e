// Package paths centralizes path resolution for modinstall: home expansion,
// the defaults for the install directory and its artifacts, construction of
// the per-run execution context, and the source/target resolution every
// operation goes through.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/types"
)

const (
	// DefaultInstallDir is used when neither the CLI nor the config names an
	// install directory.
	DefaultInstallDir = "~/.modinstall"

	// StatusFileName is the status document written inside the install dir.
	StatusFileName = "installed_modules.json"

	// DefaultLogFile is the audit log path when the config does not set one.
	// Relative paths anchor at the install dir.
	DefaultLogFile = "install.log"
)

// ExpandHome replaces a leading ~ with the current user's home directory.
// Paths that cannot be expanded are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ContextOptions carries the inputs for building an execution context:
// the CLI flags plus the path settings read from config.
type ContextOptions struct {
	ConfigPath       string
	InstallDirFlag   string
	ConfigInstallDir string
	ConfigLogFile    string
	Force            bool
}

// NewExecutionContext resolves every path a run needs into absolute form.
// Install dir precedence: explicit CLI flag, then config, then the default.
func NewExecutionContext(opts ContextOptions) (*types.ExecutionContext, error) {
	configPath, err := filepath.Abs(ExpandHome(opts.ConfigPath))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPathInvalid, "could not resolve config path %s", opts.ConfigPath)
	}

	installDirRaw := DefaultInstallDir
	switch {
	case opts.InstallDirFlag != "" && opts.InstallDirFlag != DefaultInstallDir:
		installDirRaw = opts.InstallDirFlag
	case opts.ConfigInstallDir != "":
		installDirRaw = opts.ConfigInstallDir
	}

	installDir, err := filepath.Abs(ExpandHome(installDirRaw))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPathInvalid, "could not resolve install dir %s", installDirRaw)
	}

	logFileRaw := opts.ConfigLogFile
	if logFileRaw == "" {
		logFileRaw = DefaultLogFile
	}
	logFile := ExpandHome(logFileRaw)
	if !filepath.IsAbs(logFile) {
		logFile = filepath.Join(installDir, logFile)
	}

	return &types.ExecutionContext{
		InstallDir: installDir,
		ConfigDir:  filepath.Dir(configPath),
		LogFile:    logFile,
		StatusFile: filepath.Join(installDir, StatusFileName),
		Force:      opts.Force,
	}, nil
}

// ResolveSource turns an operation's source field into an absolute path
// anchored at the config directory.
func ResolveSource(ctx *types.ExecutionContext, op types.Operation) string {
	return filepath.Clean(filepath.Join(ctx.ConfigDir, ExpandHome(op.Source)))
}

// ResolveTarget turns an operation's target field into an absolute path
// anchored at the install directory.
func ResolveTarget(ctx *types.ExecutionContext, op types.Operation) string {
	return filepath.Clean(filepath.Join(ctx.InstallDir, ExpandHome(op.Target)))
}

// EnsureInstallDir creates the install directory if needed and verifies it
// is a writable directory. Both failure modes are fatal before any module
// runs.
func EnsureInstallDir(path string) error {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return errors.Newf(errors.ErrPathInvalid, "install path exists and is not a directory: %s", path)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrPathInvalid, "could not create install dir %s", path)
	}

	probe, err := os.CreateTemp(path, ".modinstall-probe-*")
	if err != nil {
		return errors.Newf(errors.ErrPathPermission, "no write permission for install dir: %s", path)
	}
	probe.Close()
	_ = os.Remove(probe.Name())

	return nil
}
