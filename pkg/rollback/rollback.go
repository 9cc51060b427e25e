// Package rollback reverts a failed run: every path the run brought into
// existence is removed, most recent first, and the pre-run status file
// snapshot is restored. Rollback is strictly best-effort: individual
// failures are collected as warnings and never stop the remaining steps.
package rollback

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/logging"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// Warning records one rollback step that could not complete.
type Warning struct {
	Path string
	Err  error
}

// Manager performs rollbacks.
type Manager struct {
	fs     types.FS
	audit  *auditlog.Log
	logger zerolog.Logger
}

// NewManager creates a rollback manager.
func NewManager(fs types.FS, audit *auditlog.Log) *Manager {
	return &Manager{
		fs:     fs,
		audit:  audit,
		logger: logging.GetLogger("rollback"),
	}
}

// Rollback removes every tracked path in reverse creation order, then
// restores the status file snapshot if one was captured. It never fails;
// the returned warnings list what could not be undone.
func (m *Manager) Rollback(ctx *types.ExecutionContext) []Warning {
	m.audit.Warnf("Rolling back installation")
	m.logger.Warn().Int("paths", len(ctx.AppliedPaths)).Msg("Rolling back installation")

	var warnings []Warning
	for i := len(ctx.AppliedPaths) - 1; i >= 0; i-- {
		path := ctx.AppliedPaths[i]
		if !ctx.ContainsPath(path) {
			continue
		}
		if err := m.removePath(path); err != nil {
			warnings = append(warnings, Warning{
				Path: path,
				Err:  errors.Wrapf(err, errors.ErrRollback, "could not remove %s", path),
			})
			m.audit.Errorf("Rollback skipped %s: %v", path, err)
			m.logger.Error().Err(err).Str("path", path).Msg("Rollback step failed")
		}
	}

	if ctx.StatusBackup != "" {
		if err := m.restoreStatus(ctx); err != nil {
			warnings = append(warnings, Warning{
				Path: ctx.StatusFile,
				Err:  errors.Wrap(err, errors.ErrRollback, "could not restore status file"),
			})
			m.audit.Errorf("Rollback could not restore status file: %v", err)
			m.logger.Error().Err(err).Msg("Status file restore failed")
		}
	}

	m.audit.Info("Rollback completed")
	return warnings
}

func (m *Manager) removePath(path string) error {
	info, err := m.fs.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return m.fs.RemoveAll(path)
	}
	if err := m.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// restoreStatus overwrites the live status file with the pre-run snapshot,
// byte for byte.
func (m *Manager) restoreStatus(ctx *types.ExecutionContext) error {
	data, err := m.fs.ReadFile(ctx.StatusBackup)
	if err != nil {
		return err
	}
	return m.fs.WriteFile(ctx.StatusFile, data, 0644)
}
