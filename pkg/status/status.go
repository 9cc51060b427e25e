// Package status persists the per-run installation report and manages the
// pre-run snapshot of the previous report that rollback restores.
package status

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/logging"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// BackupSuffix replaces the status file's .json extension for the pre-run
// snapshot.
const BackupSuffix = ".json.bak"

// Recorder reads and writes the status file.
type Recorder struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewRecorder creates a status recorder.
func NewRecorder(fs types.FS) *Recorder {
	return &Recorder{
		fs:     fs,
		logger: logging.GetLogger("status"),
	}
}

// BackupPath returns the snapshot path for a status file.
func BackupPath(statusFile string) string {
	return strings.TrimSuffix(statusFile, ".json") + BackupSuffix
}

// Backup snapshots a pre-existing status file byte-for-byte before any
// module runs, recording the snapshot location on the context. A missing
// status file is not an error; it simply means there is nothing to restore.
func (r *Recorder) Backup(ctx *types.ExecutionContext) error {
	data, err := r.fs.ReadFile(ctx.StatusFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrStatusBackup, "could not read status file %s", ctx.StatusFile)
	}

	backup := BackupPath(ctx.StatusFile)
	if err := r.fs.MkdirAll(filepath.Dir(backup), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStatusBackup, "could not create parent of %s", backup)
	}
	if err := r.fs.WriteFile(backup, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStatusBackup, "could not write backup %s", backup)
	}

	ctx.StatusBackup = backup
	r.logger.Debug().Str("backup", backup).Msg("Status file snapshot captured")
	return nil
}

// Write persists the run's results, overwriting any previous status file.
// The document reflects only the modules selected in this run.
func (r *Recorder) Write(ctx *types.ExecutionContext, results []types.ModuleResult) error {
	doc := types.NewInstallationStatus(results)

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrStatusWrite, "could not encode status")
	}

	if err := r.fs.MkdirAll(filepath.Dir(ctx.StatusFile), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStatusWrite, "could not create parent of %s", ctx.StatusFile)
	}
	if err := r.fs.WriteFile(ctx.StatusFile, append(encoded, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStatusWrite, "could not write status file %s", ctx.StatusFile)
	}

	r.logger.Info().Str("path", ctx.StatusFile).Int("modules", len(results)).Msg("Status file written")
	return nil
}
