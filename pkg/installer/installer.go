// Package installer orchestrates a run: it drives the operation executor
// through each selected module in order, decides when rollback fires, and
// persists the final report.
package installer

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/filesystem"
	"github.com/arthur-debert/modinstall/pkg/logging"
	"github.com/arthur-debert/modinstall/pkg/operations"
	"github.com/arthur-debert/modinstall/pkg/rollback"
	"github.com/arthur-debert/modinstall/pkg/status"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// RunStatus is the run-level state: a run is idle until the pre-run
// snapshot is taken, executing while modules process, and ends completed
// or aborted.
type RunStatus string

const (
	RunIdle      RunStatus = "idle"
	RunExecuting RunStatus = "executing"
	RunCompleted RunStatus = "completed"
	RunAborted   RunStatus = "aborted"
)

// RunReport is what a run produces: the terminal run status, the ordered
// per-module results, and any non-fatal rollback warnings.
type RunReport struct {
	Status   RunStatus
	Results  []types.ModuleResult
	Warnings []rollback.Warning
}

// Runner executes modules sequentially, stopping each module at its first
// failed operation.
type Runner struct {
	executor *operations.Executor
	rollback *rollback.Manager
	recorder *status.Recorder
	audit    *auditlog.Log
	logger   zerolog.Logger
}

// Options configures a Runner. FS defaults to the OS filesystem.
type Options struct {
	FS    types.FS
	Audit *auditlog.Log
}

// New creates a runner.
func New(opts Options) *Runner {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Runner{
		executor: operations.NewExecutor(fs, opts.Audit),
		rollback: rollback.NewManager(fs, opts.Audit),
		recorder: status.NewRecorder(fs),
		audit:    opts.Audit,
		logger:   logging.GetLogger("installer"),
	}
}

// Run processes modules in order. On a module failure rollback always
// fires, reverting every path applied so far in the run. Without force the
// run then aborts: remaining modules are skipped, no status file is
// written, and the module failure is returned. With force the failed
// result is recorded and the run continues to the next module.
func (r *Runner) Run(ctx *types.ExecutionContext, modules []types.Module) (*RunReport, error) {
	report := &RunReport{Status: RunIdle}

	if err := r.recorder.Backup(ctx); err != nil {
		return report, err
	}

	report.Status = RunExecuting
	for _, module := range modules {
		result := r.runModule(ctx, module)
		report.Results = append(report.Results, result)

		if result.Status == types.StatusFailed {
			report.Warnings = append(report.Warnings, r.rollback.Rollback(ctx)...)
			if !ctx.Force {
				report.Status = RunAborted
				return report, errors.Newf(errors.ErrModuleFailed, "module %s failed", module.Name)
			}
			r.logger.Warn().Str("module", module.Name).Msg("Module failed, continuing (force)")
		}
	}

	report.Status = RunCompleted
	if err := r.recorder.Write(ctx, report.Results); err != nil {
		return report, err
	}
	return report, nil
}

// runModule executes one module's operations in declared order, stopping at
// the first failure.
func (r *Runner) runModule(ctx *types.ExecutionContext, module types.Module) types.ModuleResult {
	logger := r.logger.With().Str("module", module.Name).Logger()
	logger.Info().Int("operations", len(module.Operations)).Msg("Module started")

	result := types.ModuleResult{
		Module:      module.Name,
		Status:      types.StatusSuccess,
		InstalledAt: time.Now().Format(types.TimestampFormat),
	}

	for _, op := range module.Operations {
		outcome := r.executor.Execute(ctx, op)
		result.Operations = append(result.Operations, outcome)
		if outcome.Status == types.StatusFailed {
			result.Status = types.StatusFailed
			r.audit.Errorf("Module %s failed on %s: %s", module.Name, op.Type, outcome.Error)
			break
		}
	}

	logger.Info().Str("status", string(result.Status)).Msg("Module finished")
	return result
}
