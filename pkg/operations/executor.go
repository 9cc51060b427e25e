package operations

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/logging"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// Executor dispatches and runs the typed operations a module declares.
// Every call, success or failure, is recorded in the audit log.
type Executor struct {
	fs     types.FS
	audit  *auditlog.Log
	logger zerolog.Logger
}

// NewExecutor creates an executor writing audit events to audit.
func NewExecutor(fs types.FS, audit *auditlog.Log) *Executor {
	return &Executor{
		fs:     fs,
		audit:  audit,
		logger: logging.GetLogger("operations"),
	}
}

// Execute runs a single operation and reports its outcome. Failures are
// captured in the outcome rather than returned; the orchestrator inspects
// the outcome to decide whether the module continues.
func (e *Executor) Execute(ctx *types.ExecutionContext, op types.Operation) types.OperationOutcome {
	e.logger.Debug().
		Str("type", string(op.Type)).
		Bool("force", ctx.Force).
		Msg("Executing operation")

	var err error
	switch op.Type {
	case types.OpCopyDir:
		err = e.copyDir(ctx, op)
	case types.OpCopyFile:
		err = e.copyFile(ctx, op)
	case types.OpMergeDir:
		err = e.mergeDir(ctx, op)
	case types.OpMergeJSON:
		err = e.mergeJSON(ctx, op)
	case types.OpRunCommand:
		err = e.runCommand(ctx, op)
	default:
		// Config validation rejects unknown types before a run, so this is
		// purely defensive.
		err = errors.Newf(errors.ErrOpUnknownType, "unknown operation type: %s", op.Type)
	}

	if err != nil {
		e.logger.Error().Err(err).Str("type", string(op.Type)).Msg("Operation failed")
		return types.OperationOutcome{
			Type:   op.Type,
			Status: types.StatusFailed,
			Error:  err.Error(),
		}
	}

	return types.OperationOutcome{
		Type:   op.Type,
		Status: types.StatusSuccess,
	}
}

// exists reports whether a path is present.
func (e *Executor) exists(path string) bool {
	_, err := e.fs.Stat(path)
	return err == nil
}
