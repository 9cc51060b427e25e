package operations

import (
	"bytes"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// InstallDirVar is the placeholder expanded to the install directory inside
// declared environment variable values.
const InstallDirVar = "${install_dir}"

// runCommand runs the declared command through a shell in the config
// directory, with the declared environment merged over the inherited one,
// and blocks until it exits. Output and exit code are captured into the
// audit log; a non-zero exit fails the operation.
func (e *Executor) runCommand(ctx *types.ExecutionContext, op types.Operation) error {
	env := os.Environ()
	for key, value := range op.Env {
		env = append(env, key+"="+strings.ReplaceAll(value, InstallDirVar, ctx.InstallDir))
	}

	command := substituteCommand(op.Command)

	cmd := shellCommand(command)
	cmd.Dir = ctx.ConfigDir
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	returnCode := -1
	if cmd.ProcessState != nil {
		returnCode = cmd.ProcessState.ExitCode()
	}

	e.audit.Write(auditlog.Entry{
		Level:      auditlog.LevelInfo,
		Message:    "Command: " + command,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		ReturnCode: &returnCode,
	})

	if runErr != nil && cmd.ProcessState == nil {
		// The shell itself could not be started.
		return errors.Wrapf(runErr, errors.ErrOpCommand, "could not run command: %s", command)
	}
	if returnCode != 0 {
		return errors.Newf(errors.ErrOpCommand, "command failed with code %d: %s", returnCode, command)
	}
	return nil
}

// substituteCommand applies the platform substitution rule: the conventional
// install script invocation gets its windows equivalent when running there.
func substituteCommand(command string) string {
	if runtime.GOOS == "windows" && strings.TrimSpace(command) == "bash install.sh" {
		return "cmd /c install.bat"
	}
	return command
}

func shellCommand(command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.Command("cmd", "/c", command)
	}
	return exec.Command("sh", "-c", command)
}
