package operations_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
	"github.com/arthur-debert/modinstall/pkg/filesystem"
	"github.com/arthur-debert/modinstall/pkg/operations"
	"github.com/arthur-debert/modinstall/pkg/testutil"
	"github.com/arthur-debert/modinstall/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRun builds an executor with a fresh install dir, config dir, and
// audit log.
func newTestRun(t *testing.T) (*operations.Executor, *types.ExecutionContext) {
	t.Helper()
	root := t.TempDir()
	ctx := &types.ExecutionContext{
		InstallDir: testutil.CreateDir(t, root, "install"),
		ConfigDir:  testutil.CreateDir(t, root, "config"),
		LogFile:    filepath.Join(root, "install.log"),
	}
	exec := operations.NewExecutor(filesystem.NewOS(), auditlog.New(ctx.LogFile))
	return exec, ctx
}

func TestCopyDirCreatesAndTracks(t *testing.T) {
	exec, ctx := newTestRun(t)
	testutil.CreateFile(t, ctx.ConfigDir, "payload/a.txt", "alpha")
	testutil.CreateFile(t, ctx.ConfigDir, "payload/sub/b.txt", "beta")

	outcome := exec.Execute(ctx, types.Operation{
		Type: types.OpCopyDir, Source: "payload", Target: "payload",
	})

	require.Equal(t, types.StatusSuccess, outcome.Status)
	dst := filepath.Join(ctx.InstallDir, "payload")
	testutil.AssertFileContent(t, filepath.Join(dst, "a.txt"), "alpha")
	testutil.AssertFileContent(t, filepath.Join(dst, "sub", "b.txt"), "beta")
	assert.Equal(t, []string{dst}, ctx.AppliedPaths)
}

func TestCopyDirMergesIntoExistingTarget(t *testing.T) {
	exec, ctx := newTestRun(t)
	testutil.CreateFile(t, ctx.ConfigDir, "payload/a.txt", "new")
	testutil.CreateFile(t, ctx.InstallDir, "payload/a.txt", "old")
	testutil.CreateFile(t, ctx.InstallDir, "payload/keep.txt", "kept")

	outcome := exec.Execute(ctx, types.Operation{
		Type: types.OpCopyDir, Source: "payload", Target: "payload",
	})

	require.Equal(t, types.StatusSuccess, outcome.Status)
	dst := filepath.Join(ctx.InstallDir, "payload")
	testutil.AssertFileContent(t, filepath.Join(dst, "a.txt"), "new")
	testutil.AssertFileContent(t, filepath.Join(dst, "keep.txt"), "kept")
	// The tree existed before the call, so nothing is tracked for rollback.
	assert.Empty(t, ctx.AppliedPaths)
}

func TestCopyDirMissingSource(t *testing.T) {
	exec, ctx := newTestRun(t)

	outcome := exec.Execute(ctx, types.Operation{
		Type: types.OpCopyDir, Source: "absent", Target: "absent",
	})

	assert.Equal(t, types.StatusFailed, outcome.Status)
	assert.Contains(t, outcome.Error, "source directory not found")
	assert.Empty(t, ctx.AppliedPaths)
}

func TestCopyFileCreatesAndTracks(t *testing.T) {
	exec, ctx := newTestRun(t)
	testutil.CreateFile(t, ctx.ConfigDir, "a.txt", "alpha")

	outcome := exec.Execute(ctx, types.Operation{
		Type: types.OpCopyFile, Source: "a.txt", Target: "bin/a.txt",
	})

	require.Equal(t, types.StatusSuccess, outcome.Status)
	dst := filepath.Join(ctx.InstallDir, "bin", "a.txt")
	testutil.AssertFileContent(t, dst, "alpha")
	assert.Equal(t, []string{dst}, ctx.AppliedPaths)
}

func TestCopyFileSkipsExistingWithoutForce(t *testing.T) {
	exec, ctx := newTestRun(t)
	testutil.CreateFile(t, ctx.ConfigDir, "a.txt", "new")
	dst := testutil.CreateFile(t, ctx.InstallDir, "a.txt", "old")

	outcome := exec.Execute(ctx, types.Operation{
		Type: types.OpCopyFile, Source: "a.txt", Target: "a.txt",
	})

	// A skip is a success outcome, not a failure.
	require.Equal(t, types.StatusSuccess, outcome.Status)
	assert.Empty(t, outcome.Error)
	testutil.AssertFileContent(t, dst, "old")
	assert.Empty(t, ctx.AppliedPaths)
	assert.Contains(t, testutil.ReadFile(t, ctx.LogFile), "Skip existing file")
}

func TestCopyFileForceOverwrites(t *testing.T) {
	exec, ctx := newTestRun(t)
	ctx.Force = true
	testutil.CreateFile(t, ctx.ConfigDir, "a.txt", "new")
	dst := testutil.CreateFile(t, ctx.InstallDir, "a.txt", "old")

	outcome := exec.Execute(ctx, types.Operation{
		Type: types.OpCopyFile, Source: "a.txt", Target: "a.txt",
	})

	require.Equal(t, types.StatusSuccess, outcome.Status)
	testutil.AssertFileContent(t, dst, "new")
	// Overwritten pre-existing targets are never tracked.
	assert.Empty(t, ctx.AppliedPaths)
}

func TestCopyFileMissingSource(t *testing.T) {
	exec, ctx := newTestRun(t)

	outcome := exec.Execute(ctx, types.Operation{
		Type: types.OpCopyFile, Source: "absent.txt", Target: "absent.txt",
	})

	assert.Equal(t, types.StatusFailed, outcome.Status)
	assert.Contains(t, outcome.Error, "source file not found")
}

func TestCopyFilePreservesMode(t *testing.T) {
	exec, ctx := newTestRun(t)
	src := testutil.CreateFile(t, ctx.ConfigDir, "run.sh", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(src, 0755))

	outcome := exec.Execute(ctx, types.Operation{
		Type: types.OpCopyFile, Source: "run.sh", Target: "run.sh",
	})

	require.Equal(t, types.StatusSuccess, outcome.Status)
	info, err := os.Stat(filepath.Join(ctx.InstallDir, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
