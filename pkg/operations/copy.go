package operations

import (
	"io/fs"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/paths"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// copyDir recursively copies the source tree into the target, creating
// intermediate directories. An existing target is merged into: conflicting
// files are overwritten, non-conflicting files are added. The target is
// tracked for rollback only when the whole tree was newly created.
func (e *Executor) copyDir(ctx *types.ExecutionContext, op types.Operation) error {
	src := paths.ResolveSource(ctx, op)
	dst := paths.ResolveTarget(ctx, op)

	if !e.exists(src) {
		return errors.Newf(errors.ErrOpSourceMissing, "source directory not found: %s", src)
	}

	existedBefore := e.exists(dst)
	if err := e.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrOpCopy, "could not create parent of %s", dst)
	}

	if err := e.copyTree(src, dst); err != nil {
		return err
	}

	if !existedBefore {
		ctx.RecordCreated(dst)
	}
	e.audit.Infof("Copied dir %s -> %s", src, dst)
	return nil
}

// copyFile copies a single file with its permission bits. An existing
// target is a logged skip, not a failure, unless the run is forced.
func (e *Executor) copyFile(ctx *types.ExecutionContext, op types.Operation) error {
	src := paths.ResolveSource(ctx, op)
	dst := paths.ResolveTarget(ctx, op)

	if !e.exists(src) {
		return errors.Newf(errors.ErrOpSourceMissing, "source file not found: %s", src)
	}

	existedBefore := e.exists(dst)
	if existedBefore && !ctx.Force {
		e.audit.Infof("Skip existing file: %s", dst)
		pterm.Printf("  Skipped existing file: %s\n", filepath.Base(dst))
		pterm.Println("  Hint: use --force to overwrite existing files")
		return nil
	}

	if err := e.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrOpCopy, "could not create parent of %s", dst)
	}
	if err := e.copyOne(src, dst); err != nil {
		return err
	}

	if !existedBefore {
		ctx.RecordCreated(dst)
	}
	e.audit.Infof("Copied file %s -> %s", src, dst)
	return nil
}

// copyTree copies src into dst recursively, overwriting existing files.
func (e *Executor) copyTree(src, dst string) error {
	if err := e.fs.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrOpCopy, "could not create directory %s", dst)
	}

	entries, err := e.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOpCopy, "could not read directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := e.copyTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := e.copyOne(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// copyOne copies a single file, preserving its permission bits.
func (e *Executor) copyOne(src, dst string) error {
	info, err := e.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOpCopy, "could not stat %s", src)
	}

	data, err := e.fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOpCopy, "could not read %s", src)
	}

	perm := info.Mode() & fs.ModePerm
	if perm == 0 {
		perm = 0644
	}
	if err := e.fs.WriteFile(dst, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrOpCopy, "could not write %s", dst)
	}
	// WriteFile perm only applies to newly-created files; chmod covers the
	// overwrite case.
	if err := e.fs.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, errors.ErrOpCopy, "could not chmod %s", dst)
	}
	return nil
}
