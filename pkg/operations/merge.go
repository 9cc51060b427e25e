package operations

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/paths"
	"github.com/arthur-debert/modinstall/pkg/types"
)

// mergeDir merges the immediate subdirectories of the source into
// same-named subdirectories of the install dir, file by file. Existing
// destination files are skipped (and reported) unless the run is forced.
// Merged subdirectories are treated as shared and never tracked for
// rollback.
func (e *Executor) mergeDir(ctx *types.ExecutionContext, op types.Operation) error {
	src := paths.ResolveSource(ctx, op)

	entries, err := e.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOpSourceMissing, "source directory not found: %s", src)
	}

	var merged, skipped []string
	for _, subdir := range entries {
		if !subdir.IsDir() {
			continue
		}

		targetSubdir := filepath.Join(ctx.InstallDir, subdir.Name())
		if err := e.fs.MkdirAll(targetSubdir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrOpMerge, "could not create directory %s", targetSubdir)
		}

		files, err := e.fs.ReadDir(filepath.Join(src, subdir.Name()))
		if err != nil {
			return errors.Wrapf(err, errors.ErrOpMerge, "could not read directory %s", filepath.Join(src, subdir.Name()))
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			rel := filepath.Join(subdir.Name(), f.Name())
			dst := filepath.Join(targetSubdir, f.Name())
			if e.exists(dst) && !ctx.Force {
				skipped = append(skipped, rel)
				continue
			}
			if err := e.copyOne(filepath.Join(src, rel), dst); err != nil {
				return err
			}
			merged = append(merged, rel)
		}
	}

	mergedList := strings.Join(merged, ", ")
	if mergedList == "" {
		mergedList = "no files"
	}
	e.audit.Infof("Merged %s: %s", filepath.Base(src), mergedList)

	if len(skipped) > 0 {
		pterm.Printf("  Skipped %d existing file(s): %s\n", len(skipped), strings.Join(skipped, ", "))
		pterm.Println("  Hint: use --force to overwrite existing files")
	}
	return nil
}

// mergeJSON merges the source JSON document into the target, optionally at
// a dotted key path. At the merge point, two objects are shallow-merged
// with source keys winning; any other pairing replaces the value wholesale.
// The target is tracked for rollback only when it did not exist before.
func (e *Executor) mergeJSON(ctx *types.ExecutionContext, op types.Operation) error {
	src := paths.ResolveSource(ctx, op)
	dst := paths.ResolveTarget(ctx, op)

	if !e.exists(src) {
		return errors.Newf(errors.ErrOpSourceMissing, "source JSON not found: %s", src)
	}

	srcData, err := e.loadJSON(src)
	if err != nil {
		return err
	}

	if err := e.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrOpMerge, "could not create parent of %s", dst)
	}

	var dstData interface{} = map[string]interface{}{}
	if e.exists(dst) {
		if dstData, err = e.loadJSON(dst); err != nil {
			return err
		}
	} else {
		ctx.RecordCreated(dst)
	}

	if op.MergeKey != "" {
		dstMap, ok := dstData.(map[string]interface{})
		if !ok {
			dstMap = map[string]interface{}{}
		}
		if err := mergeAtKey(dstMap, strings.Split(op.MergeKey, "."), srcData); err != nil {
			return err
		}
		dstData = dstMap
	} else {
		dstData = mergeValues(dstData, srcData)
	}

	encoded, err := json.MarshalIndent(dstData, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrOpMerge, "could not encode %s", dst)
	}
	if err := e.fs.WriteFile(dst, append(encoded, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrOpMerge, "could not write %s", dst)
	}

	key := op.MergeKey
	if key == "" {
		key = "root"
	}
	e.audit.Infof("Merged JSON %s -> %s (key: %s)", src, dst, key)
	return nil
}

func (e *Executor) loadJSON(path string) (interface{}, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrOpMerge, "could not read %s", path)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrapf(err, errors.ErrOpMerge, "invalid JSON in %s", path)
	}
	return v, nil
}

// mergeAtKey walks keys into dst, creating missing intermediate objects,
// and merges src at the leaf. An intermediate that already holds a
// non-object value fails the merge rather than clobbering it.
func mergeAtKey(dst map[string]interface{}, keys []string, src interface{}) error {
	target := dst
	for _, key := range keys[:len(keys)-1] {
		switch v := target[key].(type) {
		case map[string]interface{}:
			target = v
		case nil:
			next := map[string]interface{}{}
			target[key] = next
			target = next
		default:
			return errors.Newf(errors.ErrOpMerge,
				"merge key %q passes through non-object value at %q", strings.Join(keys, "."), key)
		}
	}

	last := keys[len(keys)-1]
	target[last] = mergeValues(target[last], src)
	return nil
}

// mergeValues shallow-merges two JSON objects with src keys winning, and
// replaces wholesale for any other pairing.
func mergeValues(dst, src interface{}) interface{} {
	srcMap, srcOK := src.(map[string]interface{})
	dstMap, dstOK := dst.(map[string]interface{})
	if !srcOK || !dstOK {
		return src
	}

	merged := make(map[string]interface{}, len(dstMap)+len(srcMap))
	for k, v := range dstMap {
		merged[k] = v
	}
	for k, v := range srcMap {
		merged[k] = v
	}
	return merged
}
