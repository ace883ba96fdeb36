package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tickmd/internal/checklist"
)

// Load reads the checklist document at path. A missing file is an empty
// checklist.
func Load(path string) (*checklist.Checklist, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return checklist.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checklist: %w", err)
	}
	c, err := checklist.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Dump writes the checklist to path through a temp file and rename, so a
// crash never leaves a half-written document behind. When path is a symlink
// the link target is rewritten, and an existing file keeps its permissions.
func Dump(path string, c *checklist.Checklist) error {
	target, mode, err := resolveTarget(path)
	if err != nil {
		return fmt.Errorf("write checklist: %w", err)
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write checklist: %w", err)
	}

	body := c.Serialize()
	if body != "" {
		body += "\n"
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("write checklist: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		os.Remove(tmpName)
		return fmt.Errorf("write checklist: %w", err)
	}
	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fail(err)
	}
	return nil
}

// resolveTarget follows symlinks at path and returns the file to replace
// along with the mode to give it. A missing file gets 0644.
func resolveTarget(path string) (string, os.FileMode, error) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", 0, err
	}
	info, err := os.Stat(target)
	if errors.Is(err, os.ErrNotExist) {
		return target, 0o644, nil
	}
	if err != nil {
		return "", 0, err
	}
	return target, info.Mode().Perm(), nil
}
