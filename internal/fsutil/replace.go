package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ReplaceDir regenerates the directory at target. fill is called with an empty
// staging directory next to target; only when it succeeds is the staging
// directory swapped into place. On any failure target is left as it was and
// the staging directory is removed.
func ReplaceDir(target string, fill func(staging string) error) (err error) {
	target = filepath.Clean(target)
	parent := filepath.Dir(target)
	base := filepath.Base(target)

	if err := os.MkdirAll(parent, dirPerm); err != nil {
		return fmt.Errorf("failed to create parent directory %s: %w", parent, err)
	}

	staging, err := os.MkdirTemp(parent, "."+base+".staging-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(staging)
		}
	}()
	if err := os.Chmod(staging, dirPerm); err != nil {
		return fmt.Errorf("failed to set permissions on staging directory: %w", err)
	}

	if err := fill(staging); err != nil {
		return err
	}

	info, statErr := os.Lstat(target)
	switch {
	case errors.Is(statErr, os.ErrNotExist):
		if err := os.Rename(staging, target); err != nil {
			return fmt.Errorf("failed to move output into place: %w", err)
		}
		return nil
	case statErr != nil:
		return fmt.Errorf("failed to inspect %s: %w", target, statErr)
	case !info.IsDir():
		return fmt.Errorf("refusing to replace %s: not a directory", target)
	}

	backup, err := os.MkdirTemp(parent, "."+base+".previous-*")
	if err != nil {
		return fmt.Errorf("failed to reserve backup name: %w", err)
	}
	// Rename needs the destination to be absent.
	if err := os.Remove(backup); err != nil {
		return fmt.Errorf("failed to reserve backup name: %w", err)
	}
	if err := os.Rename(target, backup); err != nil {
		return fmt.Errorf("failed to move previous output aside: %w", err)
	}
	if err := os.Rename(staging, target); err != nil {
		if restoreErr := os.Rename(backup, target); restoreErr != nil {
			return fmt.Errorf("failed to move output into place: %w (previous output left at %s: %v)", err, backup, restoreErr)
		}
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	if err := os.RemoveAll(backup); err != nil {
		return fmt.Errorf("failed to remove previous output %s: %w", backup, err)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CopyFile copies the regular file at src to dst, creating parent directories
// as needed.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close %s: %w", dst, closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// IsWithin reports whether path is dir itself or lies below it. Both are
// resolved to absolute paths first.
func IsWithin(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || filepath.IsLocal(rel), nil
}
