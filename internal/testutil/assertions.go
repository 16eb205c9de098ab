package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/trane-courses/internal/builder"
	"github.com/stretchr/testify/require"
)

// RequireViolations asserts that err is a *builder.ValidationError and
// returns its violations.
func RequireViolations(t *testing.T, err error) []builder.Violation {
	t.Helper()
	var verr *builder.ValidationError
	require.ErrorAs(t, err, &verr, "expected a validation error, got %v", err)
	return verr.Violations
}

// FindViolations returns the violations reported for path with the given
// constraint.
func FindViolations(violations []builder.Violation, path string, constraint builder.Constraint) []builder.Violation {
	var found []builder.Violation
	for _, v := range violations {
		if v.Path == path && v.Constraint == constraint {
			found = append(found, v)
		}
	}
	return found
}

// AssertViolation checks that a violation with the given path and constraint
// was reported and returns it.
func AssertViolation(t *testing.T, violations []builder.Violation, path string, constraint builder.Constraint) builder.Violation {
	t.Helper()
	found := FindViolations(violations, path, constraint)
	require.NotEmpty(t, found, "expected a %q violation for %s, got:\n%v", constraint, path, violations)
	return found[0]
}

// ReadFile returns the contents of a slash-separated path below root.
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// SnapshotDir reads every regular file below dir into a map keyed by
// slash-separated relative path.
func SnapshotDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	snap := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		snap[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return snap
}
