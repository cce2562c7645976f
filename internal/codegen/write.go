package codegen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Write stores files in dir, creating it when needed. Files whose content
// is unchanged are not rewritten. It returns the names it wrote.
func Write(dir string, files []File) ([]string, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}

	var written []string

	for _, f := range files {
		path := filepath.Join(dir, f.Name)

		if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, f.Content) {
			continue
		}

		if err := os.WriteFile(path, f.Content, filePerm); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", path)
		}

		written = append(written, f.Name)
	}

	return written, nil
}

// Diff compares files with what dir holds and returns a unified diff, or
// "" when everything is current. A missing file diffs against nothing.
func Diff(dir string, files []File) (string, error) {
	var out strings.Builder

	for _, f := range files {
		path := filepath.Join(dir, f.Name)

		old, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Wrapf(err, "failed to read %s", path)
		}

		if bytes.Equal(old, f.Content) {
			continue
		}

		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(old)),
			B:        difflib.SplitLines(string(f.Content)),
			FromFile: path,
			ToFile:   path + " (generated)",
			Context:  3,
		})
		if err != nil {
			return "", errors.Wrapf(err, "failed to diff %s", path)
		}

		out.WriteString(text)
	}

	return out.String(), nil
}
