package codegen

import (
	"os"
	"path"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"
)

// ErrNoModule is returned when no go.mod encloses a manifest.
var ErrNoModule = errors.New("no go.mod found")

// ImportPath returns the import path of the package in dir, derived from the
// nearest enclosing go.mod.
func ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}

	for root := abs; ; {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))

		switch {
		case err == nil:
			mod := modfile.ModulePath(data)
			if mod == "" {
				return "", errors.Newf("%s has no module directive", filepath.Join(root, "go.mod"))
			}

			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", errors.Wrap(err, "failed to relate package to module root")
			}

			if rel == "." {
				return mod, nil
			}

			return path.Join(mod, filepath.ToSlash(rel)), nil
		case !os.IsNotExist(err):
			return "", errors.Wrap(err, "failed to read go.mod")
		}

		parent := filepath.Dir(root)
		if parent == root {
			return "", errors.Wrapf(ErrNoModule, "above %s", abs)
		}

		root = parent
	}
}
