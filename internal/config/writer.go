package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

const (
	// ConfigFileMode is the file mode for written options files.
	ConfigFileMode = 0o644

	// GeneratedDirMode is the file mode for generated output directories.
	GeneratedDirMode = 0o755
)

// ErrOptionsExist is returned when WriteOptions would replace an existing
// file.
var ErrOptionsExist = errors.New("options file already exists")

// Writer writes mariabridge.toml files.
type Writer struct {
	workDir string

	// directive is written as the first line, usually a Taplo #:schema
	// comment.
	directive string
}

// NewWriter creates a Writer rooted at workDir. A non-empty directive is
// written above the encoded options.
func NewWriter(workDir, directive string) *Writer {
	return &Writer{workDir: workDir, directive: directive}
}

// OptionsPath returns the path WriteOptions writes to.
func (w *Writer) OptionsPath() string {
	return filepath.Join(w.workDir, OptionsFile)
}

// WriteOptions writes opts to the options file. An existing file is only
// replaced when force is set.
func (w *Writer) WriteOptions(opts *Options, force bool) error {
	path := w.OptionsPath()

	if !force && fileExists(path) {
		return errors.Wrapf(ErrOptionsExist, "%s", path)
	}

	return w.WriteFile(path, opts)
}

// WriteFile writes opts to the given path.
func (w *Writer) WriteFile(path string, opts *Options) error {
	if opts == nil {
		return errors.Wrap(ErrInvalidConfig, "options are nil")
	}

	data, err := w.Encode(opts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, GeneratedDirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	if err := os.WriteFile(path, data, ConfigFileMode); err != nil {
		return errors.Wrapf(err, "failed to write options file %s", path)
	}

	return nil
}

// Encode renders opts as TOML.
func (w *Writer) Encode(opts *Options) ([]byte, error) {
	var buf bytes.Buffer

	if w.directive != "" {
		buf.WriteString(w.directive)
		buf.WriteByte('\n')
	}

	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)

	if err := encoder.Encode(opts); err != nil {
		return nil, errors.Wrap(err, "failed to encode options to TOML")
	}

	return buf.Bytes(), nil
}
