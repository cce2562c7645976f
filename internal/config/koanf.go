package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	// ErrConfigNotFound is returned when an explicitly named file is
	// missing.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidTOML is returned when a TOML file cannot be parsed.
	ErrInvalidTOML = errors.New("invalid TOML")

	// ErrInvalidPermissions is returned when a file has insecure permissions.
	ErrInvalidPermissions = errors.New("config file has insecure permissions")
)

// KoanfLoader loads generator options from multiple sources using koanf.
// Precedence order (highest to lowest):
// 1. CLI Flags
// 2. Environment Variables (MARIABRIDGE_*)
// 3. mariabridge.toml in the working directory
// 4. Defaults
type KoanfLoader struct {
	k       *koanf.Koanf
	workDir string
	environ func() []string
}

// LoaderOption configures a KoanfLoader.
type LoaderOption func(*KoanfLoader)

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(fn func() []string) LoaderOption {
	return func(l *KoanfLoader) {
		if fn != nil {
			l.environ = fn
		}
	}
}

// NewKoanfLoader creates a KoanfLoader for the current working directory.
func NewKoanfLoader(opts ...LoaderOption) (*KoanfLoader, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return NewKoanfLoaderWithDir(workDir, opts...), nil
}

// NewKoanfLoaderWithDir creates a KoanfLoader rooted at workDir (for testing).
func NewKoanfLoaderWithDir(workDir string, opts ...LoaderOption) *KoanfLoader {
	l := &KoanfLoader{
		k:       koanf.New("."),
		workDir: workDir,
		environ: os.Environ,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads and validates the options.
// Defaults → mariabridge.toml → Env Vars → CLI Flags
func (l *KoanfLoader) Load(flags map[string]any) (*Options, error) {
	opts, err := l.LoadWithoutValidation(flags)
	if err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(opts); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return opts, nil
}

// LoadWithoutValidation loads options without running validation.
func (l *KoanfLoader) LoadWithoutValidation(flags map[string]any) (*Options, error) {
	l.k = koanf.New(".")

	// 1. Defaults (lowest priority)
	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	// 2. mariabridge.toml
	if err := l.loadTOMLFile(l.OptionsPath()); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load options file")
	}

	// 3. Environment variables: MARIABRIDGE_*
	if err := l.k.Load(l.envProvider("", envTransform), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	// 4. CLI flags (highest priority)
	if len(flags) > 0 {
		if err := l.k.Load(confmap.Provider(flagsToConfig(flags), "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var opts Options
	if err := l.k.UnmarshalWithConf("", &opts, unmarshalConf(&opts)); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &opts, nil
}

// OptionsPath returns the path of the options file.
func (l *KoanfLoader) OptionsPath() string {
	return filepath.Join(l.workDir, OptionsFile)
}

// HasOptionsFile reports whether the options file exists.
func (l *KoanfLoader) HasOptionsFile() bool {
	return fileExists(l.OptionsPath())
}

// envProvider reads MARIABRIDGE_<sub>* variables.
func (l *KoanfLoader) envProvider(sub string, transform func(string, string) (string, any)) *env.Env {
	return env.Provider(".", env.Opt{
		Prefix:        EnvPrefix + sub,
		TransformFunc: transform,
		EnvironFunc:   l.environ,
	})
}

// loadTOMLFile loads a TOML file into l.k after the permission check.
func (l *KoanfLoader) loadTOMLFile(path string) error {
	if err := checkPermissions(path); err != nil {
		return err
	}

	if err := l.k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
		return errors.Wrapf(errors.Mark(err, ErrInvalidTOML), "%s", path)
	}

	return nil
}

// checkPermissions rejects world-writable files.
func checkPermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.Mode().Perm()&0o002 != 0 {
		return errors.Wrapf(
			ErrInvalidPermissions,
			"%s is world-writable (mode: %s)",
			path,
			info.Mode().Perm(),
		)
	}

	return nil
}

// envTransform maps MARIABRIDGE_OUT_DIR to out_dir. Option keys are flat,
// so underscores are kept.
func envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)

	if strings.HasPrefix(key, "log_") && key != "log_level" {
		// Runtime-only variables such as MARIABRIDGE_LOG_FILE.
		return "", nil
	}

	return key, value
}

// flagsToConfig converts CLI flags to a configuration map. Flags use dashes
// where keys use underscores.
func flagsToConfig(flags map[string]any) map[string]any {
	result := make(map[string]any, len(flags))

	for key, value := range flags {
		switch key {
		case "out-dir", "package", "mode", "log-level":
			if s, ok := value.(string); ok && s != "" {
				result[strings.ReplaceAll(key, "-", "_")] = s
			}
		case "cflags", "manifests":
			if list, ok := value.([]string); ok && len(list) > 0 {
				result[key] = list
			}
		case "static":
			if b, ok := value.(bool); ok && b {
				result["mode"] = string(ModeStatic)
			}
		}
	}

	return result
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
