package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

// Runtime are the options a plugin reads from its environment the first
// time the server initializes it.
type Runtime struct {
	Log LogOptions `json:"log" koanf:"log"`
}

// LogOptions configure the process logger.
type LogOptions struct {
	Level logger.Level `json:"level" koanf:"level"`
	// File receives log lines instead of the server error log.
	File string `json:"file" koanf:"file"`
}

// DefaultRuntime returns the runtime options used when the environment sets
// nothing.
func DefaultRuntime() *Runtime {
	return &Runtime{Log: LogOptions{Level: logger.LevelInfo}}
}

// LoadRuntime reads MARIABRIDGE_LOG_LEVEL and MARIABRIDGE_LOG_FILE from the
// process environment.
func LoadRuntime() (*Runtime, error) {
	return LoadRuntimeFrom(os.Environ)
}

// LoadRuntimeFrom is LoadRuntime over environ.
func LoadRuntimeFrom(environ func() []string) (*Runtime, error) {
	l := NewKoanfLoaderWithDir("", WithEnviron(environ))
	l.k = koanf.New(".")

	d := DefaultRuntime()
	defaults := map[string]any{
		"log.level": d.Log.Level.String(),
		"log.file":  d.Log.File,
	}

	if err := l.k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if err := l.k.Load(l.envProvider("LOG_", runtimeEnvTransform), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	var rt Runtime
	if err := l.k.UnmarshalWithConf("", &rt, unmarshalConf(&rt)); err != nil {
		return nil, errors.Wrap(errors.Mark(err, ErrInvalidConfig), "runtime options")
	}

	return &rt, nil
}

// runtimeEnvTransform maps MARIABRIDGE_LOG_LEVEL to log.level.
func runtimeEnvTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	switch key {
	case "log_level", "log_file":
		return strings.Replace(key, "_", ".", 1), value
	default:
		return "", nil
	}
}
