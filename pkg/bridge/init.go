package bridge

import (
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
)

type pluginState struct {
	loaded atomic.Bool
}

// configureLogging installs the process logger from the runtime options.
// Only the first plugin initialized in a process does anything.
func configureLogging(source string) {
	rt, err := config.LoadRuntime()
	if err != nil {
		logger.Default().Warn("ignoring runtime options", "error", err)

		rt = config.DefaultRuntime()
	}

	applied, err := logger.Configure(logger.Options{
		Source: source,
		Level:  rt.Log.Level,
		File:   rt.Log.File,
	})
	if err != nil {
		logger.Default().Warn("cannot open log file, logging to stderr", "file", rt.Log.File, "error", err)
	}

	if applied {
		logger.Default().Debug("logger configured", "level", rt.Log.Level, "file", rt.Log.File)
	}
}

// WrapInit runs when the server loads p. arg is the plugin init argument:
// the host handlerton for storage engines, unused otherwise. It returns 0
// on success and 1 on failure, as the loader expects.
func WrapInit(p *Plugin, arg unsafe.Pointer) (rc int32) {
	configureLogging(p.Name())

	log := logger.Default()

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if IsABI(r) {
			panic(r)
		}

		log.Error("failed to load plugin "+p.Name(), "panic", r)

		rc = 1
	}()

	if p.Storage != nil && arg != nil {
		p.Storage.Init((*abi.Handlerton)(arg))
	}

	if err := initialize(p.Init); err != nil {
		log.Error("failed to load plugin "+p.Name(), "error", err)

		return 1
	}

	p.state.loaded.Store(true)
	log.Info("loaded plugin " + p.Name())

	return 0
}

// WrapDeinit runs when the server unloads p.
func WrapDeinit(p *Plugin, _ unsafe.Pointer) (rc int32) {
	log := logger.Default()

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if IsABI(r) {
			panic(r)
		}

		log.Error("failed to unload plugin "+p.Name(), "panic", r)

		rc = 1
	}()

	p.state.loaded.Store(false)

	if p.Init != nil {
		if err := p.Init.Deinit(); err != nil {
			log.Error("failed to unload plugin "+p.Name(), "error", err)

			return 1
		}
	}

	log.Info("unloaded plugin " + p.Name())

	return 0
}

func initialize(i plugin.Initializer) error {
	if i == nil {
		return nil
	}

	return errors.Wrap(i.Init(), "init")
}
