package bridge

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/logger"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

// ErrDuplicatePlugin is returned when a library registers a name twice.
var ErrDuplicatePlugin = errors.New("plugin already registered")

// Plugin is one declared plugin with its slot tables.
type Plugin struct {
	Declaration *plugin.Declaration

	// Storage is set for storage engines, Encryption for encryption
	// plugins.
	Storage    *Storage
	Encryption *EncryptionTable

	// Init is the declaration's init type, if any.
	Init plugin.Initializer

	// Vars binds the declaration's system variables to their records.
	Vars *sysvar.Table

	state pluginState
}

// Name returns the declared plugin name.
func (p *Plugin) Name() string { return p.Declaration.Name }

// Sysvars returns the bound variable table. It is never nil.
func (p *Plugin) Sysvars() *sysvar.Table {
	if p.Vars == nil {
		return sysvar.Attach(nil, nil)
	}

	return p.Vars
}

// Loaded reports whether the server has initialized p and not yet
// unloaded it.
func (p *Plugin) Loaded() bool { return p.state.loaded.Load() }

// Registry manages the plugins compiled into one library.
type Registry struct {
	mu      sync.RWMutex
	plugins []*Plugin
	logger  logger.Logger
}

// NewRegistry creates an empty registry. A nil log uses the process default
// at call time.
func NewRegistry(log logger.Logger) *Registry {
	return &Registry{logger: log}
}

func (r *Registry) log() logger.Logger {
	if r.logger != nil {
		return r.logger
	}

	return logger.Default()
}

// Register adds p after checking it matches its declaration.
func (r *Registry) Register(p *Plugin) error {
	if p == nil || p.Declaration == nil {
		return errors.New("plugin without declaration")
	}

	switch p.Declaration.Type {
	case plugin.TypeStorageEngine:
		if p.Storage == nil {
			return errors.Newf("storage engine %s has no slot tables", p.Name())
		}
	case plugin.TypeEncryption:
		if p.Encryption == nil {
			return errors.Newf("encryption plugin %s has no slot tables", p.Name())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.plugins, func(q *Plugin) bool { return q.Name() == p.Name() }) {
		return errors.Wrapf(ErrDuplicatePlugin, "plugin %s", p.Name())
	}

	if p.Storage != nil && slices.ContainsFunc(r.plugins, func(q *Plugin) bool { return q.Storage != nil }) {
		return errors.Newf("storage engine %s: only one storage engine per library is supported", p.Name())
	}

	r.plugins = append(r.plugins, p)

	r.log().Debug("registered plugin",
		"name", p.Name(),
		"type", p.Declaration.Type,
	)

	return nil
}

// MustRegister is Register for generated init code.
func (r *Registry) MustRegister(p *Plugin) {
	if err := r.Register(p); err != nil {
		Fatal(err)
	}
}

// Lookup returns the plugin called name.
func (r *Registry) Lookup(name string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p, true
		}
	}

	return nil, false
}

// At returns the plugin at position i of the declaration array.
func (r *Registry) At(i int) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i < 0 || i >= len(r.plugins) {
		return nil, false
	}

	return r.plugins[i], true
}

// Storage returns the library's storage engine.
func (r *Registry) Storage() (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Storage != nil {
			return p, true
		}
	}

	return nil, false
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.plugins)
}

// Close deinitializes every plugin still loaded and returns the first
// error.
func (r *Registry) Close() error {
	var firstErr error

	for _, p := range r.Plugins() {
		if !p.Loaded() {
			continue
		}

		if rc := WrapDeinit(p, nil); rc != 0 && firstErr == nil {
			firstErr = errors.Newf("failed to unload plugin %s", p.Name())
		}
	}

	return firstErr
}

// Default is the registry generated registration code adds to.
var Default = NewRegistry(nil)
