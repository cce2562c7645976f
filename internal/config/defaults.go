// Package config loads the generator options, plugin manifests and the
// runtime options a plugin reads when the server loads it.
package config

import (
	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

// BuildMode selects how generated plugins are linked.
type BuildMode string

// Build modes.
const (
	// ModeDynamic builds a shared library loaded with INSTALL PLUGIN.
	ModeDynamic BuildMode = "dynamic"
	// ModeStatic builds an archive linked into the server.
	ModeStatic BuildMode = "static"
)

// Valid reports whether m is a known mode.
func (m BuildMode) Valid() bool { return m == ModeDynamic || m == ModeStatic }

const (
	// OptionsFile is the generator options file looked up in the working
	// directory.
	OptionsFile = "mariabridge.toml"

	// ManifestFile is the default plugin manifest name.
	ManifestFile = "mariadb-plugin.toml"

	// EnvPrefix prefixes every environment variable the loaders read.
	EnvPrefix = "MARIABRIDGE_"

	defaultOutDir  = "mariabridge_gen"
	defaultPackage = "main"
)

// Options are the code generator settings.
type Options struct {
	// OutDir receives the generated files, relative to the manifest.
	OutDir string `json:"out_dir" koanf:"out_dir" toml:"out_dir"`

	// Package is the Go package name of the generated registration.
	Package string `json:"package" koanf:"package" toml:"package"`

	// CFlags are added to the #cgo CFLAGS line, usually -I for the server
	// headers.
	CFlags []string `json:"cflags,omitempty" koanf:"cflags" toml:"cflags,omitempty"`

	Mode BuildMode `json:"mode" koanf:"mode" toml:"mode"`

	// Manifests are doublestar globs selecting the manifests to process.
	Manifests []string `json:"manifests" koanf:"manifests" toml:"manifests"`

	LogLevel logger.Level `json:"log_level" koanf:"log_level" toml:"log_level"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() *Options {
	return &Options{
		OutDir:    defaultOutDir,
		Package:   defaultPackage,
		Mode:      ModeDynamic,
		Manifests: []string{ManifestFile},
		LogLevel:  logger.LevelInfo,
	}
}

// defaultsToMap converts DefaultOptions to a map for koanf loading.
func defaultsToMap() map[string]any {
	d := DefaultOptions()

	return map[string]any{
		"out_dir":   d.OutDir,
		"package":   d.Package,
		"mode":      string(d.Mode),
		"manifests": d.Manifests,
		"log_level": d.LogLevel.String(),
	}
}
