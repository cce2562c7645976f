package main

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

// ErrNoManifests is returned when the manifest patterns match nothing.
var ErrNoManifests = errors.New("no manifests found")

// loadOptions merges mariabridge.toml, MARIABRIDGE_* variables and the
// flags the user set. Positional arguments replace the manifest patterns.
func loadOptions(cmd *cobra.Command, args []string) (*config.Options, error) {
	loader, err := config.NewKoanfLoader()
	if err != nil {
		return nil, err
	}

	flags := map[string]any{}

	for _, name := range []string{"out-dir", "package", "mode", "log-level"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			flags[name] = f.Value.String()
		}
	}

	if f := cmd.Flags().Lookup("cflags"); f != nil && f.Changed {
		cflags, _ := cmd.Flags().GetStringSlice("cflags")
		flags["cflags"] = cflags
	}

	if f := cmd.Flags().Lookup("static"); f != nil && f.Changed {
		static, _ := cmd.Flags().GetBool("static")
		flags["static"] = static
	}

	if len(args) > 0 {
		flags["manifests"] = args
	}

	opts, err := loader.Load(flags)
	if err != nil {
		return nil, err
	}

	if logLevel == "" {
		log = logger.NewWriterLogger(os.Stderr, "mariabridge", opts.LogLevel)
	}

	if loader.HasOptionsFile() {
		log.Debug("loaded options", "path", loader.OptionsPath())
	}

	return opts, nil
}

// findManifests expands patterns into a sorted list of manifest paths. A
// pattern naming a directory selects the manifest inside it.
func findManifests(patterns []string) ([]string, error) {
	var paths []string

	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			pattern = filepath.Join(pattern, config.ManifestFile)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "bad manifest pattern %q", pattern)
		}

		if len(matches) == 0 {
			return nil, errors.Wrapf(ErrNoManifests, "%s", pattern)
		}

		paths = append(paths, matches...)
	}

	slices.Sort(paths)

	return slices.Compact(paths), nil
}
