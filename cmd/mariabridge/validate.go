package main

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/mariabridge/internal/codegen"
	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/internal/report"
)

// ErrInvalidManifests is returned when at least one manifest fails.
var ErrInvalidManifests = errors.New("manifest validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [MANIFEST...]",
	Short: "Check plugin manifests",
	Long: `Check that each manifest parses, that every declaration is complete and
that a library can be generated from it. Manifests are selected like in
"mariabridge generate".`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args)
	if err != nil {
		return err
	}

	paths, err := findManifests(opts.Manifests)
	if err != nil {
		return err
	}

	var (
		rows   [][]string
		failed int
	)

	for _, path := range paths {
		n, err := validateOne(opts, path)
		if err != nil {
			failed++

			log.Warn("invalid manifest", "path", path, "error", err)

			rows = append(rows, []string{report.Mark(false), path, err.Error()})

			continue
		}

		rows = append(rows, []string{report.Mark(true), path, fmt.Sprintf("%d plugin(s)", n)})
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Table([]string{"", "Manifest", "Result"}, rows))

	if failed > 0 {
		return errors.Wrapf(ErrInvalidManifests, "%d of %d", failed, len(paths))
	}

	return nil
}

func validateOne(opts *config.Options, path string) (int, error) {
	manifest, err := config.LoadManifest(path)
	if err != nil {
		return 0, err
	}

	importPath, err := codegen.ImportPath(filepath.Dir(path))
	if err != nil {
		// Generation only needs a path to import; a manifest outside a
		// module is still checked.
		log.Debug("no enclosing module", "manifest", path, "error", err)

		importPath = "plugin"
	}

	_, err = codegen.Generate(&codegen.Input{
		Manifest:   manifest,
		ImportPath: importPath,
		Package:    opts.Package,
		Mode:       opts.Mode,
	})

	return len(manifest.Plugins), err
}
