package main

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/smykla-skalski/mariabridge/internal/codegen"
	"github.com/smykla-skalski/mariabridge/internal/config"
)

// ErrStale is returned by generate --check when files need regenerating.
var ErrStale = errors.New("generated files are out of date")

var checkFlag bool

var generateCmd = &cobra.Command{
	Use:   "generate [MANIFEST...]",
	Short: "Generate the plugin library sources",
	Long: `Generate the C records and Go registration of each manifest.

Manifests are paths, directories or doublestar patterns such as
"plugins/**/mariadb-plugin.toml"; without arguments the manifests option of
mariabridge.toml is used. Files are written to <out_dir> next to each
manifest and only rewritten when their content changes.

Use --check to compare instead of writing. Any difference is printed as a
unified diff and the command fails.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("out-dir", "", "Output directory, relative to each manifest")
	generateCmd.Flags().String("package", "", "Go package name of the generated registration")
	generateCmd.Flags().String("mode", "", "Build mode (dynamic, static)")
	generateCmd.Flags().Bool("static", false, "Shorthand for --mode static")
	generateCmd.Flags().StringSlice("cflags", nil, "Extra #cgo CFLAGS, usually -I for the server headers")
	generateCmd.Flags().BoolVar(&checkFlag, "check", false, "Fail if the generated files are out of date")
}

type generated struct {
	outDir  string
	written []string
	diff    string
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args)
	if err != nil {
		return err
	}

	paths, err := findManifests(opts.Manifests)
	if err != nil {
		return err
	}

	results := make([]generated, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			res, err := generateOne(ctx, opts, path)
			if err != nil {
				return errors.Wrapf(err, "%s", path)
			}

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stale := 0

	for _, res := range results {
		switch {
		case checkFlag && res.diff != "":
			stale++

			fmt.Fprint(out, res.diff)
		case checkFlag:
			fmt.Fprintf(out, "%s: up to date\n", res.outDir)
		case len(res.written) == 0:
			fmt.Fprintf(out, "%s: unchanged\n", res.outDir)
		default:
			for _, name := range res.written {
				fmt.Fprintf(out, "wrote %s\n", filepath.Join(res.outDir, name))
			}
		}
	}

	if stale > 0 {
		return errors.Wrapf(ErrStale, "%d of %d libraries, run mariabridge generate", stale, len(results))
	}

	return nil
}

func generateOne(ctx context.Context, opts *config.Options, path string) (generated, error) {
	if err := ctx.Err(); err != nil {
		return generated{}, err
	}

	manifest, err := config.LoadManifest(path)
	if err != nil {
		return generated{}, err
	}

	dir := filepath.Dir(path)

	importPath, err := codegen.ImportPath(dir)
	if err != nil {
		return generated{}, err
	}

	files, err := codegen.Generate(&codegen.Input{
		Manifest:   manifest,
		ImportPath: importPath,
		Package:    opts.Package,
		CFlags:     opts.CFlags,
		Mode:       opts.Mode,
	})
	if err != nil {
		return generated{}, err
	}

	res := generated{outDir: filepath.Join(dir, opts.OutDir)}

	log.Debug("generating", "manifest", path, "package", importPath, "plugins", len(manifest.Plugins))

	if checkFlag {
		res.diff, err = codegen.Diff(res.outDir, files)

		return res, err
	}

	res.written, err = codegen.Write(res.outDir, files)

	return res, err
}
