package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/internal/schema"
)

var (
	schemaOptions bool
	schemaCompact bool
	schemaDir     string
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of mariadb-plugin.toml",
	Long: `Print the JSON Schema of the plugin manifest, or of mariabridge.toml with
--options. With --dir both versioned schema files are written to the
directory instead, for editors that resolve #:schema directives.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolVar(&schemaOptions, "options", false, "Print the options schema")
	schemaCmd.Flags().BoolVar(&schemaCompact, "compact", false, "Print without indentation")
	schemaCmd.Flags().StringVar(&schemaDir, "dir", "", "Write both schema files to this directory")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if schemaDir != "" {
		paths, err := writeSchemas(schemaDir)
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}

		return err
	}

	generate := schema.GenerateJSON
	if schemaOptions {
		generate = schema.GenerateOptionsJSON
	}

	data, err := generate(!schemaCompact)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return errors.Wrap(err, "failed to write schema")
}

func writeSchemas(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, config.GeneratedDirMode); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}

	files := []struct {
		name     string
		generate func(bool) ([]byte, error)
	}{
		{schema.Filename(), schema.GenerateJSON},
		{schema.OptionsFilename(), schema.GenerateOptionsJSON},
	}

	written := make([]string, 0, len(files))

	for _, f := range files {
		data, err := f.generate(true)
		if err != nil {
			return written, err
		}

		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, data, config.ConfigFileMode); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", path)
		}

		written = append(written, path)
	}

	return written, nil
}
