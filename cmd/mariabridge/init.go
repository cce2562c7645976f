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

var forceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create mariabridge.toml",
	Long: `Create mariabridge.toml in the working directory with the default generator
options, and the schema files its #:schema directive points to.

Use --force to overwrite an existing file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite an existing mariabridge.toml")
}

func runInit(cmd *cobra.Command, _ []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}

	writer := config.NewWriter(workDir, schema.SchemaDirective())

	if err := writer.WriteOptions(config.DefaultOptions(), forceFlag); err != nil {
		if errors.Is(err, config.ErrOptionsExist) {
			return errors.WithHint(err, "use --force to overwrite it")
		}

		return err
	}

	if _, err := writeSchemas(filepath.Join(workDir, "schema")); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", config.OptionsFile)

	return nil
}
