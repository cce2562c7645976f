package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smykla-skalski/mariabridge/internal/inspect"
)

var staticName string

var inspectCmd = &cobra.Command{
	Use:   "inspect LIBRARY",
	Short: "Check a built plugin library",
	Long: `Check a built library the way the server's loader will: the registration
symbols must be defined, the interface version must match the server's
major version and the descriptor size must match the bridge's layout.

Archives built with -tags mariadb_static carry the builtin symbols of their
first plugin; name it with --static.

Exit status is 2 when the loader would reject the library.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&staticName, "static", "", "Check the builtin symbols of the named plugin")
}

func runInspect(cmd *cobra.Command, args []string) error {
	img, err := inspect.Open(args[0])
	if err != nil {
		return err
	}

	r := inspect.Inspect(img, staticName)

	log.Debug("inspected", "path", r.Path, "symbols", len(img.Symbols), "checks", len(r.Checks))

	fmt.Fprint(cmd.OutOrStdout(), r.Render())

	return r.Err()
}
