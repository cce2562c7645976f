// Package main provides the mariabridge command: it validates plugin
// manifests, generates the C records and Go registration of a plugin
// library, and checks built libraries against the server's loader.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

const (
	// ExitCodeOK is returned when the command succeeded.
	ExitCodeOK = 0

	// ExitCodeError is returned for any failure not covered below.
	ExitCodeError = 1

	// ExitCodeABI is returned when a library or manifest would be rejected
	// by the server's loader.
	ExitCodeABI = 2

	// ExitCodeCrash indicates an unexpected panic.
	ExitCodeCrash = 3
)

var (
	logLevel string

	// log is the command logger, set up in PersistentPreRunE.
	log logger.Logger = logger.NewNoOpLogger()
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, debug.Stack())

			exitCode = ExitCodeCrash
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if bridge.IsABI(err) {
			return ExitCodeABI
		}

		return ExitCodeError
	}

	return ExitCodeOK
}

var rootCmd = &cobra.Command{
	Use:   "mariabridge",
	Short: "Build MariaDB plugins in Go",
	Long: `mariabridge turns a Go package and its mariadb-plugin.toml manifest into a
plugin library the MariaDB server can load.

The manifest declares each plugin: its type, the Go types implementing it,
its metadata and its system variables. "mariabridge generate" writes the C
records and registration code next to the package; "go build -buildmode=c-shared"
then produces the library.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		checkVersionFlag()

		return setupLogger()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"Log level (debug, info, warn, error); default from mariabridge.toml or info",
	)
}

func setupLogger() error {
	level := logger.LevelWarn

	if logLevel != "" {
		parsed, err := logger.LevelString(logLevel)
		if err != nil {
			return errors.Wrapf(err, "invalid --log-level %q", logLevel)
		}

		level = parsed
	}

	log = logger.NewWriterLogger(os.Stderr, "mariabridge", level)

	return nil
}
