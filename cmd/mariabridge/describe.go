package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/internal/report"
	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
)

// ErrUnknownFormat is returned for an unsupported --format.
var ErrUnknownFormat = errors.New("unknown output format")

var formatFlag string

var describeCmd = &cobra.Command{
	Use:   "describe [MANIFEST]",
	Short: "Show the plugins a manifest declares",
	Long: `Show the declarations of a manifest as the server will see them: the
encoded version, the types bound to each slot table and the system
variables with their record flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVarP(&formatFlag, "format", "o", "table", "Output format (table, yaml, json)")
}

type describedVar struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Flags   string `json:"flags" yaml:"flags"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`
}

type describedPlugin struct {
	Name        string         `json:"name" yaml:"name"`
	Type        string         `json:"type" yaml:"type"`
	TypeCode    int32          `json:"type_code" yaml:"type_code"`
	Version     string         `json:"version" yaml:"version"`
	Encoded     string         `json:"encoded_version" yaml:"encoded_version"`
	License     string         `json:"license" yaml:"license"`
	LicenseCode int32          `json:"license_code" yaml:"license_code"`
	Maturity    string         `json:"maturity" yaml:"maturity"`
	Author      string         `json:"author" yaml:"author"`
	Types       []string       `json:"types" yaml:"types"`
	Variables   []describedVar `json:"variables,omitempty" yaml:"variables,omitempty"`
}

func runDescribe(cmd *cobra.Command, args []string) error {
	path := config.ManifestFile
	if len(args) == 1 {
		path = args[0]
	}

	manifest, err := config.LoadManifest(path)
	if err != nil {
		return err
	}

	plugins := make([]describedPlugin, 0, len(manifest.Plugins))

	for _, entry := range manifest.Plugins {
		d, err := describe(entry.Declaration)
		if err != nil {
			return err
		}

		plugins = append(plugins, d)
	}

	return writeDescription(cmd.OutOrStdout(), plugins)
}

// describe lays decl out the way the loader reads it and reports the
// descriptor fields.
func describe(decl *plugin.Declaration) (describedPlugin, error) {
	reg, err := plugin.Build(decl)
	if err != nil {
		return describedPlugin{}, err
	}

	desc := reg.Descriptor()

	d := describedPlugin{
		Name:        abi.GoString(desc.Name),
		Type:        decl.Type.String(),
		TypeCode:    desc.Type,
		Version:     abi.GoString(desc.VersionInfo),
		Encoded:     fmt.Sprintf("0x%04x", desc.Version),
		License:     decl.License.String(),
		LicenseCode: desc.License,
		Maturity:    decl.Maturity.String(),
		Author:      abi.GoString(desc.Author),
	}

	slot := func(role, typ string) {
		if typ != "" {
			d.Types = append(d.Types, role+"="+typ)
		}
	}

	slot("main", decl.Main)
	slot("init", decl.Init)
	slot("handlerton", decl.Handlerton)
	slot("handler", decl.Handler)

	if enc, dec := decl.Ciphers(); enc != "" {
		slot("encryption", enc)
		slot("decryption", dec)
	}

	for _, v := range reg.Sysvars.Vars() {
		d.Variables = append(d.Variables, describedVar{
			Name:    v.Name,
			Type:    v.Kind.String(),
			Flags:   fmt.Sprintf("0x%04x", uint32(v.Flags())),
			Default: v.Default,
		})
	}

	return d, nil
}

func writeDescription(w io.Writer, plugins []describedPlugin) error {
	switch formatFlag {
	case "table":
		fmt.Fprintln(w, describeTable(plugins))

		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(plugins); err != nil {
			return errors.Wrap(err, "failed to encode YAML")
		}

		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(plugins), "failed to encode JSON")
	}

	return errors.Wrapf(ErrUnknownFormat, "%q", formatFlag)
}

func describeTable(plugins []describedPlugin) string {
	rows := make([][]string, 0, len(plugins))
	vars := [][]string{}

	for _, p := range plugins {
		rows = append(rows, []string{
			p.Name, p.Type, p.Version + " (" + p.Encoded + ")", p.License, p.Maturity,
			strings.Join(p.Types, "\n"),
		})

		for _, v := range p.Variables {
			def := ""
			if v.Default != nil {
				def = fmt.Sprint(v.Default)
			}

			vars = append(vars, []string{p.Name, v.Name, v.Type, v.Flags, def})
		}
	}

	out := report.Table([]string{"Plugin", "Type", "Version", "License", "Maturity", "Types"}, rows)

	if len(vars) > 0 {
		out += "\n" + report.Table([]string{"Plugin", "Variable", "Type", "Flags", "Default"}, vars)
	}

	return out
}
