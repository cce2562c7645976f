// Package schema generates JSON Schema for plugin manifests and generator
// options.
package schema

import (
	"encoding/json"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

const (
	schemaURI = "https://json-schema.org/draft/2020-12/schema"

	manifestTitle = "mariadb-plugin.toml manifest"
	optionsTitle  = "mariabridge generator options"

	// SchemaVersion is bumped when the manifest format changes.
	SchemaVersion = "v1"
)

// Filename returns the versioned file name of the manifest schema.
func Filename() string { return "mariadb-plugin." + SchemaVersion + ".schema.json" }

// OptionsFilename returns the versioned file name of the options schema.
func OptionsFilename() string { return "mariabridge." + SchemaVersion + ".schema.json" }

// SchemaDirective returns the Taplo directive written at the top of
// generated options files.
func SchemaDirective() string {
	return "#:schema ./schema/" + OptionsFilename()
}

func enumSchema(desc string, values []string) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}

	return &jsonschema.Schema{Type: "string", Enum: enum, Description: desc}
}

// mapper supplies schemas for the types that decode from strings or from
// more than one JSON type.
func mapper(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeFor[plugin.Type]():
		return enumSchema("Plugin type", plugin.TypeStrings())
	case reflect.TypeFor[plugin.License]():
		return enumSchema("Plugin license", plugin.LicenseStrings())
	case reflect.TypeFor[plugin.Maturity]():
		return enumSchema("Plugin maturity", plugin.MaturityStrings())
	case reflect.TypeFor[sysvar.Kind]():
		return enumSchema("System variable type", sysvar.KindStrings())
	case reflect.TypeFor[sysvar.Option]():
		return enumSchema("System variable option", sysvar.OptionStrings())
	case reflect.TypeFor[logger.Level]():
		return enumSchema("Log level", logger.LevelStrings())
	case reflect.TypeFor[config.BuildMode]():
		return enumSchema("Build mode", []string{string(config.ModeDynamic), string(config.ModeStatic)})
	case reflect.TypeFor[plugin.CipherRef]():
		return &jsonschema.Schema{
			Description: "true to use the main type, false for builtin encryption, or a type name",
			OneOf: []*jsonschema.Schema{
				{Type: "boolean"},
				{Type: "string", Pattern: `^[A-Za-z_][A-Za-z0-9_.]*$`},
			},
		}
	}

	return nil
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		ExpandedStruct: true,
		Mapper:         mapper,
	}
}

// Generate produces the manifest schema: an object whose tables are
// declarations keyed by the plugin's main type.
func Generate() *jsonschema.Schema {
	decl := reflector().Reflect(&plugin.Declaration{})

	defs := decl.Definitions
	if defs == nil {
		defs = jsonschema.Definitions{}
	}

	decl.Definitions = nil
	decl.Version = ""
	decl.AdditionalProperties = jsonschema.FalseSchema
	defs["Declaration"] = decl

	return &jsonschema.Schema{
		Version:              schemaURI,
		Title:                manifestTitle,
		Type:                 "object",
		MinProperties:        uint64Ptr(1),
		AdditionalProperties: &jsonschema.Schema{Ref: "#/$defs/Declaration"},
		Definitions:          defs,
	}
}

// GenerateOptions produces the schema of mariabridge.toml.
func GenerateOptions() *jsonschema.Schema {
	s := reflector().Reflect(&config.Options{})
	s.Version = schemaURI
	s.Title = optionsTitle

	return s
}

func uint64Ptr(n uint64) *uint64 { return &n }

// GenerateJSON produces the manifest schema as bytes.
// When indent is true, the output is pretty-printed.
func GenerateJSON(indent bool) ([]byte, error) {
	return marshal(Generate(), indent)
}

// GenerateOptionsJSON produces the options schema as bytes.
func GenerateOptionsJSON(indent bool) ([]byte, error) {
	return marshal(GenerateOptions(), indent)
}

func marshal(s *jsonschema.Schema, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if indent {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}

	if err != nil {
		return nil, errors.Wrap(err, "marshaling schema to JSON")
	}

	// Append trailing newline for file output.
	return append(data, '\n'), nil
}
