// Package codegen renders the C records and Go registration of a plugin
// library from its manifest.
//
// A library is one directory of generated files next to the package that
// implements the plugins:
//
//	mariabridge_gen.h    prototypes and record declarations
//	records.c            sysvar records, info structs and init wrappers
//	symbols_dynamic.c    loader symbols of a shared library
//	symbols_static.c     loader symbols of a plugin linked into the server
//	register.go          bridge registration and the cgo entry point
//
// The two symbol files are selected with the mariadb_static build tag.
package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

// ErrUnsupported marks manifests that are valid but cannot be generated.
var ErrUnsupported = errors.New("unsupported manifest")

// Generated file names.
const (
	HeaderFile         = "mariabridge_gen.h"
	RecordsFile        = "records.c"
	SymbolsDynamicFile = "symbols_dynamic.c"
	SymbolsStaticFile  = "symbols_static.c"
	RegisterFile       = "register.go"
)

// Marker opens every generated file.
const Marker = "Code generated by mariabridge generate; DO NOT EDIT."

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.tmpl"))

// Input is one library to generate.
type Input struct {
	Manifest *config.Manifest

	// ImportPath is the package implementing the plugin types.
	ImportPath string

	// Package is the name of the generated Go package. Defaults to main.
	Package string

	// CFlags become #cgo CFLAGS lines, usually -I for the server headers.
	CFlags []string

	Mode config.BuildMode
}

// File is one generated file.
type File struct {
	Name    string
	Content []byte
}

// Files returns the names Generate produces, in order.
func Files() []string {
	return []string{HeaderFile, RecordsFile, SymbolsDynamicFile, SymbolsStaticFile, RegisterFile}
}

// Generate renders every file of the library described by in.
func Generate(in *Input) ([]File, error) {
	lib, err := newLibrary(in)
	if err != nil {
		return nil, err
	}

	out := make([]File, 0, len(Files()))

	for _, r := range []struct {
		name, tmpl string
		data       any
	}{
		{HeaderFile, "header.h.tmpl", lib},
		{RecordsFile, "records.c.tmpl", lib},
		{SymbolsDynamicFile, "symbols.c.tmpl", lib.symbols(false)},
		{SymbolsStaticFile, "symbols.c.tmpl", lib.symbols(true)},
		{RegisterFile, "register.go.tmpl", lib},
	} {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, r.tmpl, r.data); err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", r.name)
		}

		content := buf.Bytes()

		if strings.HasSuffix(r.name, ".go") {
			if content, err = format.Source(content); err != nil {
				return nil, errors.Wrapf(err, "failed to format %s", r.name)
			}
		}

		out = append(out, File{Name: r.name, Content: content})
	}

	return out, nil
}

type library struct {
	Marker     string
	Package    string
	ImportPath string
	CFlags     []string
	Mode       config.BuildMode
	Plugins    []*pluginModel

	// Encryption is set when any plugin needs plugin_encryption.h.
	Encryption bool
	// Vars is set when any plugin declares variables.
	Vars bool
}

type pluginModel struct {
	Index  int
	Prefix string

	TypeMacro     string
	LicenseMacro  string
	MaturityMacro string
	Name          string
	Author        string
	Descr         string
	Version       string
	VersionInfo   string

	Storage bool
	// Cipher is set for encryption plugins that do not use the builtin AES.
	Cipher bool

	Sysvars []sysvar.CRecord

	// Go side.
	Declaration string
	Self        string
	SelfType    string
	Table       string
	Init        string

	rawName string
}

// symbolSet is the data of one symbols file.
type symbolSet struct {
	*library

	Static  bool
	Tag     string
	Symbols plugin.Symbols
}

func (l *library) symbols(static bool) *symbolSet {
	tag := "!" + plugin.StaticBuildTag
	if static {
		tag = plugin.StaticBuildTag
	}

	return &symbolSet{
		library: l,
		Static:  static,
		Tag:     tag,
		Symbols: plugin.LoaderSymbols(l.Plugins[0].rawName, static),
	}
}

var typeMacros = map[plugin.Type]string{
	plugin.TypeStorageEngine: "MYSQL_STORAGE_ENGINE_PLUGIN",
	plugin.TypeEncryption:    "MariaDB_ENCRYPTION_PLUGIN",
}

var licenseMacros = map[plugin.License]string{
	plugin.LicenseProprietary: "PLUGIN_LICENSE_PROPRIETARY",
	plugin.LicenseGPL:         "PLUGIN_LICENSE_GPL",
	plugin.LicenseBSD:         "PLUGIN_LICENSE_BSD",
}

func newLibrary(in *Input) (*library, error) {
	if in.Manifest == nil || len(in.Manifest.Plugins) == 0 {
		return nil, errors.Wrap(ErrUnsupported, "no plugins")
	}

	if in.ImportPath == "" {
		return nil, errors.Wrap(ErrUnsupported, "no import path for the plugin package")
	}

	lib := &library{
		Marker:     Marker,
		Package:    in.Package,
		ImportPath: in.ImportPath,
		CFlags:     in.CFlags,
		Mode:       in.Mode,
	}

	if lib.Package == "" {
		lib.Package = "main"
	}

	if lib.Mode == "" {
		lib.Mode = config.ModeDynamic
	}

	storage := 0
	varNames := map[string]string{}

	for i, entry := range in.Manifest.Plugins {
		decl := entry.Declaration

		p, err := newPluginModel(i, decl)
		if err != nil {
			return nil, errors.Wrapf(err, "plugin '%s'", decl.Name)
		}

		for _, v := range decl.Variables {
			if other, ok := varNames[v.Name]; ok {
				return nil, errors.Wrapf(ErrUnsupported,
					"sysvar '%s' is declared by both %s and %s", v.Name, other, decl.Name)
			}

			varNames[v.Name] = decl.Name
		}

		if p.Storage {
			storage++
		} else {
			lib.Encryption = true
		}

		if len(p.Sysvars) > 0 {
			lib.Vars = true
		}

		lib.Plugins = append(lib.Plugins, p)
	}

	if storage > 1 {
		return nil, errors.Wrapf(ErrUnsupported, "%d storage engines, a library holds one", storage)
	}

	return lib, nil
}

func newPluginModel(i int, decl *plugin.Declaration) (*pluginModel, error) {
	for _, name := range []string{decl.Main, decl.Init, decl.Handlerton, decl.Handler, decl.Decryption} {
		if strings.Contains(name, ".") {
			return nil, errors.Wrapf(ErrUnsupported,
				"type '%s' must be declared in the plugin package", name)
		}
	}

	if decl.Encryption != nil && strings.Contains(decl.Encryption.Type, ".") {
		return nil, errors.Wrapf(ErrUnsupported,
			"type '%s' must be declared in the plugin package", decl.Encryption.Type)
	}

	prefix := fmt.Sprintf("mb_p%d", i)

	recs, err := sysvar.Emit(decl.Variables)
	if err != nil {
		return nil, err
	}

	for j := range recs {
		recs[j].Cell = prefix + "_" + recs[j].Cell
	}

	p := &pluginModel{
		Index:         i,
		Prefix:        prefix,
		TypeMacro:     typeMacros[decl.Type],
		LicenseMacro:  licenseMacros[decl.License],
		MaturityMacro: "MariaDB_PLUGIN_MATURITY_" + strings.ToUpper(decl.Maturity.String()),
		Name:          sysvar.CQuote(decl.Name),
		Author:        sysvar.CQuote(decl.Author),
		Descr:         sysvar.CQuote(decl.Description),
		Version:       fmt.Sprintf("0x%04x", uint16(decl.EncodedVersion())),
		VersionInfo:   sysvar.CQuote(decl.Version),
		Storage:       decl.Type == plugin.TypeStorageEngine,
		Sysvars:       recs,
		Declaration:   declarationLiteral(decl),
		rawName:       decl.Name,
	}

	if p.Storage {
		p.Self = "engine"
		p.SelfType = "impl." + decl.Handlerton
		p.Table = fmt.Sprintf("bridge.NewStorageWith[impl.%s](engine)", decl.Handler)
		p.Init = initExpr(decl.Init, decl.Handlerton, "engine")

		return p, nil
	}

	p.Self = "km"
	p.SelfType = "impl." + decl.Main
	p.Table = "bridge.NewKeyManagement(km)"

	if enc, dec := decl.Ciphers(); enc != "" {
		p.Cipher = true
		p.Table = fmt.Sprintf("bridge.NewEncryption[impl.%s, impl.%s](km)", enc, dec)
	}

	p.Init = initExpr(decl.Init, decl.Main, "km")

	return p, nil
}

// initExpr reuses the plugin's main value when it is also the init type.
func initExpr(init, self, selfVar string) string {
	switch init {
	case "":
		return ""
	case self:
		return selfVar
	}

	return "new(impl." + init + ")"
}
