package plugin

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

// StaticBuildTag selects the statically linked loader symbols in generated
// code.
const StaticBuildTag = "mariadb_static"

// Registration is what the loader reads: the declaration array with its
// terminating record, the interface version and the descriptor size.
type Registration struct {
	Declarations     [2]abi.PluginDescriptor
	InterfaceVersion int32
	SizeofStruct     int32
	Sysvars          *sysvar.Table
}

// Descriptor returns the plugin's descriptor.
func (r *Registration) Descriptor() *abi.PluginDescriptor { return &r.Declarations[0] }

// Sentinel returns the terminating record.
func (r *Registration) Sentinel() *abi.PluginDescriptor { return &r.Declarations[1] }

// Build validates decl and lays out its registration in Go memory, with
// no info record or entry points. Generated libraries emit the same records
// in C. The returned records must not be modified.
func Build(decl *Declaration) (*Registration, error) {
	alloc := &sysvar.GoHeap{}

	d := *decl
	d.Variables = append([]sysvar.Var(nil), decl.Variables...)

	if err := Validate(&d, nil); err != nil {
		return nil, err
	}

	vars, err := sysvar.Build(d.Variables, alloc)
	if err != nil {
		return nil, errors.Wrapf(err, "plugin '%s'", d.Name)
	}

	r := &Registration{
		InterfaceVersion: abi.MariaPluginInterfaceVersion,
		SizeofStruct:     int32(abi.SizeofPluginDescriptor),
		Sysvars:          vars,
	}

	r.Declarations[0] = abi.PluginDescriptor{
		Type:        d.Type.Code(),
		Name:        alloc.CString(d.Name),
		Author:      alloc.CString(d.Author),
		Descr:       alloc.CString(d.Description),
		License:     int32(d.License),
		Version:     uint32(d.EncodedVersion()),
		SystemVars:  vars.Array(),
		VersionInfo: alloc.CString(d.Version),
		Maturity:    uint32(d.Maturity),
	}

	return r, nil
}

// Symbols are the names the loader looks a plugin's records up by.
type Symbols struct {
	InterfaceVersion string
	SizeofStruct     string
	Declarations     string
}

// LoaderSymbols returns the symbol names for the plugin called name, for a
// shared library or for a plugin linked into the server.
func LoaderSymbols(name string, static bool) Symbols {
	if static {
		return Symbols{
			InterfaceVersion: "builtin_maria_" + name + "_plugin_interface_version",
			SizeofStruct:     "builtin_maria_" + name + "_sizeof_struct_st_plugin",
			Declarations:     "builtin_maria_" + name + "_plugin",
		}
	}

	return Symbols{
		InterfaceVersion: "_maria_plugin_interface_version_",
		SizeofStruct:     "_maria_sizeof_struct_st_plugin_",
		Declarations:     "_maria_plugin_declarations_",
	}
}

// Initializer is implemented by a declaration's init type. Init runs when
// the server loads the plugin and Deinit when it unloads it.
type Initializer interface {
	Init() error
	Deinit() error
}
