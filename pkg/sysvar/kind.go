// Package sysvar encodes plugin system variables into the records the
// server reads when it registers a plugin's configuration knobs.
//
// Each variable becomes one st_mysql_sys_var record whose trailing fields
// depend on its kind. The plugin descriptor points at a NULL-terminated
// array of pointers to those records; a plugin without variables has no
// array at all.
package sysvar

import "github.com/smykla-skalski/mariabridge/pkg/abi"

//go:generate enumer -type=Kind -trimprefix=Kind -transform=snake -linecomment -text -output=kind_enumer.go
//go:generate go run github.com/smykla-skalski/mariabridge/tools/enumerfix kind_enumer.go

// Kind is the type of a system variable.
type Kind int

// Variable kinds. Str values are owned by the server (PLUGIN_VAR_MEMALLOC);
// ConstString values are read only and point at static storage.
const (
	KindBool Kind = iota
	KindStr // string
	KindConstString
	KindInt
	KindUint
	KindLong
	KindUlong
	KindLonglong
	KindUlonglong
	KindDouble
	KindEnum
	KindSet
)

// Code returns the PLUGIN_VAR_* type code of k.
func (k Kind) Code() int32 {
	switch k {
	case KindBool:
		return abi.PluginVarBool
	case KindStr, KindConstString:
		return abi.PluginVarStr
	case KindInt, KindUint:
		return abi.PluginVarInt
	case KindLong, KindUlong:
		return abi.PluginVarLong
	case KindLonglong, KindUlonglong:
		return abi.PluginVarLongLong
	case KindDouble:
		return abi.PluginVarDouble
	case KindEnum:
		return abi.PluginVarEnum
	case KindSet:
		return abi.PluginVarSet
	default:
		return 0
	}
}

// Unsigned reports whether k carries PLUGIN_VAR_UNSIGNED.
func (k Kind) Unsigned() bool {
	return k == KindUint || k == KindUlong || k == KindUlonglong
}

// Ranged reports whether records of kind k have min, max and block fields.
func (k Kind) Ranged() bool {
	switch k {
	case KindInt, KindUint, KindLong, KindUlong, KindLonglong, KindUlonglong, KindDouble:
		return true
	default:
		return false
	}
}

// Typelib reports whether records of kind k point at a name table.
func (k Kind) Typelib() bool { return k == KindEnum || k == KindSet }

func (k Kind) implied() int32 {
	var f int32

	if k.Unsigned() {
		f |= abi.PluginVarUnsigned
	}

	switch k {
	case KindStr:
		f |= abi.PluginVarMemAlloc
	case KindConstString:
		f |= abi.PluginVarReadOnly
	}

	return f
}
