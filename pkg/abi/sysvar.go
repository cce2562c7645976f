package abi

import "unsafe"

// System variable type codes and option flags (PLUGIN_VAR_*).
const (
	PluginVarBool       = 0x0001
	PluginVarInt        = 0x0002
	PluginVarLong       = 0x0003
	PluginVarLongLong   = 0x0004
	PluginVarStr        = 0x0005
	PluginVarEnum       = 0x0006
	PluginVarSet        = 0x0007
	PluginVarDouble     = 0x0008
	PluginVarUnsigned   = 0x0080
	PluginVarThdLocal   = 0x0100
	PluginVarReadOnly   = 0x0200
	PluginVarNoSysVar   = 0x0400
	PluginVarNoCmdOpt   = 0x0800
	PluginVarNoCmdArg   = 0x1000
	PluginVarRqCmdArg   = 0x0000
	PluginVarOpCmdArg   = 0x2000
	PluginVarDeprecated = 0x4000
	PluginVarMemAlloc   = 0x8000

	PluginVarTypeMask = 0x007f

	// PluginVarMask is the set of option bits a plugin may set.
	PluginVarMask = PluginVarReadOnly | PluginVarNoSysVar | PluginVarNoCmdOpt |
		PluginVarNoCmdArg | PluginVarOpCmdArg | PluginVarRqCmdArg |
		PluginVarDeprecated | PluginVarMemAlloc
)

// SysVarHeader is the common prefix of every st_mysql_sys_var record.
type SysVarHeader struct {
	Flags   int32
	Name    *byte
	Comment *byte
	Check   unsafe.Pointer // mysql_var_check_func
	Update  unsafe.Pointer // mysql_var_update_func
}

// SysVarBool is the record for PLUGIN_VAR_BOOL.
type SysVarBool struct {
	SysVarHeader
	Value   *bool
	Default bool
}

// SysVarStr is the record for PLUGIN_VAR_STR.
type SysVarStr struct {
	SysVarHeader
	Value   **byte
	Default *byte
}

// SysVarInt is the record for PLUGIN_VAR_INT.
type SysVarInt struct {
	SysVarHeader
	Value   *int32
	Default int32
	Min     int32
	Max     int32
	Block   int32
}

// SysVarUInt is the record for PLUGIN_VAR_INT | PLUGIN_VAR_UNSIGNED.
type SysVarUInt struct {
	SysVarHeader
	Value   *uint32
	Default uint32
	Min     uint32
	Max     uint32
	Block   uint32
}

// SysVarLong is the record for PLUGIN_VAR_LONG (C long is 64 bits on LP64).
type SysVarLong struct {
	SysVarHeader
	Value   *int64
	Default int64
	Min     int64
	Max     int64
	Block   int64
}

// SysVarULong is the record for PLUGIN_VAR_LONG | PLUGIN_VAR_UNSIGNED.
type SysVarULong struct {
	SysVarHeader
	Value   *uint64
	Default uint64
	Min     uint64
	Max     uint64
	Block   uint64
}

// SysVarLongLong is the record for PLUGIN_VAR_LONGLONG.
type SysVarLongLong = SysVarLong

// SysVarULongLong is the record for PLUGIN_VAR_LONGLONG | PLUGIN_VAR_UNSIGNED.
type SysVarULongLong = SysVarULong

// SysVarDouble is the record for PLUGIN_VAR_DOUBLE.
type SysVarDouble struct {
	SysVarHeader
	Value   *float64
	Default float64
	Min     float64
	Max     float64
	Block   float64
}

// SysVarEnum is the record for PLUGIN_VAR_ENUM. The value is a C ulong.
type SysVarEnum struct {
	SysVarHeader
	Value   *uint64
	Default uint64
	Typelib *Typelib
}

// SysVarSet is the record for PLUGIN_VAR_SET. The value is a C ulonglong.
type SysVarSet struct {
	SysVarHeader
	Value   *uint64
	Default uint64
	Typelib *Typelib
}

// Typelib is struct st_typelib.
type Typelib struct {
	Count       uintptr
	Name        *byte
	TypeNames   **byte
	TypeLengths *uint32
}
