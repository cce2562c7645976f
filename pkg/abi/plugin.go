package abi

import "unsafe"

// Plugin interface versions the loader compares against its own.
const (
	MariaPluginInterfaceVersion   = 0x010f
	MysqlPluginInterfaceVersion   = 0x0104
	EncryptionInterfaceVersion    = 0x0300
	HandlertonInterfaceVersion    = 110402 << 8 // MYSQL_VERSION_ID << 8 of the targeted server
	StorageEngineInterfaceVersion = HandlertonInterfaceVersion
)

// Plugin types (MYSQL_*_PLUGIN / MariaDB_*_PLUGIN).
const (
	PluginTypeUDF                = 0
	PluginTypeStorageEngine      = 1
	PluginTypeFTParser           = 2
	PluginTypeDaemon             = 3
	PluginTypeInformationSchema  = 4
	PluginTypeAudit              = 5
	PluginTypeReplication        = 6
	PluginTypeAuthentication     = 7
	PluginTypePasswordValidation = 8
	PluginTypeEncryption         = 9
	PluginTypeDataType           = 10
	PluginTypeFunction           = 11
)

// Plugin licenses (PLUGIN_LICENSE_*).
const (
	PluginLicenseProprietary = 0
	PluginLicenseGPL         = 1
	PluginLicenseBSD         = 2
)

// Plugin maturity levels (MariaDB_PLUGIN_MATURITY_*).
const (
	PluginMaturityUnknown      = 0
	PluginMaturityExperimental = 1
	PluginMaturityAlpha        = 2
	PluginMaturityBeta         = 3
	PluginMaturityGamma        = 4
	PluginMaturityStable       = 5
)

// PluginDescriptor is struct st_maria_plugin.
type PluginDescriptor struct {
	Type        int32
	Info        unsafe.Pointer
	Name        *byte
	Author      *byte
	Descr       *byte
	License     int32
	Init        unsafe.Pointer // int (*)(void *)
	Deinit      unsafe.Pointer // int (*)(void *)
	Version     uint32
	StatusVars  unsafe.Pointer // struct st_mysql_show_var *
	SystemVars  *unsafe.Pointer
	VersionInfo *byte
	Maturity    uint32
}

// IsZero reports whether every field of d is zero or nil, which is what the
// loader expects from the terminating record of a declaration array.
func (d *PluginDescriptor) IsZero() bool {
	return *d == PluginDescriptor{}
}

// SizeofPluginDescriptor is sizeof(struct st_maria_plugin).
const SizeofPluginDescriptor = unsafe.Sizeof(PluginDescriptor{})

// StorageEngineInfo is struct st_mysql_storage_engine, the info record of a
// storage engine plugin.
type StorageEngineInfo struct {
	InterfaceVersion int32
}
