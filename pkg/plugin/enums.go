package plugin

import "github.com/smykla-skalski/mariabridge/pkg/abi"

//go:generate enumer -type=Type -trimprefix=Type -transform=snake -text -output=type_enumer.go
//go:generate enumer -type=License -trimprefix=License -transform=snake -text -output=license_enumer.go
//go:generate enumer -type=Maturity -trimprefix=Maturity -transform=snake -text -output=maturity_enumer.go
//go:generate go run github.com/smykla-skalski/mariabridge/tools/enumerfix type_enumer.go license_enumer.go maturity_enumer.go

// Type is the kind of plugin a declaration registers.
type Type int

// Supported plugin types.
const (
	TypeStorageEngine Type = iota
	TypeEncryption
)

// Code returns the MYSQL_*_PLUGIN value of t.
func (t Type) Code() int32 {
	switch t {
	case TypeStorageEngine:
		return abi.PluginTypeStorageEngine
	case TypeEncryption:
		return abi.PluginTypeEncryption
	default:
		return -1
	}
}

// InfoVersion returns the interface version the type's info record starts
// with.
func (t Type) InfoVersion() int32 {
	if t == TypeEncryption {
		return abi.EncryptionInterfaceVersion
	}

	return abi.StorageEngineInterfaceVersion
}

// License is a PLUGIN_LICENSE_* value.
type License int

// Plugin licenses.
const (
	LicenseProprietary License = abi.PluginLicenseProprietary
	LicenseGPL         License = abi.PluginLicenseGPL
	LicenseBSD         License = abi.PluginLicenseBSD
)

// Maturity is a MariaDB_PLUGIN_MATURITY_* value.
type Maturity int

// Plugin maturities.
const (
	MaturityUnknown      Maturity = abi.PluginMaturityUnknown
	MaturityExperimental Maturity = abi.PluginMaturityExperimental
	MaturityAlpha        Maturity = abi.PluginMaturityAlpha
	MaturityBeta         Maturity = abi.PluginMaturityBeta
	MaturityGamma        Maturity = abi.PluginMaturityGamma
	MaturityStable       Maturity = abi.PluginMaturityStable
)
