package sysvar

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

// Option is a PLUGIN_VAR_* option bit.
type Option int32

// Variable options. RequiredCmdArg is the zero bit and only documents
// intent.
const (
	ReadOnly       Option = abi.PluginVarReadOnly
	NoSysVar       Option = abi.PluginVarNoSysVar
	NoCmdOpt       Option = abi.PluginVarNoCmdOpt
	NoCmdArg       Option = abi.PluginVarNoCmdArg
	RequiredCmdArg Option = abi.PluginVarRqCmdArg
	OptionalCmdArg Option = abi.PluginVarOpCmdArg
	Deprecated     Option = abi.PluginVarDeprecated
)

var optionNames = map[string]Option{
	"read_only":        ReadOnly,
	"no_sysvar":        NoSysVar,
	"no_cmd_opt":       NoCmdOpt,
	"no_cmd_arg":       NoCmdArg,
	"required_cmd_arg": RequiredCmdArg,
	"optional_cmd_arg": OptionalCmdArg,
	"deprecated":       Deprecated,
}

// OptionStrings returns the manifest names of all options, sorted.
func OptionStrings() []string {
	names := make([]string, 0, len(optionNames))
	for name := range optionNames {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ErrUnknownOption is returned for an option name that is not recognised.
var ErrUnknownOption = errors.New("unknown sysvar option")

// ParseOption returns the option named s, as written in a manifest.
func ParseOption(s string) (Option, error) {
	if o, ok := optionNames[s]; ok {
		return o, nil
	}

	return 0, errors.Wrapf(ErrUnknownOption, "%q", s)
}

func (o Option) String() string {
	for name, v := range optionNames {
		if v == o {
			return name
		}
	}

	return "unknown"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Option) UnmarshalText(text []byte) error {
	v, err := ParseOption(string(text))
	if err != nil {
		return err
	}

	*o = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Option) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
