package sysvar

import (
	"math"
	"regexp"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid sysvar")

// Var declares one system variable.
//
// Default, Min, Max and Block take a Go value of the kind's natural type
// (bool, string, an integer or float64, []string for sets); values decoded
// from a manifest are normalised by Validate. Min, Max and Block may only be
// set on ranged kinds.
type Var struct {
	// Ident is the Go identifier generated code uses for the value cell.
	// Defaults to the name.
	Ident       string   `json:"ident,omitempty" koanf:"ident" toml:"ident,omitempty"`
	Name        string   `json:"name" koanf:"name" toml:"name"`
	Kind        Kind     `json:"type" koanf:"type" toml:"type"`
	Description string   `json:"description" koanf:"description" toml:"description"`
	Options     []Option `json:"options,omitempty" koanf:"options" toml:"options,omitempty"`
	Default     any      `json:"default,omitempty" koanf:"default" toml:"default,omitempty"`
	Min         any      `json:"min,omitempty" koanf:"min" toml:"min,omitempty"`
	Max         any      `json:"max,omitempty" koanf:"max" toml:"max,omitempty"`
	Block       any      `json:"block,omitempty" koanf:"block" toml:"block,omitempty"`
	// Values are the member names of an enum or set.
	Values []string `json:"values,omitempty" koanf:"values" toml:"values,omitempty"`
}

// Keys lists the manifest keys a variable table may use.
var Keys = []string{
	"ident", "name", "type", "description", "options",
	"default", "min", "max", "block", "values",
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Flags returns the record's flags word: the kind code, the bits the kind
// implies and the options.
func (v *Var) Flags() int32 {
	f := v.Kind.Code() | v.Kind.implied()
	for _, o := range v.Options {
		f |= int32(o)
	}

	return f
}

// GoIdent returns Ident, or Name when Ident is empty.
func (v *Var) GoIdent() string {
	if v.Ident != "" {
		return v.Ident
	}

	return v.Name
}

// CheckKeys rejects manifest keys a variable table may not contain.
func CheckKeys(name string, keys []string) error {
	for _, k := range keys {
		if !slices.Contains(Keys, k) {
			return errors.Wrapf(ErrInvalid, "unexpected field '%s' for sysvar '%s'", k, name)
		}
	}

	return nil
}

// Validate checks vars and normalises their values in place. It returns
// the first problem found.
func Validate(vars []Var) error {
	seen := make(map[string]bool, len(vars))

	for i := range vars {
		v := &vars[i]

		if v.Name == "" {
			return errors.Wrapf(ErrInvalid, "sysvar %d has no name", i)
		}

		if !identRe.MatchString(v.Name) {
			return errors.Wrapf(ErrInvalid, "sysvar name '%s' must be a lower case identifier", v.Name)
		}

		if seen[v.Name] {
			return errors.Wrapf(ErrInvalid, "duplicate sysvar '%s'", v.Name)
		}

		seen[v.Name] = true

		if err := v.validate(); err != nil {
			return errors.Wrapf(err, "sysvar '%s'", v.Name)
		}
	}

	return nil
}

func (v *Var) validate() error {
	if !v.Kind.IsAKind() {
		return errors.Wrapf(ErrInvalid, "unknown type %d", int(v.Kind))
	}

	if err := v.validateOptions(); err != nil {
		return err
	}

	if !v.Kind.Ranged() && (v.Min != nil || v.Max != nil || v.Block != nil) {
		return errors.Wrapf(ErrInvalid, "min, max and block are not allowed for %s", v.Kind)
	}

	if !v.Kind.Typelib() && len(v.Values) > 0 {
		return errors.Wrapf(ErrInvalid, "values are not allowed for %s", v.Kind)
	}

	switch v.Kind {
	case KindBool:
		return v.normBool()
	case KindStr, KindConstString:
		return v.normString()
	case KindInt:
		return v.normSigned(math.MinInt32, math.MaxInt32)
	case KindLong, KindLonglong:
		return v.normSigned(math.MinInt64, math.MaxInt64)
	case KindUint:
		return v.normUnsigned(math.MaxUint32)
	case KindUlong, KindUlonglong:
		return v.normUnsigned(math.MaxUint64)
	case KindDouble:
		return v.normDouble()
	case KindEnum:
		return v.normEnum()
	case KindSet:
		return v.normSet()
	}

	return nil
}

func (v *Var) validateOptions() error {
	for _, o := range v.Options {
		if int32(o)&^abi.PluginVarMask != 0 {
			return errors.Wrapf(ErrInvalid, "option bits %#x outside PLUGIN_VAR_MASK", int32(o))
		}
	}

	if slices.Contains(v.Options, NoCmdArg) && slices.Contains(v.Options, OptionalCmdArg) {
		return errors.Wrap(ErrInvalid, "no_cmd_arg and optional_cmd_arg are exclusive")
	}

	return nil
}

func (v *Var) normBool() error {
	if v.Default == nil {
		v.Default = false
		return nil
	}

	b, ok := v.Default.(bool)
	if !ok {
		return errors.Wrapf(ErrInvalid, "default %v is not a bool", v.Default)
	}

	v.Default = b

	return nil
}

func (v *Var) normString() error {
	if v.Default == nil {
		v.Default = ""
		return nil
	}

	s, ok := v.Default.(string)
	if !ok {
		return errors.Wrapf(ErrInvalid, "default %v is not a string", v.Default)
	}

	v.Default = s

	return nil
}

func (v *Var) normSigned(lo, hi int64) error {
	minV, maxV := lo, hi

	var err error

	if v.Min != nil {
		if minV, err = toInt64(v.Min, lo, hi); err != nil {
			return errors.Wrap(err, "min")
		}
	}

	if v.Max != nil {
		if maxV, err = toInt64(v.Max, lo, hi); err != nil {
			return errors.Wrap(err, "max")
		}
	}

	def := min(max(minV, 0), maxV)
	if v.Default != nil {
		if def, err = toInt64(v.Default, lo, hi); err != nil {
			return errors.Wrap(err, "default")
		}
	}

	var block int64
	if v.Block != nil {
		if block, err = toInt64(v.Block, 0, hi); err != nil {
			return errors.Wrap(err, "block")
		}
	}

	if minV > maxV || def < minV || def > maxV {
		return errors.Wrapf(ErrInvalid, "need min <= default <= max, got %d, %d, %d", minV, def, maxV)
	}

	v.Min, v.Max, v.Default, v.Block = minV, maxV, def, block

	return nil
}

func (v *Var) normUnsigned(hi uint64) error {
	minV, maxV := uint64(0), hi

	var err error

	if v.Min != nil {
		if minV, err = toUint64(v.Min, hi); err != nil {
			return errors.Wrap(err, "min")
		}
	}

	if v.Max != nil {
		if maxV, err = toUint64(v.Max, hi); err != nil {
			return errors.Wrap(err, "max")
		}
	}

	def := minV
	if v.Default != nil {
		if def, err = toUint64(v.Default, hi); err != nil {
			return errors.Wrap(err, "default")
		}
	}

	var block uint64
	if v.Block != nil {
		if block, err = toUint64(v.Block, hi); err != nil {
			return errors.Wrap(err, "block")
		}
	}

	if minV > maxV || def < minV || def > maxV {
		return errors.Wrapf(ErrInvalid, "need min <= default <= max, got %d, %d, %d", minV, def, maxV)
	}

	v.Min, v.Max, v.Default, v.Block = minV, maxV, def, block

	return nil
}

func (v *Var) normDouble() error {
	minV, maxV := -math.MaxFloat64, math.MaxFloat64

	var err error

	if v.Min != nil {
		if minV, err = toFloat64(v.Min); err != nil {
			return errors.Wrap(err, "min")
		}
	}

	if v.Max != nil {
		if maxV, err = toFloat64(v.Max); err != nil {
			return errors.Wrap(err, "max")
		}
	}

	def := min(max(minV, 0), maxV)
	if v.Default != nil {
		if def, err = toFloat64(v.Default); err != nil {
			return errors.Wrap(err, "default")
		}
	}

	var block float64
	if v.Block != nil {
		if block, err = toFloat64(v.Block); err != nil {
			return errors.Wrap(err, "block")
		}
	}

	if minV > maxV || def < minV || def > maxV {
		return errors.Wrapf(ErrInvalid, "need min <= default <= max, got %g, %g, %g", minV, def, maxV)
	}

	v.Min, v.Max, v.Default, v.Block = minV, maxV, def, block

	return nil
}

func (v *Var) normEnum() error {
	if len(v.Values) == 0 {
		return errors.Wrap(ErrInvalid, "enum needs values")
	}

	if err := uniqueValues(v.Values); err != nil {
		return err
	}

	if v.Default == nil {
		v.Default = v.Values[0]
		return nil
	}

	s, ok := v.Default.(string)
	if !ok || !slices.Contains(v.Values, s) {
		return errors.Wrapf(ErrInvalid, "default %v is not one of %v", v.Default, v.Values)
	}

	v.Default = s

	return nil
}

func (v *Var) normSet() error {
	if len(v.Values) == 0 {
		return errors.Wrap(ErrInvalid, "set needs values")
	}

	if len(v.Values) > 64 {
		return errors.Wrapf(ErrInvalid, "set has %d values, at most 64 fit", len(v.Values))
	}

	if err := uniqueValues(v.Values); err != nil {
		return err
	}

	members, err := toStrings(v.Default)
	if err != nil {
		return errors.Wrap(err, "default")
	}

	for _, m := range members {
		if !slices.Contains(v.Values, m) {
			return errors.Wrapf(ErrInvalid, "default member '%s' is not one of %v", m, v.Values)
		}
	}

	v.Default = members

	return nil
}

// EnumIndex returns the position of the enum default among Values.
func (v *Var) EnumIndex() uint64 {
	s, _ := v.Default.(string)
	return uint64(max(slices.Index(v.Values, s), 0))
}

// SetMask returns the bit mask of the set default.
func (v *Var) SetMask() uint64 {
	members, _ := v.Default.([]string)

	var mask uint64

	for _, m := range members {
		if i := slices.Index(v.Values, m); i >= 0 {
			mask |= 1 << uint(i)
		}
	}

	return mask
}

func uniqueValues(values []string) error {
	for i, s := range values {
		if s == "" {
			return errors.Wrap(ErrInvalid, "empty value name")
		}

		if slices.Index(values, s) != i {
			return errors.Wrapf(ErrInvalid, "duplicate value '%s'", s)
		}
	}

	return nil
}
