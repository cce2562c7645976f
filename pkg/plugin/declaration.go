// Package plugin describes a MariaDB plugin declaration and builds the
// registration records the server's loader reads from a plugin library.
//
// A declaration is usually read from a mariadb-plugin.toml manifest:
//
//	[DebugKeyMgmt]
//	type = "encryption"
//	name = "debug_key_management"
//	author = "Trevor Gross"
//	description = "Debug key management plugin"
//	license = "gpl"
//	maturity = "experimental"
//	version = "0.1"
//	encryption = false
//
// The table name is the Go type the plugin is built around: the key manager
// of an encryption plugin, or the engine of a storage plugin. Fields must
// appear in the canonical order returned by Fields.
package plugin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
	"github.com/smykla-skalski/mariabridge/pkg/version"
)

// ErrInvalidDeclaration marks every declaration validation failure.
var ErrInvalidDeclaration = errors.New("invalid plugin declaration")

// Declaration is one plugin as written in a manifest.
type Declaration struct {
	// Main is the Go type the declaration is keyed by. It is not a field.
	Main string `json:"main" jsonschema:"-" koanf:"-" toml:"-" yaml:"main"`

	Type        Type     `json:"type" koanf:"type" toml:"type" yaml:"type"`
	Name        string   `json:"name" koanf:"name" toml:"name" yaml:"name"`
	Author      string   `json:"author" koanf:"author" toml:"author" yaml:"author"`
	Description string   `json:"description" koanf:"description" toml:"description" yaml:"description"`
	License     License  `json:"license" koanf:"license" toml:"license" yaml:"license"`
	Maturity    Maturity `json:"maturity" koanf:"maturity" toml:"maturity" yaml:"maturity"`
	Version     string   `json:"version" koanf:"version" toml:"version" yaml:"version"`

	// Init names a type implementing Initializer.
	Init string `json:"init,omitempty" koanf:"init" toml:"init,omitempty" yaml:"init,omitempty"`

	// Handlerton and Handler name the storage engine types.
	Handlerton string `json:"handlerton,omitempty" koanf:"handlerton" toml:"handlerton,omitempty" yaml:"handlerton,omitempty"`
	Handler    string `json:"handler,omitempty" koanf:"handler" toml:"handler,omitempty" yaml:"handler,omitempty"`

	Encryption *CipherRef `json:"encryption,omitempty" koanf:"encryption" toml:"encryption,omitempty" yaml:"encryption,omitempty"`
	Decryption string     `json:"decryption,omitempty" koanf:"decryption" toml:"decryption,omitempty" yaml:"decryption,omitempty"`

	Variables []sysvar.Var `json:"variables,omitempty" koanf:"variables" toml:"variables,omitempty" yaml:"variables,omitempty"`
}

// CipherRef is the value of the encryption field: a boolean or the name of
// the type implementing the cipher. true means the main type is its own
// cipher; false selects the server's builtin encryption.
type CipherRef struct {
	Type string
	Bool bool
}

// ParseCipherRef converts a decoded manifest value.
func ParseCipherRef(v any) (*CipherRef, error) {
	switch x := v.(type) {
	case bool:
		return &CipherRef{Bool: x}, nil
	case string:
		if x == "" {
			return nil, errors.Mark(errors.New("encryption type must not be empty"), ErrInvalidDeclaration)
		}

		return &CipherRef{Type: x}, nil
	case *CipherRef:
		return x, nil
	case CipherRef:
		return &x, nil
	}

	return nil, errors.Mark(
		errors.Newf("encryption must be a boolean or a type name, got %T", v),
		ErrInvalidDeclaration,
	)
}

// IsBool reports whether the manifest gave a boolean.
func (c *CipherRef) IsBool() bool { return c.Type == "" }

func (c *CipherRef) String() string {
	if c.IsBool() {
		return strconv.FormatBool(c.Bool)
	}

	return c.Type
}

// MarshalJSON renders the manifest form.
func (c *CipherRef) MarshalJSON() ([]byte, error) {
	if c.IsBool() {
		return json.Marshal(c.Bool)
	}

	return json.Marshal(c.Type)
}

// UnmarshalJSON accepts a boolean or a string.
func (c *CipherRef) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	r, err := ParseCipherRef(v)
	if err != nil {
		return err
	}

	*c = *r

	return nil
}

// MarshalYAML renders the manifest form.
func (c *CipherRef) MarshalYAML() (any, error) {
	if c.IsBool() {
		return c.Bool, nil
	}

	return c.Type, nil
}

// Field names in canonical order.
const (
	FieldType        = "type"
	FieldName        = "name"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldLicense     = "license"
	FieldMaturity    = "maturity"
	FieldVersion     = "version"
	FieldInit        = "init"
	FieldHandlerton  = "handlerton"
	FieldHandler     = "handler"
	FieldEncryption  = "encryption"
	FieldDecryption  = "decryption"
	FieldVariables   = "variables"
)

var allFields = []string{
	FieldType, FieldName, FieldAuthor, FieldDescription, FieldLicense, FieldMaturity,
	FieldVersion, FieldInit, FieldHandlerton, FieldHandler, FieldEncryption,
	FieldDecryption, FieldVariables,
}

var alwaysRequired = []string{
	FieldType, FieldName, FieldAuthor, FieldDescription, FieldLicense, FieldMaturity, FieldVersion,
}

type fieldRules struct {
	required []string
	optional []string
}

var rules = map[Type]fieldRules{
	TypeEncryption: {
		optional: []string{FieldInit, FieldEncryption, FieldDecryption, FieldVariables},
	},
	TypeStorageEngine: {
		required: []string{FieldHandlerton, FieldHandler},
		optional: []string{FieldInit, FieldVariables},
	},
}

// Fields returns the field names in canonical order.
func Fields() []string { return slices.Clone(allFields) }

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	identRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*\.)?[A-Za-z_][A-Za-z0-9_]*$`)
)

func invalid(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidDeclaration)
}

// Validate checks decl. order lists the fields as they appeared in the
// manifest; when it is nil, presence is taken from the non-zero fields of
// decl and ordering is not checked. Variables are normalised in place.
func Validate(decl *Declaration, order []string) error {
	present := order
	if order == nil {
		present = decl.presentFields()
	} else if err := checkOrder(order); err != nil {
		return err
	}

	if !slices.Contains(present, FieldType) {
		return invalid("field '%s' is expected for all plugins, but not provided", FieldType)
	}

	if !decl.Type.IsAType() {
		return invalid("unknown plugin type %d", int(decl.Type))
	}

	if err := checkFields(decl.Type, present); err != nil {
		return err
	}

	if !nameRe.MatchString(decl.Name) {
		return invalid("plugin name '%s' must be a C identifier", decl.Name)
	}

	if !decl.License.IsALicense() {
		return invalid("unknown license %d", int(decl.License))
	}

	if !decl.Maturity.IsAMaturity() {
		return invalid("unknown maturity %d", int(decl.Maturity))
	}

	if _, err := version.Parse(decl.Version); err != nil {
		return errors.Mark(errors.Wrapf(err, "field '%s'", FieldVersion), ErrInvalidDeclaration)
	}

	if err := decl.checkTypes(); err != nil {
		return err
	}

	if decl.Decryption != "" {
		switch {
		case decl.Encryption == nil:
			return invalid("cannot specify decryption type but not encryption")
		case decl.Encryption.IsBool():
			return invalid("cannot specify decryption when encryption is a boolean")
		}
	}

	if err := sysvar.Validate(decl.Variables); err != nil {
		return errors.Mark(err, ErrInvalidDeclaration)
	}

	return nil
}

func checkOrder(order []string) error {
	for _, f := range order {
		if !slices.Contains(allFields, f) {
			return invalid("unexpected field '%s'", f)
		}
	}

	expected := slices.DeleteFunc(slices.Clone(allFields), func(f string) bool {
		return !slices.Contains(order, f)
	})

	if !slices.Equal(expected, order) {
		quoted := make([]string, len(expected))
		for i, f := range expected {
			quoted[i] = strconv.Quote(f)
		}

		return invalid("fields not in expected order. reorder as: [%s]", strings.Join(quoted, ", "))
	}

	return nil
}

func checkFields(t Type, present []string) error {
	r := rules[t]
	required := append(slices.Clone(alwaysRequired), r.required...)

	for _, f := range required {
		if !slices.Contains(present, f) {
			return invalid("field '%s' is expected for %s plugins, but not provided", f, t)
		}
	}

	for _, f := range present {
		if !slices.Contains(required, f) && !slices.Contains(r.optional, f) {
			return invalid("field '%s' is not expected for %s plugins", f, t)
		}
	}

	return nil
}

func (d *Declaration) checkTypes() error {
	named := []struct{ field, value string }{
		{"main", d.Main},
		{FieldInit, d.Init},
		{FieldHandlerton, d.Handlerton},
		{FieldHandler, d.Handler},
		{FieldDecryption, d.Decryption},
	}

	if d.Encryption != nil && !d.Encryption.IsBool() {
		named = append(named, struct{ field, value string }{FieldEncryption, d.Encryption.Type})
	}

	for _, n := range named {
		if n.value != "" && !identRe.MatchString(n.value) {
			return invalid("field '%s' must name a Go type, got %q", n.field, n.value)
		}
	}

	return nil
}

func (d *Declaration) presentFields() []string {
	var out []string

	add := func(name string, set bool) {
		if set {
			out = append(out, name)
		}
	}

	add(FieldType, true)
	add(FieldName, d.Name != "")
	add(FieldAuthor, d.Author != "")
	add(FieldDescription, d.Description != "")
	add(FieldLicense, true)
	add(FieldMaturity, true)
	add(FieldVersion, d.Version != "")
	add(FieldInit, d.Init != "")
	add(FieldHandlerton, d.Handlerton != "")
	add(FieldHandler, d.Handler != "")
	add(FieldEncryption, d.Encryption != nil)
	add(FieldDecryption, d.Decryption != "")
	add(FieldVariables, len(d.Variables) > 0)

	return out
}

// Ciphers returns the encryptor and decryptor types. Both are empty when the
// plugin uses the server's builtin encryption.
func (d *Declaration) Ciphers() (enc, dec string) {
	switch {
	case d.Encryption == nil:
		return "", ""
	case d.Encryption.IsBool():
		if d.Encryption.Bool {
			return d.Main, d.Main
		}

		return "", ""
	}

	enc, dec = d.Encryption.Type, d.Decryption
	if dec == "" {
		dec = enc
	}

	return enc, dec
}

// EncodedVersion returns the packed version. The declaration must be valid.
func (d *Declaration) EncodedVersion() version.Version {
	v, _ := version.Parse(d.Version)
	return v
}

func (d *Declaration) String() string {
	return fmt.Sprintf("%s plugin %s %s", d.Type, d.Name, d.Version)
}
