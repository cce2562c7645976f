package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

// Go constant names of the enum values a declaration literal refers to.

var typeConsts = map[plugin.Type]string{
	plugin.TypeStorageEngine: "plugin.TypeStorageEngine",
	plugin.TypeEncryption:    "plugin.TypeEncryption",
}

var licenseConsts = map[plugin.License]string{
	plugin.LicenseProprietary: "plugin.LicenseProprietary",
	plugin.LicenseGPL:         "plugin.LicenseGPL",
	plugin.LicenseBSD:         "plugin.LicenseBSD",
}

var optionConsts = map[sysvar.Option]string{
	sysvar.ReadOnly:       "sysvar.ReadOnly",
	sysvar.NoSysVar:       "sysvar.NoSysVar",
	sysvar.NoCmdOpt:       "sysvar.NoCmdOpt",
	sysvar.NoCmdArg:       "sysvar.NoCmdArg",
	sysvar.RequiredCmdArg: "sysvar.RequiredCmdArg",
	sysvar.OptionalCmdArg: "sysvar.OptionalCmdArg",
	sysvar.Deprecated:     "sysvar.Deprecated",
}

// camel turns a snake_case enum string into its constant suffix.
func camel(s string) string {
	var b strings.Builder

	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}

		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}

	return b.String()
}

func maturityConst(m plugin.Maturity) string { return "plugin.Maturity" + camel(m.String()) }

// kindConst names the constant of k. The string kind's constant is KindStr,
// since KindString is the enumer parser.
func kindConst(k sysvar.Kind) string {
	if k == sysvar.KindStr {
		return "sysvar.KindStr"
	}

	return "sysvar.Kind" + camel(k.String())
}

// goValue renders a normalised sysvar value.
func goValue(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case string:
		return strconv.Quote(x)
	case int64:
		return fmt.Sprintf("int64(%d)", x)
	case uint64:
		return fmt.Sprintf("uint64(%d)", x)
	case float64:
		return "float64(" + strconv.FormatFloat(x, 'g', -1, 64) + ")"
	case []string:
		return goStrings(x)
	}

	return fmt.Sprintf("%#v", v)
}

func goStrings(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = strconv.Quote(s)
	}

	return "[]string{" + strings.Join(q, ", ") + "}"
}

type field struct{ key, value string }

func literal(typ string, fields []field) string {
	var b strings.Builder

	b.WriteString(typ + "{\n")

	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s,\n", f.key, f.value)
	}

	b.WriteString("}")

	return b.String()
}

// declarationLiteral renders decl as a Go composite literal of type
// plugin.Declaration.
func declarationLiteral(decl *plugin.Declaration) string {
	fields := []field{
		{"Main", strconv.Quote(decl.Main)},
		{"Type", typeConsts[decl.Type]},
		{"Name", strconv.Quote(decl.Name)},
		{"Author", strconv.Quote(decl.Author)},
		{"Description", strconv.Quote(decl.Description)},
		{"License", licenseConsts[decl.License]},
		{"Maturity", maturityConst(decl.Maturity)},
		{"Version", strconv.Quote(decl.Version)},
	}

	opt := func(key, value string) {
		if value != "" {
			fields = append(fields, field{key, strconv.Quote(value)})
		}
	}

	opt("Init", decl.Init)
	opt("Handlerton", decl.Handlerton)
	opt("Handler", decl.Handler)

	if c := decl.Encryption; c != nil {
		if c.IsBool() {
			fields = append(fields, field{"Encryption", fmt.Sprintf("&plugin.CipherRef{Bool: %t}", c.Bool)})
		} else {
			fields = append(fields, field{"Encryption", fmt.Sprintf("&plugin.CipherRef{Type: %q}", c.Type)})
		}
	}

	opt("Decryption", decl.Decryption)

	if len(decl.Variables) > 0 {
		vars := make([]string, len(decl.Variables))
		for i := range decl.Variables {
			vars[i] = varLiteral(&decl.Variables[i])
		}

		fields = append(fields, field{"Variables", "[]sysvar.Var{\n" + strings.Join(vars, ",\n") + ",\n}"})
	}

	return literal("&plugin.Declaration", fields)
}

func varLiteral(v *sysvar.Var) string {
	fields := []field{
		{"Name", strconv.Quote(v.Name)},
		{"Kind", kindConst(v.Kind)},
	}

	if v.Ident != "" {
		fields = append(fields, field{"Ident", strconv.Quote(v.Ident)})
	}

	fields = append(fields, field{"Description", strconv.Quote(v.Description)})

	if len(v.Options) > 0 {
		opts := make([]string, len(v.Options))
		for i, o := range v.Options {
			opts[i] = optionConsts[o]
		}

		fields = append(fields, field{"Options", "[]sysvar.Option{" + strings.Join(opts, ", ") + "}"})
	}

	for _, f := range []struct {
		key   string
		value any
	}{
		{"Default", v.Default},
		{"Min", v.Min},
		{"Max", v.Max},
		{"Block", v.Block},
	} {
		if f.value != nil {
			fields = append(fields, field{f.key, goValue(f.value)})
		}
	}

	if len(v.Values) > 0 {
		fields = append(fields, field{"Values", goStrings(v.Values)})
	}

	return literal("", fields)
}
