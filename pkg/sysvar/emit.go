package sysvar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CRecord is one variable rendered as the arguments of a MYSQL_SYSVAR_*
// macro. Every string field is C source text.
type CRecord struct {
	Name string
	// Cell is the identifier of the static value cell.
	Cell string
	// CType is the C type of the value cell.
	CType string
	// Accessor names the sysvar accessor type Go code wraps the cell in.
	Accessor string
	// GoType is the Go type the cell is converted to for the accessor.
	GoType  string
	Macro   string
	Options string
	Comment string
	Default string
	Min     string
	Max     string
	Block   string
	// Values are the quoted member names of an enum or set.
	Values []string
}

// Ranged reports whether the macro takes min, max and block arguments.
func (r *CRecord) Ranged() bool { return r.Min != "" }

// Typelib reports whether the record needs a TYPELIB.
func (r *CRecord) Typelib() bool { return len(r.Values) > 0 }

// Args returns the macro argument list after (name, cell). For enums and
// sets the trailing typelib argument is the address of <cell>_typelib.
func (r *CRecord) Args() string {
	args := []string{r.Options, r.Comment, "NULL", "NULL", r.Default}

	switch {
	case r.Ranged():
		args = append(args, r.Min, r.Max, r.Block)
	case r.Typelib():
		args = append(args, "&"+r.Cell+"_typelib")
	}

	return strings.Join(args, ", ")
}

// Decl returns the complete static record declaration.
func (r *CRecord) Decl() string {
	return fmt.Sprintf("static %s(%s, %s, %s);", r.Macro, r.Name, r.Cell, r.Args())
}

var optionMacros = []struct {
	opt   Option
	macro string
}{
	{ReadOnly, "PLUGIN_VAR_READONLY"},
	{NoSysVar, "PLUGIN_VAR_NOSYSVAR"},
	{NoCmdOpt, "PLUGIN_VAR_NOCMDOPT"},
	{NoCmdArg, "PLUGIN_VAR_NOCMDARG"},
	{OptionalCmdArg, "PLUGIN_VAR_OPCMDARG"},
	{Deprecated, "PLUGIN_VAR_DEPRECATED"},
}

var kindMacros = map[Kind]struct{ macro, ctype, accessor, gotype string }{
	KindBool:        {"MYSQL_SYSVAR_BOOL", "my_bool", "Bool", "bool"},
	KindStr:         {"MYSQL_SYSVAR_STR", "char *", "String", "*byte"},
	KindConstString: {"MYSQL_SYSVAR_STR", "char *", "String", "*byte"},
	KindInt:         {"MYSQL_SYSVAR_INT", "int", "Int32", "int32"},
	KindUint:        {"MYSQL_SYSVAR_UINT", "unsigned int", "Uint32", "uint32"},
	KindLong:        {"MYSQL_SYSVAR_LONG", "long", "Int64", "int64"},
	KindUlong:       {"MYSQL_SYSVAR_ULONG", "unsigned long", "Uint64", "uint64"},
	KindLonglong:    {"MYSQL_SYSVAR_LONGLONG", "long long", "Int64", "int64"},
	KindUlonglong:   {"MYSQL_SYSVAR_ULONGLONG", "unsigned long long", "Uint64", "uint64"},
	KindDouble:      {"MYSQL_SYSVAR_DOUBLE", "double", "Float64", "float64"},
	KindEnum:        {"MYSQL_SYSVAR_ENUM", "unsigned long", "Enum", "uint64"},
	KindSet:         {"MYSQL_SYSVAR_SET", "unsigned long long", "Set", "uint64"},
}

// Emit validates vars and renders them for the C records file. The macros
// add the kind and UNSIGNED bits themselves, so Options carries only the
// option bits and the ones a string kind implies.
func Emit(vars []Var) ([]CRecord, error) {
	vars = append([]Var(nil), vars...)
	if err := Validate(vars); err != nil {
		return nil, err
	}

	out := make([]CRecord, 0, len(vars))

	for i := range vars {
		out = append(out, emit(&vars[i]))
	}

	return out, nil
}

func emit(v *Var) CRecord {
	k := kindMacros[v.Kind]

	r := CRecord{
		Name:     v.Name,
		Cell:     v.GoIdent() + "_value",
		CType:    k.ctype,
		Accessor: k.accessor,
		GoType:   k.gotype,
		Macro:    k.macro,
		Options:  optionText(v),
		Comment:  CQuote(v.Description),
	}

	switch v.Kind {
	case KindBool:
		r.Default = "0"
		if v.Default.(bool) {
			r.Default = "1"
		}
	case KindStr, KindConstString:
		r.Default = "NULL"
		if s := v.Default.(string); s != "" {
			r.Default = CQuote(s)
		}
	case KindInt:
		r.Default, r.Min, r.Max, r.Block = ints(v, math.MinInt32, "")
	case KindLong:
		r.Default, r.Min, r.Max, r.Block = ints(v, math.MinInt64, "L")
	case KindLonglong:
		r.Default, r.Min, r.Max, r.Block = ints(v, math.MinInt64, "LL")
	case KindUint:
		r.Default, r.Min, r.Max, r.Block = uints(v, "U")
	case KindUlong:
		r.Default, r.Min, r.Max, r.Block = uints(v, "UL")
	case KindUlonglong:
		r.Default, r.Min, r.Max, r.Block = uints(v, "ULL")
	case KindDouble:
		r.Default, r.Min, r.Max, r.Block = floatLit(v.Default), floatLit(v.Min), floatLit(v.Max), floatLit(v.Block)
	case KindEnum:
		r.Default = strconv.FormatUint(v.EnumIndex(), 10)
		r.Values = quoteAll(v.Values)
	case KindSet:
		r.Default = strconv.FormatUint(v.SetMask(), 10) + "ULL"
		r.Values = quoteAll(v.Values)
	}

	return r
}

func optionText(v *Var) string {
	var parts []string

	for _, m := range optionMacros {
		if int32(m.opt)&(v.Flags()&^v.Kind.Code()) != 0 {
			parts = append(parts, m.macro)
		}
	}

	if v.Kind == KindStr {
		parts = append(parts, "PLUGIN_VAR_MEMALLOC")
	}

	if len(parts) == 0 {
		return "0"
	}

	return strings.Join(parts, " | ")
}

func ints(v *Var, lo int64, suffix string) (def, minV, maxV, block string) {
	lit := func(x any) string {
		n := x.(int64)
		if n == lo {
			// The most negative literal overflows before negation in C.
			return fmt.Sprintf("(%d%s - 1)", n+1, suffix)
		}

		return strconv.FormatInt(n, 10) + suffix
	}

	return lit(v.Default), lit(v.Min), lit(v.Max), lit(v.Block)
}

func uints(v *Var, suffix string) (def, minV, maxV, block string) {
	lit := func(x any) string { return strconv.FormatUint(x.(uint64), 10) + suffix }

	return lit(v.Default), lit(v.Min), lit(v.Max), lit(v.Block)
}

func floatLit(x any) string {
	s := strconv.FormatFloat(x.(float64), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}

	return s
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, s := range values {
		out[i] = CQuote(s)
	}

	return out
}

// CQuote returns s as a C string literal. Bytes outside printable ASCII are
// written as octal escapes.
func CQuote(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for i := range len(s) {
		c := s[i]

		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\%03o`, c)
		case c == '?':
			// Keeps trigraph sequences from forming.
			b.WriteString(`\?`)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte('"')

	return b.String()
}
