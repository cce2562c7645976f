package sysvar

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

// Allocator provides the memory records and value cells live in. The
// server keeps pointers into it for the life of the process, so nothing
// allocated is ever freed.
type Allocator interface {
	// New returns zeroed storage for one value of typ.
	New(typ reflect.Type) unsafe.Pointer

	// CString returns a NUL-terminated copy of s.
	CString(s string) *byte
}

// GoHeap allocates from the Go heap and keeps everything reachable. It is
// suitable for tests and for inspecting a registration in process; memory
// handed to the server must come from the C heap.
type GoHeap struct {
	keep []any
}

// New implements Allocator.
func (g *GoHeap) New(typ reflect.Type) unsafe.Pointer {
	v := reflect.New(typ)
	g.keep = append(g.keep, v.Interface())

	return v.UnsafePointer()
}

// CString implements Allocator.
func (g *GoHeap) CString(s string) *byte {
	b := abi.CString(s)
	g.keep = append(g.keep, b)

	return &b[0]
}

func alloc[T any](a Allocator) *T {
	return (*T)(a.New(reflect.TypeFor[T]()))
}

// PointerArray allocates n zeroed string pointers from a.
func PointerArray(a Allocator, n int) []*byte {
	return unsafe.Slice((**byte)(a.New(reflect.ArrayOf(n, reflect.TypeFor[*byte]()))), n)
}

// Table is the encoded form of a variable list.
type Table struct {
	vars    []Var
	records []*abi.SysVarHeader
	array   *unsafe.Pointer
}

// Build validates vars and encodes them with a. A nil a uses a fresh
// GoHeap.
func Build(vars []Var, a Allocator) (*Table, error) {
	if a == nil {
		a = &GoHeap{}
	}

	vars = append([]Var(nil), vars...)
	if err := Validate(vars); err != nil {
		return nil, err
	}

	t := &Table{vars: vars}
	if len(vars) == 0 {
		return t, nil
	}

	ptrs := unsafe.Slice((*unsafe.Pointer)(a.New(reflect.ArrayOf(len(vars)+1, reflect.TypeFor[unsafe.Pointer]()))), len(vars)+1)

	for i := range vars {
		h, err := encode(&vars[i], a)
		if err != nil {
			return nil, errors.Wrapf(err, "sysvar '%s'", vars[i].Name)
		}

		t.records = append(t.records, h)
		ptrs[i] = unsafe.Pointer(h)
	}

	t.array = &ptrs[0]

	return t, nil
}

// Attach wraps a NULL-terminated record array that was built elsewhere,
// typically the static records of generated C code, so the accessors can
// read it. vars must be the normalised declarations in array order; they
// are not validated again.
func Attach(vars []Var, array *unsafe.Pointer) *Table {
	t := &Table{}
	if array == nil || len(vars) == 0 {
		return t
	}

	for i, p := range unsafe.Slice(array, len(vars)) {
		if p == nil {
			break
		}

		t.vars = append(t.vars, vars[i])
		t.records = append(t.records, (*abi.SysVarHeader)(p))
	}

	t.array = array

	return t
}

// Len returns the number of variables.
func (t *Table) Len() int { return len(t.records) }

// Vars returns the validated, normalised declarations.
func (t *Table) Vars() []Var { return t.vars }

// Array returns the NULL-terminated pointer array for the descriptor's
// system_vars field, or nil when there are no variables.
func (t *Table) Array() *unsafe.Pointer { return t.array }

// Pointers returns the array as a slice, terminator included. It is nil
// when there are no variables.
func (t *Table) Pointers() []unsafe.Pointer {
	if t.array == nil {
		return nil
	}

	return unsafe.Slice(t.array, len(t.records)+1)
}

// Record returns the header of the variable called name.
func (t *Table) Record(name string) (*abi.SysVarHeader, Var, bool) {
	for i, v := range t.vars {
		if v.Name == name {
			return t.records[i], v, true
		}
	}

	return nil, Var{}, false
}

func header(v *Var, a Allocator) abi.SysVarHeader {
	return abi.SysVarHeader{
		Flags:   v.Flags(),
		Name:    a.CString(v.Name),
		Comment: a.CString(v.Description),
	}
}

func encode(v *Var, a Allocator) (*abi.SysVarHeader, error) {
	switch v.Kind {
	case KindBool:
		r := alloc[abi.SysVarBool](a)
		r.SysVarHeader = header(v, a)
		r.Default = v.Default.(bool)
		r.Value = alloc[bool](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	case KindStr, KindConstString:
		r := alloc[abi.SysVarStr](a)
		r.SysVarHeader = header(v, a)

		if s := v.Default.(string); s != "" {
			r.Default = a.CString(s)
		}

		r.Value = alloc[*byte](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	case KindInt:
		r := alloc[abi.SysVarInt](a)
		r.SysVarHeader = header(v, a)
		r.Default = int32(v.Default.(int64))
		r.Min = int32(v.Min.(int64))
		r.Max = int32(v.Max.(int64))
		r.Block = int32(v.Block.(int64))
		r.Value = alloc[int32](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	case KindUint:
		r := alloc[abi.SysVarUInt](a)
		r.SysVarHeader = header(v, a)
		r.Default = uint32(v.Default.(uint64))
		r.Min = uint32(v.Min.(uint64))
		r.Max = uint32(v.Max.(uint64))
		r.Block = uint32(v.Block.(uint64))
		r.Value = alloc[uint32](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	case KindLong, KindLonglong:
		r := alloc[abi.SysVarLong](a)
		r.SysVarHeader = header(v, a)
		r.Default = v.Default.(int64)
		r.Min = v.Min.(int64)
		r.Max = v.Max.(int64)
		r.Block = v.Block.(int64)
		r.Value = alloc[int64](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	case KindUlong, KindUlonglong:
		r := alloc[abi.SysVarULong](a)
		r.SysVarHeader = header(v, a)
		r.Default = v.Default.(uint64)
		r.Min = v.Min.(uint64)
		r.Max = v.Max.(uint64)
		r.Block = v.Block.(uint64)
		r.Value = alloc[uint64](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	case KindDouble:
		r := alloc[abi.SysVarDouble](a)
		r.SysVarHeader = header(v, a)
		r.Default = v.Default.(float64)
		r.Min = v.Min.(float64)
		r.Max = v.Max.(float64)
		r.Block = v.Block.(float64)
		r.Value = alloc[float64](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	case KindEnum:
		r := alloc[abi.SysVarEnum](a)
		r.SysVarHeader = header(v, a)
		r.Default = v.EnumIndex()
		r.Typelib = typelib(v, a)
		r.Value = alloc[uint64](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	case KindSet:
		r := alloc[abi.SysVarSet](a)
		r.SysVarHeader = header(v, a)
		r.Default = v.SetMask()
		r.Typelib = typelib(v, a)
		r.Value = alloc[uint64](a)
		*r.Value = r.Default

		return &r.SysVarHeader, nil
	}

	return nil, errors.Wrapf(ErrInvalid, "cannot encode %s", v.Kind)
}

// typelib builds the name table of an enum or set. Both arrays carry a
// trailing terminator entry.
func typelib(v *Var, a Allocator) *abi.Typelib {
	n := len(v.Values)

	names := PointerArray(a, n+1)
	lengths := unsafe.Slice((*uint32)(a.New(reflect.ArrayOf(n+1, reflect.TypeFor[uint32]()))), n+1)

	for i, s := range v.Values {
		names[i] = a.CString(s)
		lengths[i] = uint32(len(s))
	}

	tl := alloc[abi.Typelib](a)
	tl.Count = uintptr(n)
	tl.Name = a.CString("")
	tl.TypeNames = &names[0]
	tl.TypeLengths = &lengths[0]

	return tl
}
