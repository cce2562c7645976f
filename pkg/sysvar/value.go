package sysvar

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

// ErrKindMismatch is returned when a variable is looked up with the wrong
// accessor.
var ErrKindMismatch = errors.New("sysvar kind mismatch")

// The server writes value cells under its own lock when SET GLOBAL runs.
// Word-sized accessors load atomically.

// Bool reads a bool variable.
type Bool struct{ p *bool }

// BoolOf wraps a value cell.
func BoolOf(p *bool) Bool { return Bool{p} }

// Get returns the current value.
func (v Bool) Get() bool { return *v.p }

// Int32 reads an int variable.
type Int32 struct{ p *int32 }

// Int32Of wraps a value cell.
func Int32Of(p *int32) Int32 { return Int32{p} }

// Get returns the current value.
func (v Int32) Get() int32 { return atomic.LoadInt32(v.p) }

// Uint32 reads a uint variable.
type Uint32 struct{ p *uint32 }

// Uint32Of wraps a value cell.
func Uint32Of(p *uint32) Uint32 { return Uint32{p} }

// Get returns the current value.
func (v Uint32) Get() uint32 { return atomic.LoadUint32(v.p) }

// Int64 reads a long or longlong variable.
type Int64 struct{ p *int64 }

// Int64Of wraps a value cell.
func Int64Of(p *int64) Int64 { return Int64{p} }

// Get returns the current value.
func (v Int64) Get() int64 { return atomic.LoadInt64(v.p) }

// Uint64 reads an unsigned long or longlong variable.
type Uint64 struct{ p *uint64 }

// Uint64Of wraps a value cell.
func Uint64Of(p *uint64) Uint64 { return Uint64{p} }

// Get returns the current value.
func (v Uint64) Get() uint64 { return atomic.LoadUint64(v.p) }

// Float64 reads a double variable.
type Float64 struct{ p *float64 }

// Float64Of wraps a value cell.
func Float64Of(p *float64) Float64 { return Float64{p} }

// Get returns the current value.
func (v Float64) Get() float64 {
	return math.Float64frombits(atomic.LoadUint64((*uint64)(unsafe.Pointer(v.p))))
}

// String reads a string or const string variable.
type String struct{ p **byte }

// StringOf wraps a value cell.
func StringOf(p **byte) String { return String{p} }

// Get returns a copy of the current value.
func (v String) Get() string {
	return abi.GoString((*byte)(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(v.p)))))
}

// Enum reads an enum variable.
type Enum struct {
	p      *uint64
	values []string
}

// EnumOf wraps a value cell and its member names.
func EnumOf(p *uint64, values []string) Enum { return Enum{p, values} }

// Index returns the position of the current member.
func (v Enum) Index() uint64 { return atomic.LoadUint64(v.p) }

// Get returns the current member name, or "" when the index is out of range.
func (v Enum) Get() string {
	if i := v.Index(); i < uint64(len(v.values)) {
		return v.values[i]
	}

	return ""
}

// Set reads a set variable.
type Set struct {
	p      *uint64
	values []string
}

// SetOf wraps a value cell and its member names.
func SetOf(p *uint64, values []string) Set { return Set{p, values} }

// Mask returns the current bit mask.
func (v Set) Mask() uint64 { return atomic.LoadUint64(v.p) }

// Get returns the names of the members that are set, in declaration order.
func (v Set) Get() []string {
	mask := v.Mask()

	var out []string

	for i, name := range v.values {
		if mask&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}

	return out
}

func (t *Table) lookup(name string, kinds ...Kind) (*abi.SysVarHeader, Var, error) {
	h, v, ok := t.Record(name)
	if !ok {
		return nil, Var{}, errors.Newf("no sysvar '%s'", name)
	}

	for _, k := range kinds {
		if v.Kind == k {
			return h, v, nil
		}
	}

	return nil, Var{}, errors.Wrapf(ErrKindMismatch, "sysvar '%s' is %s", name, v.Kind)
}

// Bool returns the accessor of a bool variable.
func (t *Table) Bool(name string) (Bool, error) {
	h, _, err := t.lookup(name, KindBool)
	if err != nil {
		return Bool{}, err
	}

	return BoolOf((*abi.SysVarBool)(unsafe.Pointer(h)).Value), nil
}

// Int32 returns the accessor of an int variable.
func (t *Table) Int32(name string) (Int32, error) {
	h, _, err := t.lookup(name, KindInt)
	if err != nil {
		return Int32{}, err
	}

	return Int32Of((*abi.SysVarInt)(unsafe.Pointer(h)).Value), nil
}

// Uint32 returns the accessor of a uint variable.
func (t *Table) Uint32(name string) (Uint32, error) {
	h, _, err := t.lookup(name, KindUint)
	if err != nil {
		return Uint32{}, err
	}

	return Uint32Of((*abi.SysVarUInt)(unsafe.Pointer(h)).Value), nil
}

// Int64 returns the accessor of a long or longlong variable.
func (t *Table) Int64(name string) (Int64, error) {
	h, _, err := t.lookup(name, KindLong, KindLonglong)
	if err != nil {
		return Int64{}, err
	}

	return Int64Of((*abi.SysVarLong)(unsafe.Pointer(h)).Value), nil
}

// Uint64 returns the accessor of an unsigned long or longlong variable.
func (t *Table) Uint64(name string) (Uint64, error) {
	h, _, err := t.lookup(name, KindUlong, KindUlonglong)
	if err != nil {
		return Uint64{}, err
	}

	return Uint64Of((*abi.SysVarULong)(unsafe.Pointer(h)).Value), nil
}

// Float64 returns the accessor of a double variable.
func (t *Table) Float64(name string) (Float64, error) {
	h, _, err := t.lookup(name, KindDouble)
	if err != nil {
		return Float64{}, err
	}

	return Float64Of((*abi.SysVarDouble)(unsafe.Pointer(h)).Value), nil
}

// String returns the accessor of a string or const string variable.
func (t *Table) String(name string) (String, error) {
	h, _, err := t.lookup(name, KindStr, KindConstString)
	if err != nil {
		return String{}, err
	}

	return StringOf((*abi.SysVarStr)(unsafe.Pointer(h)).Value), nil
}

// Enum returns the accessor of an enum variable.
func (t *Table) Enum(name string) (Enum, error) {
	h, v, err := t.lookup(name, KindEnum)
	if err != nil {
		return Enum{}, err
	}

	return EnumOf((*abi.SysVarEnum)(unsafe.Pointer(h)).Value, v.Values), nil
}

// Set returns the accessor of a set variable.
func (t *Table) Set(name string) (Set, error) {
	h, v, err := t.lookup(name, KindSet)
	if err != nil {
		return Set{}, err
	}

	return SetOf((*abi.SysVarSet)(unsafe.Pointer(h)).Value, v.Values), nil
}
