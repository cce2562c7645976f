// Package bridge turns typed storage and encryption implementations into
// the fixed-order slot tables the server calls through.
//
// Each slot is a plain Go function over the raw records the host passes in.
// The handler and crypt context slots first check the type tag stored next
// to the instance handle, then unbox the instance and call the matching
// method. A tag mismatch, or an operation on a destroyed instance, is an
// ABI violation and panics with ErrABI. Panics from plugin code are
// recovered and reported to the server as HA_ERR_INTERNAL_ERROR.
//
// pkg/cabi exports these tables as C functions in cgo builds. The tables
// can also be driven directly from Go, which is how the tests exercise
// them.
package bridge

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// TypeTag identifies the Go type behind a handle. It is a UUIDv5 of the
// type's qualified name, so it is stable across builds of the same code.
// The zero tag marks an uninitialized handle.
type TypeTag [16]byte

var tagNamespace = uuid.MustParse("6f1c3a52-8d3e-5b7a-9c41-2e5d0b7f4a10")

var tagCache sync.Map // reflect.Type -> TypeTag

// TagOf returns the tag of T.
func TagOf[T any]() TypeTag {
	return tagFor(reflect.TypeFor[T]())
}

func tagFor(t reflect.Type) TypeTag {
	if v, ok := tagCache.Load(t); ok {
		return v.(TypeTag)
	}

	tag := TypeTag(uuid.NewSHA1(tagNamespace, []byte(qualifiedName(t))))
	tagCache.Store(t, tag)

	return tag
}

func qualifiedName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

// IsZero reports whether t is the uninitialized tag.
func (t TypeTag) IsZero() bool { return t == TypeTag{} }

func (t TypeTag) String() string { return uuid.UUID(t).String() }
