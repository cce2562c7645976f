//go:build cgo

package cabi

/*
#include <stdlib.h>
*/
import "C"

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

type cHeap struct{}

// CHeap allocates from the C heap. Nothing it returns is freed.
var CHeap sysvar.Allocator = cHeap{}

func (cHeap) New(typ reflect.Type) unsafe.Pointer {
	size := max(typ.Size(), 1)

	p := C.calloc(1, C.size_t(size))
	if p == nil {
		bridge.Fatal(errors.Newf("calloc of %d bytes for %s failed", size, typ))
	}

	return p
}

func (cHeap) CString(s string) *byte {
	return (*byte)(unsafe.Pointer(C.CString(s)))
}

func init() {
	bridge.SetAllocator(CHeap)
}
