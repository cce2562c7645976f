package bridge

import (
	"sync"

	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

var strs struct {
	sync.Mutex
	alloc sysvar.Allocator
	byVal map[string]*byte
}

// SetAllocator sets where strings returned to the server are allocated.
// The server does not free them, so each distinct string is allocated
// once. cgo builds install a C heap allocator before the first call.
func SetAllocator(a sysvar.Allocator) {
	strs.Lock()
	defer strs.Unlock()

	strs.alloc = a
	strs.byVal = nil
}

// internCString returns a NUL-terminated copy of s that stays valid for the
// life of the process. An empty s returns nil.
func internCString(s string) *byte {
	if s == "" {
		return nil
	}

	strs.Lock()
	defer strs.Unlock()

	if p, ok := strs.byVal[s]; ok {
		return p
	}

	if strs.alloc == nil {
		strs.alloc = &sysvar.GoHeap{}
	}

	if strs.byVal == nil {
		strs.byVal = make(map[string]*byte)
	}

	p := strs.alloc.CString(s)
	strs.byVal[s] = p

	return p
}

// internCStrings returns a NULL-terminated array of interned strings. An
// empty ss still returns the terminator, never nil.
func internCStrings(ss []string) **byte {
	ptrs := make([]*byte, len(ss))
	for i, s := range ss {
		ptrs[i] = internCString(s)
	}

	return internArray(ptrs)
}

func internArray(ptrs []*byte) **byte {
	strs.Lock()
	defer strs.Unlock()

	if strs.alloc == nil {
		strs.alloc = &sysvar.GoHeap{}
	}

	out := sysvar.PointerArray(strs.alloc, len(ptrs)+1)
	for i, p := range ptrs {
		out[i] = p
	}

	return &out[0]
}
