package bridge

import (
	"sync"
	"sync/atomic"
)

// Handle refers to a boxed Go value from C memory. Handle 0 is never
// issued and means "no instance".
type Handle uintptr

// Box is a registry of values referenced from C. C memory must not hold Go
// pointers, so instances live here and the host keeps only their handle.
type Box struct {
	values sync.Map // Handle -> any
	next   atomic.Uintptr
	live   atomic.Int64
}

// Put stores v and returns its handle.
func (b *Box) Put(v any) Handle {
	h := Handle(b.next.Add(1))
	b.values.Store(h, v)
	b.live.Add(1)

	return h
}

// Get returns the value stored under h.
func (b *Box) Get(h Handle) (any, bool) {
	if h == 0 {
		return nil, false
	}

	return b.values.Load(h)
}

// Release removes h and returns its value. Releasing a handle twice
// reports false the second time.
func (b *Box) Release(h Handle) (any, bool) {
	if h == 0 {
		return nil, false
	}

	v, ok := b.values.LoadAndDelete(h)
	if ok {
		b.live.Add(-1)
	}

	return v, ok
}

// Live returns the number of values not yet released.
func (b *Box) Live() int { return int(b.live.Load()) }

var handles Box

// Live returns the number of instances the bridge has boxed and not yet
// released, across every table in the process.
func Live() int { return handles.Live() }

func unbox[T any](h Handle) (T, bool) {
	v, ok := handles.Get(h)
	if !ok {
		var zero T

		return zero, false
	}

	t, ok := v.(T)

	return t, ok
}
