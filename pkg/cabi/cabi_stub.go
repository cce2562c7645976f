//go:build !cgo

package cabi

import (
	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

// Enabled reports whether the C trampolines are compiled in.
const Enabled = false

// CHeap falls back to the Go heap.
var CHeap sysvar.Allocator = &sysvar.GoHeap{}

// CheckLayout always fails without cgo.
func CheckLayout() error { return ErrDisabled }

// HostBridgeAvailable is always false without cgo.
func HostBridgeAvailable() bool { return false }

// Install records nothing without cgo.
func Install(*bridge.Storage) {}

// HandlerVT returns nil without cgo.
func HandlerVT() *abi.HandlerBridgeVT { return nil }

// Handlerton returns nil without cgo.
func Handlerton() *abi.Handlerton { return nil }
