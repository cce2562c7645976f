//go:build cgo

package cabi

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include "mariabridge.h"

extern mb_handler_bridge_vt mb_storage_vt;
extern mb_handlerton mb_storage_hton;

void mb_fill_handler_vt(const bool *present);
void mb_fill_handlerton(const bool *present);
int mb_host_bridge_available(void);
int mb_install_handlerton(void *hton);
*/
import "C"

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

// Enabled reports whether the C trampolines are compiled in.
const Enabled = true

var active atomic.Pointer[bridge.Storage]

func handlers(slot string) *bridge.HandlerTable {
	s := active.Load()
	if s == nil {
		bridge.Fatal(errors.Newf("%s: no storage engine installed", slot))
	}

	return s.Handler
}

func engine(slot string) *bridge.HandlertonTable {
	s := active.Load()
	if s == nil {
		bridge.Fatal(errors.Newf("%s: no storage engine installed", slot))
	}

	return s.Handlerton
}

func pluginAt(slot string, idx C.int) *bridge.Plugin {
	p, ok := bridge.Default.At(int(idx))
	if !ok {
		bridge.Fatal(errors.Newf("%s: no plugin at index %d", slot, int(idx)))
	}

	return p
}

func encryptionAt(slot string, idx C.int) *bridge.EncryptionTable {
	p := pluginAt(slot, idx)
	if p.Encryption == nil {
		bridge.Fatal(errors.Newf("%s: plugin %s is not an encryption plugin", slot, p.Name()))
	}

	return p.Encryption
}

// HandlerVT returns the vtable every handler_bridge of this library is
// constructed with.
func HandlerVT() *abi.HandlerBridgeVT {
	return (*abi.HandlerBridgeVT)(unsafe.Pointer(&C.mb_storage_vt))
}

// Handlerton returns the handlerton view handed to the server.
func Handlerton() *abi.Handlerton {
	return (*abi.Handlerton)(unsafe.Pointer(&C.mb_storage_hton))
}

func present(slots []bool) *C.bool {
	return (*C.bool)(unsafe.Pointer(&slots[0]))
}

// Install makes s the storage engine the trampolines dispatch to and fills
// the vtable and handlerton slots from its tables.
func Install(s *bridge.Storage) {
	C.mb_fill_handler_vt(present(s.Handler.Slots()))
	C.mb_fill_handlerton(present(s.Handlerton.Slots()))

	active.Store(s)

	logger.Default().Debug("installed storage engine tables",
		"handler_tag", s.Handler.Tag,
	)
}

// HostBridgeAvailable reports whether the server exports the
// handler_bridge entry points.
func HostBridgeAvailable() bool { return C.mb_host_bridge_available() != 0 }

var layoutOnce = sync.OnceValue(CheckLayout)

func checkLayout() {
	if err := layoutOnce(); err != nil {
		bridge.Fatal(err)
	}
}

func initStorage(p *bridge.Plugin, hton unsafe.Pointer) int32 {
	if hton != nil && !HostBridgeAvailable() {
		logger.Default().Error("failed to load plugin "+p.Name(), "error", ErrNoHostBridge)

		return 1
	}

	Install(p.Storage)
	p.Storage.Init(Handlerton())

	if rc := bridge.WrapInit(p, nil); rc != 0 {
		return rc
	}

	if hton == nil {
		return 0
	}

	if rc := C.mb_install_handlerton(hton); rc != 0 {
		logger.Default().Error("failed to load plugin "+p.Name(),
			"error", errors.Wrapf(ErrNoHostBridge, "ha_bridge_install returned %d", int(rc)),
		)

		bridge.WrapDeinit(p, nil)

		return 1
	}

	return 0
}
