//go:build cgo

package cabi

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include "mariabridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/smykla-skalski/mariabridge/pkg/bridge"
)

// mb_plugin_init is the body of the init function of the plugin at idx in
// the declaration array. For a storage engine arg is the server's
// handlerton.
//
//export mb_plugin_init
func mb_plugin_init(idx C.int, arg unsafe.Pointer) C.int {
	checkLayout()

	p := pluginAt("init", idx)

	if p.Storage != nil {
		return C.int(initStorage(p, arg))
	}

	return C.int(bridge.WrapInit(p, arg))
}

//export mb_plugin_deinit
func mb_plugin_deinit(idx C.int, arg unsafe.Pointer) C.int {
	return C.int(bridge.WrapDeinit(pluginAt("deinit", idx), arg))
}
