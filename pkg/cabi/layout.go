//go:build cgo

package cabi

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include "mariabridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

type layoutCheck struct {
	what    string
	c, mine uintptr
}

func layoutChecks() []layoutCheck {
	return []layoutCheck{
		{"mb_handler_bridge_vt", unsafe.Sizeof(C.mb_handler_bridge_vt{}), unsafe.Sizeof(abi.HandlerBridgeVT{})},
		{"mb_handler_bridge_vt slots", C.MB_HANDLER_SLOTS, uintptr(abi.HandlerBridgeSlots)},
		{"mb_handler_bridge_vt.store_lock", unsafe.Offsetof(C.mb_handler_bridge_vt{}.store_lock), unsafe.Offsetof(abi.HandlerBridgeVT{}.StoreLock)},

		{"mb_handler_bridge_state", unsafe.Sizeof(C.mb_handler_bridge_state{}), unsafe.Sizeof(abi.HandlerBridge{})},
		{"mb_handler_bridge_state.data", unsafe.Offsetof(C.mb_handler_bridge_state{}.data), unsafe.Offsetof(abi.HandlerBridge{}.Data)},
		{"mb_handler_bridge_state.type_id", unsafe.Offsetof(C.mb_handler_bridge_state{}.type_id), unsafe.Offsetof(abi.HandlerBridge{}.TypeID)},
		{"mb_handler_bridge_state.stats", unsafe.Offsetof(C.mb_handler_bridge_state{}.stats), unsafe.Offsetof(abi.HandlerBridge{}.Stats)},
		{"mb_handler_bridge_state.ref_length", unsafe.Offsetof(C.mb_handler_bridge_state{}.ref_length), unsafe.Offsetof(abi.HandlerBridge{}.RefLength)},
		{"mb_handler_bridge_state.active_index", unsafe.Offsetof(C.mb_handler_bridge_state{}.active_index), unsafe.Offsetof(abi.HandlerBridge{}.ActiveIndex)},

		{"mb_handlerton", unsafe.Sizeof(C.mb_handlerton{}), unsafe.Sizeof(abi.Handlerton{})},
		{"mb_handlerton.create", unsafe.Offsetof(C.mb_handlerton{}.create), unsafe.Offsetof(abi.Handlerton{}.Create)},
		{"mb_handlerton.tablefile_extensions", unsafe.Offsetof(C.mb_handlerton{}.tablefile_extensions), unsafe.Offsetof(abi.Handlerton{}.TablefileExtensions)},

		{"mb_statistics", unsafe.Sizeof(C.mb_statistics{}), unsafe.Sizeof(abi.Statistics{})},
		{"mb_statistics.block_size", unsafe.Offsetof(C.mb_statistics{}.block_size), unsafe.Offsetof(abi.Statistics{}.BlockSize)},
		{"mb_optimizer_costs", unsafe.Sizeof(C.mb_optimizer_costs{}), unsafe.Sizeof(abi.OptimizerCosts{})},

		{"mb_table_share", unsafe.Sizeof(C.mb_table_share{}), unsafe.Sizeof(abi.TableShare{})},
		{"mb_table_share.reclength", unsafe.Offsetof(C.mb_table_share{}.reclength), unsafe.Offsetof(abi.TableShare{}.RecLength)},
		{"mb_table_share.key_lengths", unsafe.Offsetof(C.mb_table_share{}.key_lengths), unsafe.Offsetof(abi.TableShare{}.KeyLengths)},
		{"mb_table", unsafe.Sizeof(C.mb_table{}), unsafe.Sizeof(abi.Table{})},
		{"mb_table.record", unsafe.Offsetof(C.mb_table{}.record), unsafe.Offsetof(abi.Table{}.Record)},
		{"mb_create_info", unsafe.Sizeof(C.mb_create_info{}), unsafe.Sizeof(abi.CreateInfo{})},
		{"mb_create_info.table_options", unsafe.Offsetof(C.mb_create_info{}.table_options), unsafe.Offsetof(abi.CreateInfo{}.TableOptions)},
		{"mb_key_range", unsafe.Sizeof(C.mb_key_range{}), unsafe.Sizeof(abi.KeyRange{})},
		{"mb_key_range.keypart_map", unsafe.Offsetof(C.mb_key_range{}.keypart_map), unsafe.Offsetof(abi.KeyRange{}.KeypartMap)},
		{"mb_page_range", unsafe.Sizeof(C.mb_page_range{}), unsafe.Sizeof(abi.PageRange{})},
		{"mb_io_and_cpu_cost", unsafe.Sizeof(C.mb_io_and_cpu_cost{}), unsafe.Sizeof(abi.IOAndCPUCost{})},
		{"mb_lex_cstring", unsafe.Sizeof(C.mb_lex_cstring{}), unsafe.Sizeof(abi.LexCString{})},

		{"mb_crypt_ctx", unsafe.Sizeof(C.mb_crypt_ctx{}), abi.SizeofCryptCtx},
		{"mb_crypt_ctx.type_id", unsafe.Offsetof(C.mb_crypt_ctx{}.type_id), unsafe.Offsetof(abi.CryptCtx{}.TypeID)},
	}
}

// CheckLayout compares the C records of include/mariabridge.h with their
// pkg/abi mirrors and describes every mismatch.
func CheckLayout() error {
	var errs []error

	for _, c := range layoutChecks() {
		if c.c != c.mine {
			errs = append(errs, errors.Newf("%s: C %d, Go %d", c.what, c.c, c.mine))
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Wrapf(errors.Join(errs...), "%d layout mismatch(es)", len(errs))
}
