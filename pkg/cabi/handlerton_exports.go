//go:build cgo

package cabi

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include "mariabridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

func hton(h *C.mb_handlerton) *abi.Handlerton {
	return (*abi.Handlerton)(unsafe.Pointer(h))
}

//export mb_hton_close_connection
func mb_hton_close_connection(h *C.mb_handlerton, thd unsafe.Pointer) C.int {
	return C.int(engine("close_connection").CloseConnection(hton(h), (*abi.Thd)(thd)))
}

//export mb_hton_kill_query
func mb_hton_kill_query(h *C.mb_handlerton, thd unsafe.Pointer, level C.int) {
	engine("kill_query").KillQuery(hton(h), (*abi.Thd)(thd), int32(level))
}

//export mb_hton_savepoint_set
func mb_hton_savepoint_set(h *C.mb_handlerton, thd, sv unsafe.Pointer) C.int {
	return C.int(engine("savepoint_set").SavepointSet(hton(h), (*abi.Thd)(thd), sv))
}

//export mb_hton_savepoint_rollback
func mb_hton_savepoint_rollback(h *C.mb_handlerton, thd, sv unsafe.Pointer) C.int {
	return C.int(engine("savepoint_rollback").SavepointRollback(hton(h), (*abi.Thd)(thd), sv))
}

//export mb_hton_savepoint_rollback_can_release_mdl
func mb_hton_savepoint_rollback_can_release_mdl(h *C.mb_handlerton, thd unsafe.Pointer) C.bool {
	return C.bool(engine("savepoint_rollback_can_release_mdl").SavepointRollbackCanReleaseMDL(hton(h), (*abi.Thd)(thd)))
}

//export mb_hton_savepoint_release
func mb_hton_savepoint_release(h *C.mb_handlerton, thd, sv unsafe.Pointer) C.int {
	return C.int(engine("savepoint_release").SavepointRelease(hton(h), (*abi.Thd)(thd), sv))
}

//export mb_hton_commit
func mb_hton_commit(h *C.mb_handlerton, thd unsafe.Pointer, all C.bool) C.int {
	return C.int(engine("commit").Commit(hton(h), (*abi.Thd)(thd), bool(all)))
}

//export mb_hton_commit_ordered
func mb_hton_commit_ordered(h *C.mb_handlerton, thd unsafe.Pointer, all C.bool) {
	engine("commit_ordered").CommitOrdered(hton(h), (*abi.Thd)(thd), bool(all))
}

//export mb_hton_rollback
func mb_hton_rollback(h *C.mb_handlerton, thd unsafe.Pointer, all C.bool) C.int {
	return C.int(engine("rollback").Rollback(hton(h), (*abi.Thd)(thd), bool(all)))
}

//export mb_hton_prepare
func mb_hton_prepare(h *C.mb_handlerton, thd unsafe.Pointer, all C.bool) C.int {
	return C.int(engine("prepare").Prepare(hton(h), (*abi.Thd)(thd), bool(all)))
}

//export mb_hton_prepare_ordered
func mb_hton_prepare_ordered(h *C.mb_handlerton, thd unsafe.Pointer, all C.bool) {
	engine("prepare_ordered").PrepareOrdered(hton(h), (*abi.Thd)(thd), bool(all))
}
