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

func st(b *C.mb_handler_bridge_state) *abi.HandlerBridge {
	return (*abi.HandlerBridge)(unsafe.Pointer(b))
}

func buf(p *C.uchar) *byte { return (*byte)(unsafe.Pointer(p)) }

func cost(c abi.IOAndCPUCost) C.mb_io_and_cpu_cost {
	return C.mb_io_and_cpu_cost{io: C.double(c.IO), cpu: C.double(c.CPU)}
}

//export mb_handler_constructor
func mb_handler_constructor(b *C.mb_handler_bridge_state, hton *C.mb_handlerton, mem unsafe.Pointer, share *C.mb_table_share) {
	handlers("constructor").Constructor(st(b),
		(*abi.Handlerton)(unsafe.Pointer(hton)),
		(*abi.MemRoot)(mem),
		(*abi.TableShare)(unsafe.Pointer(share)))
}

//export mb_handler_destructor
func mb_handler_destructor(b *C.mb_handler_bridge_state) {
	handlers("destructor").Destructor(st(b))
}

//export mb_handler_index_type
func mb_handler_index_type(b *C.mb_handler_bridge_state, index C.uint) *C.char {
	return (*C.char)(unsafe.Pointer(handlers("index_type").IndexType(st(b), uint32(index))))
}

//export mb_handler_table_flags
func mb_handler_table_flags(b *C.mb_handler_bridge_state) C.ulonglong {
	return C.ulonglong(handlers("table_flags").TableFlags(st(b)))
}

//export mb_handler_index_flags
func mb_handler_index_flags(b *C.mb_handler_bridge_state, index, part C.uint, allParts C.bool) C.ulong {
	return C.ulong(handlers("index_flags").IndexFlags(st(b), uint32(index), uint32(part), bool(allParts)))
}

//export mb_handler_max_supported_record_length
func mb_handler_max_supported_record_length(b *C.mb_handler_bridge_state) C.uint {
	return C.uint(handlers("max_supported_record_length").MaxSupportedRecordLength(st(b)))
}

//export mb_handler_max_supported_keys
func mb_handler_max_supported_keys(b *C.mb_handler_bridge_state) C.uint {
	return C.uint(handlers("max_supported_keys").MaxSupportedKeys(st(b)))
}

//export mb_handler_max_supported_key_parts
func mb_handler_max_supported_key_parts(b *C.mb_handler_bridge_state) C.uint {
	return C.uint(handlers("max_supported_key_parts").MaxSupportedKeyParts(st(b)))
}

//export mb_handler_max_supported_key_length
func mb_handler_max_supported_key_length(b *C.mb_handler_bridge_state) C.uint {
	return C.uint(handlers("max_supported_key_length").MaxSupportedKeyLength(st(b)))
}

//export mb_handler_scan_time
func mb_handler_scan_time(b *C.mb_handler_bridge_state) C.mb_io_and_cpu_cost {
	return cost(handlers("scan_time").ScanTime(st(b)))
}

//export mb_handler_keyread_time
func mb_handler_keyread_time(b *C.mb_handler_bridge_state, index C.uint, ranges C.ulong, rows, blocks C.ulonglong) C.mb_io_and_cpu_cost {
	return cost(handlers("keyread_time").KeyreadTime(st(b), uint32(index), uint64(ranges), uint64(rows), uint64(blocks)))
}

//export mb_handler_rnd_pos_time
func mb_handler_rnd_pos_time(b *C.mb_handler_bridge_state, rows C.ulonglong) C.mb_io_and_cpu_cost {
	return cost(handlers("rnd_pos_time").RndPosTime(st(b), uint64(rows)))
}

//export mb_handler_open
func mb_handler_open(b *C.mb_handler_bridge_state, name *C.char, mode C.int, testIfLocked C.uint) C.int {
	return C.int(handlers("open").Open(st(b), (*byte)(unsafe.Pointer(name)), int32(mode), uint32(testIfLocked)))
}

//export mb_handler_close
func mb_handler_close(b *C.mb_handler_bridge_state) C.int {
	return C.int(handlers("close").Close(st(b)))
}

//export mb_handler_write_row
func mb_handler_write_row(b *C.mb_handler_bridge_state, row *C.uchar) C.int {
	return C.int(handlers("write_row").WriteRow(st(b), buf(row)))
}

//export mb_handler_update_row
func mb_handler_update_row(b *C.mb_handler_bridge_state, old, updated *C.uchar) C.int {
	return C.int(handlers("update_row").UpdateRow(st(b), buf(old), buf(updated)))
}

//export mb_handler_delete_row
func mb_handler_delete_row(b *C.mb_handler_bridge_state, row *C.uchar) C.int {
	return C.int(handlers("delete_row").DeleteRow(st(b), buf(row)))
}

//export mb_handler_index_read_map
func mb_handler_index_read_map(b *C.mb_handler_bridge_state, row, key *C.uchar, keypartMap C.ulong, find C.int) C.int {
	return C.int(handlers("index_read_map").IndexReadMap(st(b), buf(row), buf(key), uint64(keypartMap), int32(find)))
}

//export mb_handler_index_next
func mb_handler_index_next(b *C.mb_handler_bridge_state, row *C.uchar) C.int {
	return C.int(handlers("index_next").IndexNext(st(b), buf(row)))
}

//export mb_handler_index_prev
func mb_handler_index_prev(b *C.mb_handler_bridge_state, row *C.uchar) C.int {
	return C.int(handlers("index_prev").IndexPrev(st(b), buf(row)))
}

//export mb_handler_index_first
func mb_handler_index_first(b *C.mb_handler_bridge_state, row *C.uchar) C.int {
	return C.int(handlers("index_first").IndexFirst(st(b), buf(row)))
}

//export mb_handler_index_last
func mb_handler_index_last(b *C.mb_handler_bridge_state, row *C.uchar) C.int {
	return C.int(handlers("index_last").IndexLast(st(b), buf(row)))
}

//export mb_handler_rnd_init
func mb_handler_rnd_init(b *C.mb_handler_bridge_state, scan C.bool) C.int {
	return C.int(handlers("rnd_init").RndInit(st(b), bool(scan)))
}

//export mb_handler_rnd_end
func mb_handler_rnd_end(b *C.mb_handler_bridge_state) C.int {
	return C.int(handlers("rnd_end").RndEnd(st(b)))
}

//export mb_handler_rnd_next
func mb_handler_rnd_next(b *C.mb_handler_bridge_state, row *C.uchar) C.int {
	return C.int(handlers("rnd_next").RndNext(st(b), buf(row)))
}

//export mb_handler_rnd_pos
func mb_handler_rnd_pos(b *C.mb_handler_bridge_state, row, pos *C.uchar) C.int {
	return C.int(handlers("rnd_pos").RndPos(st(b), buf(row), buf(pos)))
}

//export mb_handler_position
func mb_handler_position(b *C.mb_handler_bridge_state, record *C.uchar) {
	handlers("position").Position(st(b), buf(record))
}

//export mb_handler_info
func mb_handler_info(b *C.mb_handler_bridge_state, flag C.uint) C.int {
	return C.int(handlers("info").Info(st(b), uint32(flag)))
}

//export mb_handler_extra
func mb_handler_extra(b *C.mb_handler_bridge_state, op C.int) C.int {
	return C.int(handlers("extra").Extra(st(b), int32(op)))
}

//export mb_handler_external_lock
func mb_handler_external_lock(b *C.mb_handler_bridge_state, thd unsafe.Pointer, lockType C.int) C.int {
	return C.int(handlers("external_lock").ExternalLock(st(b), (*abi.Thd)(thd), int32(lockType)))
}

//export mb_handler_delete_all_rows
func mb_handler_delete_all_rows(b *C.mb_handler_bridge_state) C.int {
	return C.int(handlers("delete_all_rows").DeleteAllRows(st(b)))
}

//export mb_handler_records_in_range
func mb_handler_records_in_range(b *C.mb_handler_bridge_state, index C.uint, lower, upper *C.mb_key_range, pages *C.mb_page_range) C.ulonglong {
	return C.ulonglong(handlers("records_in_range").RecordsInRange(st(b), uint32(index),
		(*abi.KeyRange)(unsafe.Pointer(lower)),
		(*abi.KeyRange)(unsafe.Pointer(upper)),
		(*abi.PageRange)(unsafe.Pointer(pages))))
}

//export mb_handler_delete_table
func mb_handler_delete_table(b *C.mb_handler_bridge_state, name *C.char) C.int {
	return C.int(handlers("delete_table").DeleteTable(st(b), (*byte)(unsafe.Pointer(name))))
}

//export mb_handler_create
func mb_handler_create(b *C.mb_handler_bridge_state, name *C.char, form *C.mb_table, info *C.mb_create_info) C.int {
	return C.int(handlers("create").Create(st(b),
		(*byte)(unsafe.Pointer(name)),
		(*abi.Table)(unsafe.Pointer(form)),
		(*abi.CreateInfo)(unsafe.Pointer(info))))
}

//export mb_handler_check_if_supported_inplace_alter
func mb_handler_check_if_supported_inplace_alter(b *C.mb_handler_bridge_state, altered *C.mb_table, info unsafe.Pointer) C.int {
	return C.int(handlers("check_if_supported_inplace_alter").CheckIfSupportedInplaceAlter(st(b),
		(*abi.Table)(unsafe.Pointer(altered)),
		(*abi.AlterInplaceInfo)(info)))
}

//export mb_handler_store_lock
func mb_handler_store_lock(b *C.mb_handler_bridge_state, thd unsafe.Pointer, to *unsafe.Pointer, lockType C.int) *unsafe.Pointer {
	next := handlers("store_lock").StoreLock(st(b), (*abi.Thd)(thd), (**abi.ThrLockData)(unsafe.Pointer(to)), int32(lockType))

	return (*unsafe.Pointer)(unsafe.Pointer(next))
}
