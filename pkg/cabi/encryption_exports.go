//go:build cgo

package cabi

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include "mariabridge.h"
*/
import "C"

import (
	"unsafe"
)

// Every encryption slot takes the plugin's index in the declaration array
// first; generated code binds it in a per-plugin wrapper.

//export mb_encryption_get_latest_key_version
func mb_encryption_get_latest_key_version(idx C.int, keyID C.uint) C.uint {
	return C.uint(encryptionAt("get_latest_key_version", idx).GetLatestKeyVersion(uint32(keyID)))
}

//export mb_encryption_get_key
func mb_encryption_get_key(idx C.int, keyID, version C.uint, dst *C.uchar, dstLen *C.uint) C.uint {
	return C.uint(encryptionAt("get_key", idx).GetKey(uint32(keyID), uint32(version), buf(dst), (*uint32)(unsafe.Pointer(dstLen))))
}

//export mb_encryption_crypt_ctx_size
func mb_encryption_crypt_ctx_size(idx C.int, keyID, keyVersion C.uint) C.uint {
	return C.uint(encryptionAt("crypt_ctx_size", idx).CryptCtxSize(uint32(keyID), uint32(keyVersion)))
}

//export mb_encryption_crypt_ctx_init
func mb_encryption_crypt_ctx_init(idx C.int, ctx unsafe.Pointer, key *C.uchar, klen C.uint, iv *C.uchar, ivlen C.uint, flags C.int, keyID, keyVersion C.uint) C.int {
	return C.int(encryptionAt("crypt_ctx_init", idx).CryptCtxInit(ctx,
		buf(key), uint32(klen),
		buf(iv), uint32(ivlen),
		int32(flags), uint32(keyID), uint32(keyVersion)))
}

//export mb_encryption_crypt_ctx_update
func mb_encryption_crypt_ctx_update(idx C.int, ctx unsafe.Pointer, src *C.uchar, slen C.uint, dst *C.uchar, dlen *C.uint) C.int {
	return C.int(encryptionAt("crypt_ctx_update", idx).CryptCtxUpdate(ctx,
		buf(src), uint32(slen),
		buf(dst), (*uint32)(unsafe.Pointer(dlen))))
}

//export mb_encryption_crypt_ctx_finish
func mb_encryption_crypt_ctx_finish(idx C.int, ctx unsafe.Pointer, dst *C.uchar, dlen *C.uint) C.int {
	return C.int(encryptionAt("crypt_ctx_finish", idx).CryptCtxFinish(ctx, buf(dst), (*uint32)(unsafe.Pointer(dlen))))
}

//export mb_encryption_encrypted_length
func mb_encryption_encrypted_length(idx C.int, slen, keyID, keyVersion C.uint) C.uint {
	return C.uint(encryptionAt("encrypted_length", idx).EncryptedLength(uint32(slen), uint32(keyID), uint32(keyVersion)))
}
