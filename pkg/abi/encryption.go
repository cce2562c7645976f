package abi

import "unsafe"

// Key lookup results (ENCRYPTION_KEY_*).
const (
	EncryptionKeyVersionInvalid  = ^uint32(0)
	EncryptionKeyNotEncrypted    = 0
	EncryptionKeyBufferTooSmall  = 100
	EncryptionKeySystemData      = 1
	EncryptionKeyTemporaryData   = 2
	EncryptionFlagDecrypt        = 0
	EncryptionFlagEncrypt        = 1
	EncryptionFlagNoPad          = 2
	EncryptionResultOK           = 0
	EncryptionResultBadData      = -100
	EncryptionResultOpenSSLError = -101
	EncryptionResultBadKeySize   = -102
)

// EncryptionInfo is struct st_mariadb_encryption.
//
// The crypt_ctx_* and encrypted_length slots may be nil, in which case the
// server uses its builtin AES implementation with keys from GetKey.
type EncryptionInfo struct {
	InterfaceVersion    int32
	GetLatestKeyVersion unsafe.Pointer // uint (*)(uint key_id)
	GetKey              unsafe.Pointer // uint (*)(uint key_id, uint version, uchar *key, uint *key_length)
	CryptCtxSize        unsafe.Pointer // uint (*)(uint key_id, uint key_version)
	CryptCtxInit        unsafe.Pointer // int (*)(void *ctx, const uchar *key, uint klen, const uchar *iv, uint ivlen, int flags, uint key_id, uint key_version)
	CryptCtxUpdate      unsafe.Pointer // int (*)(void *ctx, const uchar *src, uint slen, uchar *dst, uint *dlen)
	CryptCtxFinish      unsafe.Pointer // int (*)(void *ctx, uchar *dst, uint *dlen)
	EncryptedLength     unsafe.Pointer // uint (*)(uint slen, uint key_id, uint key_version)
}

// CryptCtx is the record written into the host-allocated crypt context
// buffer. The buffer is at least SizeofCryptCtx bytes.
type CryptCtx struct {
	Handle uintptr
	TypeID [16]byte
}

// SizeofCryptCtx is the value returned from crypt_ctx_size.
const SizeofCryptCtx = unsafe.Sizeof(CryptCtx{})
