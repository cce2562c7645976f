package bridge

import (
	"bytes"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/encryption"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

// EncryptionTable holds the slots of struct st_mariadb_encryption. The
// crypt context slots are nil for key management plugins, which leaves the
// data path to the server's builtin AES.
type EncryptionTable struct {
	GetLatestKeyVersion func(keyID uint32) uint32
	GetKey              func(keyID, version uint32, dst *byte, dstLen *uint32) uint32
	CryptCtxSize        func(keyID, keyVersion uint32) uint32
	CryptCtxInit        func(ctx unsafe.Pointer, key *byte, klen uint32, iv *byte, ivlen uint32, flags int32, keyID, keyVersion uint32) int32
	CryptCtxUpdate      func(ctx unsafe.Pointer, src *byte, slen uint32, dst *byte, dlen *uint32) int32
	CryptCtxFinish      func(ctx unsafe.Pointer, dst *byte, dlen *uint32) int32
	EncryptedLength     func(slen, keyID, keyVersion uint32) uint32

	// Tag marks crypt contexts created by this table.
	Tag TypeTag
}

// Builtin reports whether the server's own cipher is used.
func (t *EncryptionTable) Builtin() bool { return t.CryptCtxInit == nil }

// NewKeyManagement builds a table that serves keys from km and leaves
// encryption to the server.
func NewKeyManagement(km encryption.KeyManager) *EncryptionTable {
	t := &EncryptionTable{}

	t.GetLatestKeyVersion = func(keyID uint32) (v uint32) {
		defer recovered("get_latest_key_version", &v, abi.EncryptionKeyVersionInvalid)

		v, err := km.LatestKeyVersion(keyID)
		if err != nil {
			logger.Default().Debug("no key version", "key_id", keyID, "error", err)

			return abi.EncryptionKeyVersionInvalid
		}

		return v
	}

	t.GetKey = func(keyID, version uint32, dst *byte, dstLen *uint32) (rc uint32) {
		defer recovered("get_key", &rc, abi.EncryptionKeyVersionInvalid)

		if dstLen == nil {
			Fatal(errors.New("get_key: nil key length"))
		}

		n, err := km.KeyLength(keyID, version)
		if err != nil {
			return encryption.KeyCode(err)
		}

		if dst == nil || int(*dstLen) < n {
			*dstLen = uint32(n)

			return abi.EncryptionKeyBufferTooSmall
		}

		if err := km.Key(keyID, version, abi.Bytes(dst, n)); err != nil {
			return encryption.KeyCode(err)
		}

		*dstLen = uint32(n)

		return 0
	}

	return t
}

// cipher is the part of Encryptor and Decryptor a context drives.
type cipher interface {
	Update(src, dst []byte) (int, error)
	Finish(dst []byte) (int, error)
}

// cryptOp is the state behind one crypt context.
type cryptOp[E, D any] struct {
	c       cipher
	encrypt bool
	updated bool
}

// NewEncryption builds a full encryption table: keys from km, data through
// Encryptor type E and Decryptor type D.
func NewEncryption[E, D any, PE interface {
	*E
	encryption.Encryptor
}, PD interface {
	*D
	encryption.Decryptor
}](km encryption.KeyManager) *EncryptionTable {
	t := NewKeyManagement(km)
	t.Tag = TagOf[cryptOp[E, D]]()

	tag := t.Tag

	t.CryptCtxSize = func(uint32, uint32) uint32 { return uint32(abi.SizeofCryptCtx) }

	t.CryptCtxInit = func(ctx unsafe.Pointer, key *byte, klen uint32, iv *byte, ivlen uint32, flags int32, keyID, keyVersion uint32) (rc int32) {
		cc := cryptCtx("crypt_ctx_init", ctx)
		*cc = abi.CryptCtx{}

		defer recovered("crypt_ctx_init", &rc, abi.EncryptionResultOpenSSLError)

		p := encryption.Params{
			KeyID:      keyID,
			KeyVersion: keyVersion,
			Key:        bytes.Clone(abi.Bytes(key, int(klen))),
			IV:         bytes.Clone(abi.Bytes(iv, int(ivlen))),
			NoPad:      flags&abi.EncryptionFlagNoPad != 0,
		}

		op := &cryptOp[E, D]{encrypt: flags&abi.EncryptionFlagEncrypt != 0}

		if op.encrypt {
			e := PE(new(E))
			if err := e.Init(p); err != nil {
				return cryptCode("crypt_ctx_init", err)
			}

			op.c = e
		} else {
			d := PD(new(D))
			if err := d.Init(p); err != nil {
				return cryptCode("crypt_ctx_init", err)
			}

			op.c = d
		}

		cc.Handle = uintptr(handles.Put(op))
		cc.TypeID = tag

		return abi.EncryptionResultOK
	}

	t.CryptCtxUpdate = func(ctx unsafe.Pointer, src *byte, slen uint32, dst *byte, dlen *uint32) (rc int32) {
		op := cryptInstance[E, D]("crypt_ctx_update", ctx)

		defer recovered("crypt_ctx_update", &rc, abi.EncryptionResultOpenSSLError)

		if op.updated {
			logger.Default().Error("crypt context updated more than once; the payload must arrive in a single update",
				"encrypt", op.encrypt,
			)

			return abi.EncryptionResultBadData
		}

		op.updated = true

		n, err := op.c.Update(abi.Bytes(src, int(slen)), abi.Bytes(dst, int(*dlen)))
		*dlen = uint32(n)

		return cryptCode("crypt_ctx_update", err)
	}

	t.CryptCtxFinish = func(ctx unsafe.Pointer, dst *byte, dlen *uint32) (rc int32) {
		op := cryptInstance[E, D]("crypt_ctx_finish", ctx)

		cc := (*abi.CryptCtx)(ctx)
		handles.Release(Handle(cc.Handle))
		cc.Handle = 0

		defer recovered("crypt_ctx_finish", &rc, abi.EncryptionResultOpenSSLError)

		n, err := op.c.Finish(abi.Bytes(dst, int(*dlen)))
		*dlen = uint32(n)

		return cryptCode("crypt_ctx_finish", err)
	}

	t.EncryptedLength = func(slen, keyID, keyVersion uint32) (n uint32) {
		defer recovered("encrypted_length", &n, slen)

		return uint32(PE(new(E)).EncryptedLength(keyID, keyVersion, int(slen)))
	}

	return t
}

func cryptCtx(slot string, ctx unsafe.Pointer) *abi.CryptCtx {
	if ctx == nil {
		Fatal(errors.Newf("%s: nil crypt context", slot))
	}

	return (*abi.CryptCtx)(ctx)
}

func cryptInstance[E, D any](slot string, ctx unsafe.Pointer) *cryptOp[E, D] {
	cc := cryptCtx(slot, ctx)
	checkTag(slot, TypeTag(cc.TypeID), TagOf[cryptOp[E, D]]())

	if cc.Handle == 0 {
		Fatal(errors.Newf("%s: crypt context used after finish", slot))
	}

	op, ok := unbox[*cryptOp[E, D]](Handle(cc.Handle))
	if !ok {
		Fatal(errors.Newf("%s: handle %d is not a live crypt context", slot, cc.Handle))
	}

	return op
}

func cryptCode(slot string, err error) int32 {
	rc := encryption.CryptCode(err)
	if rc != abi.EncryptionResultOK {
		logger.Default().Debug("crypt call failed", "slot", slot, "code", rc, "error", err)
	}

	return rc
}
