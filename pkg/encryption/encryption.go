// Package encryption defines the interfaces of encryption and key
// management plugins.
//
// A key management plugin implements KeyManager only; the server then uses
// its builtin AES for data. A full encryption plugin also supplies an
// Encryptor and a Decryptor type, one instance of which is created per
// operation:
//
//	init -> Update (once) -> Finish -> discarded
//
// Update is single shot: the server hands over the whole payload in one
// call. A second Update on the same context is rejected with ErrBadData.
package encryption

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

//go:generate mockgen -source=encryption.go -destination=encryption_mock.go -package=encryption

// KeyManager looks up keys by id and version.
type KeyManager interface {
	// LatestKeyVersion returns the newest version of keyID.
	LatestKeyVersion(keyID uint32) (uint32, error)

	// Key writes the key into dst, which holds at least KeyLength bytes.
	Key(keyID, version uint32, dst []byte) error

	// KeyLength returns the size of the key in bytes.
	KeyLength(keyID, version uint32) (int, error)
}

// KeyError classifies key lookup failures.
type KeyError int

// Key lookup failures.
const (
	// KeyInvalidVersion is ENCRYPTION_KEY_VERSION_INVALID.
	KeyInvalidVersion KeyError = iota + 1
	// KeyBufferTooSmall is ENCRYPTION_KEY_BUFFER_TOO_SMALL. The bridge
	// normally handles it before Key is called.
	KeyBufferTooSmall
	// KeyNotFound reports an unknown key id.
	KeyNotFound
	// KeyOther is any other failure.
	KeyOther
)

func (e KeyError) Error() string {
	switch e {
	case KeyInvalidVersion:
		return "invalid key version"
	case KeyBufferTooSmall:
		return "key buffer too small"
	case KeyNotFound:
		return "key not found"
	case KeyOther:
		return "key lookup failed"
	default:
		return fmt.Sprintf("key error %d", int(e))
	}
}

// KeyCode converts a key lookup result to the value the server expects
// from get_key: 0 on success, ENCRYPTION_KEY_BUFFER_TOO_SMALL, or
// ENCRYPTION_KEY_VERSION_INVALID for every other failure.
func KeyCode(err error) uint32 {
	if err == nil {
		return 0
	}

	var ke KeyError
	if errors.As(err, &ke) && ke == KeyBufferTooSmall {
		return abi.EncryptionKeyBufferTooSmall
	}

	return abi.EncryptionKeyVersionInvalid
}

// CryptError classifies cipher failures.
type CryptError int

// Cipher failures.
const (
	// ErrBadData is MY_AES_BAD_DATA: the input is malformed, or the context
	// was used out of order.
	ErrBadData CryptError = iota + 1
	// ErrBadKeySize is MY_AES_BAD_KEYSIZE.
	ErrBadKeySize
	// ErrCipher is MY_AES_OPENSSL_ERROR, any other failure.
	ErrCipher
)

func (e CryptError) Error() string {
	switch e {
	case ErrBadData:
		return "bad data"
	case ErrBadKeySize:
		return "bad key size"
	case ErrCipher:
		return "cipher failure"
	default:
		return fmt.Sprintf("crypt error %d", int(e))
	}
}

// CryptCode converts a cipher result to a MY_AES_* code.
func CryptCode(err error) int32 {
	if err == nil {
		return abi.EncryptionResultOK
	}

	var ce CryptError
	if errors.As(err, &ce) {
		switch ce {
		case ErrBadData:
			return abi.EncryptionResultBadData
		case ErrBadKeySize:
			return abi.EncryptionResultBadKeySize
		}
	}

	return abi.EncryptionResultOpenSSLError
}

// Params are the arguments of a context init.
type Params struct {
	KeyID      uint32
	KeyVersion uint32
	Key        []byte
	IV         []byte
	// NoPad is ENCRYPTION_FLAG_NOPAD: the output must be the same size as
	// the input.
	NoPad bool
}

// Encryptor is one encryption operation. Implementations use pointer
// receivers; the bridge allocates a zero value and calls Init on it.
type Encryptor interface {
	Init(p Params) error

	// Update encrypts src into dst and returns the bytes written.
	Update(src, dst []byte) (int, error)

	// Finish writes any trailing output into dst and returns its length.
	Finish(dst []byte) (int, error)

	// EncryptedLength returns the output size for srcLen input bytes. It is
	// called on a zero value and must not depend on Init.
	EncryptedLength(keyID, keyVersion uint32, srcLen int) int
}

// Decryptor is one decryption operation.
type Decryptor interface {
	Init(p Params) error
	Update(src, dst []byte) (int, error)
	Finish(dst []byte) (int, error)
}
