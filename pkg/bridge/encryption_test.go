package bridge_test

import (
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/encryption"
)

// xorCipher xors with the first key byte and appends a trailer on
// encrypt.
type xorCipher struct {
	key byte
}

func (c *xorCipher) Init(p encryption.Params) error {
	if len(p.Key) == 0 {
		return encryption.ErrBadKeySize
	}

	c.key = p.Key[0]

	return nil
}

func (c *xorCipher) Update(src, dst []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, encryption.ErrBadData
	}

	for i, v := range src {
		if v == '!' {
			panic("bang")
		}

		dst[i] = v ^ c.key
	}

	return len(src), nil
}

func (*xorCipher) Finish([]byte) (int, error) { return 0, nil }

func (c *xorCipher) EncryptedLength(_, _ uint32, n int) int {
	if n < 0 {
		panic("negative length")
	}

	return n + 16
}

type xorDecipher struct{ xorCipher }

var _ = Describe("EncryptionTable", func() {
	var (
		ctrl *gomock.Controller
		km   *encryption.MockKeyManager
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		km = encryption.NewMockKeyManager(ctrl)
	})

	Describe("key management only", func() {
		var t *bridge.EncryptionTable

		BeforeEach(func() {
			t = bridge.NewKeyManagement(km)
		})

		It("leaves encryption to the server", func() {
			Expect(t.Builtin()).To(BeTrue())
			Expect(t.CryptCtxSize).To(BeNil())
			Expect(t.EncryptedLength).To(BeNil())
		})

		It("returns the latest version", func() {
			km.EXPECT().LatestKeyVersion(uint32(1)).Return(uint32(3), nil)
			Expect(t.GetLatestKeyVersion(1)).To(Equal(uint32(3)))
		})

		It("reports unknown keys as an invalid version", func() {
			km.EXPECT().LatestKeyVersion(uint32(9)).Return(uint32(0), encryption.KeyNotFound)
			Expect(t.GetLatestKeyVersion(9)).To(Equal(abi.EncryptionKeyVersionInvalid))
		})

		It("asks for a bigger buffer", func() {
			km.EXPECT().KeyLength(uint32(1), uint32(2)).Return(32, nil)

			buf := make([]byte, 16)
			n := uint32(len(buf))

			Expect(t.GetKey(1, 2, &buf[0], &n)).To(Equal(uint32(abi.EncryptionKeyBufferTooSmall)))
			Expect(n).To(Equal(uint32(32)))
		})

		It("reports the size when no buffer is given", func() {
			km.EXPECT().KeyLength(uint32(1), uint32(2)).Return(32, nil)

			var n uint32
			Expect(t.GetKey(1, 2, nil, &n)).To(Equal(uint32(abi.EncryptionKeyBufferTooSmall)))
			Expect(n).To(Equal(uint32(32)))
		})

		It("copies the key", func() {
			km.EXPECT().KeyLength(uint32(1), uint32(2)).Return(4, nil)
			km.EXPECT().Key(uint32(1), uint32(2), gomock.Len(4)).DoAndReturn(func(_, _ uint32, dst []byte) error {
				copy(dst, "keyk")

				return nil
			})

			buf := make([]byte, 16)
			n := uint32(len(buf))

			Expect(t.GetKey(1, 2, &buf[0], &n)).To(BeZero())
			Expect(n).To(Equal(uint32(4)))
			Expect(string(buf[:n])).To(Equal("keyk"))
		})

		It("recovers a panicking key manager", func() {
			km.EXPECT().LatestKeyVersion(gomock.Any()).DoAndReturn(func(uint32) (uint32, error) {
				panic("no keys today")
			})

			Expect(t.GetLatestKeyVersion(1)).To(Equal(abi.EncryptionKeyVersionInvalid))
		})
	})

	Describe("crypt contexts", func() {
		var (
			t    *bridge.EncryptionTable
			ctx  abi.CryptCtx
			key  []byte
			iv   []byte
			live int
		)

		initCtx := func(flags int32) int32 {
			return t.CryptCtxInit(unsafe.Pointer(&ctx), &key[0], uint32(len(key)), &iv[0], uint32(len(iv)), flags, 1, 1)
		}

		BeforeEach(func() {
			t = bridge.NewEncryption[xorCipher, xorDecipher](km)
			ctx = abi.CryptCtx{}
			key = []byte{0x5a, 1, 2, 3}
			iv = make([]byte, 16)
			live = bridge.Live()
		})

		It("reports the context size", func() {
			Expect(t.Builtin()).To(BeFalse())
			Expect(t.CryptCtxSize(1, 1)).To(Equal(uint32(abi.SizeofCryptCtx)))
		})

		It("runs init, update and finish", func() {
			Expect(initCtx(abi.EncryptionFlagEncrypt)).To(BeZero())
			Expect(ctx.Handle).NotTo(BeZero())
			Expect(bridge.TypeTag(ctx.TypeID)).To(Equal(t.Tag))
			Expect(bridge.Live()).To(Equal(live + 1))

			src := []byte("data")
			dst := make([]byte, 8)
			dlen := uint32(len(dst))

			Expect(t.CryptCtxUpdate(unsafe.Pointer(&ctx), &src[0], uint32(len(src)), &dst[0], &dlen)).To(BeZero())
			Expect(dlen).To(Equal(uint32(4)))
			Expect(dst[0]).To(Equal(byte('d' ^ 0x5a)))

			dlen = uint32(len(dst))
			Expect(t.CryptCtxFinish(unsafe.Pointer(&ctx), &dst[0], &dlen)).To(BeZero())
			Expect(dlen).To(BeZero())
			Expect(ctx.Handle).To(BeZero())
			Expect(bridge.Live()).To(Equal(live))
		})

		It("rejects a second update", func() {
			Expect(initCtx(abi.EncryptionFlagDecrypt)).To(BeZero())

			src := []byte("ab")
			dst := make([]byte, 4)
			dlen := uint32(len(dst))

			Expect(t.CryptCtxUpdate(unsafe.Pointer(&ctx), &src[0], 2, &dst[0], &dlen)).To(BeZero())
			Expect(t.CryptCtxUpdate(unsafe.Pointer(&ctx), &src[0], 2, &dst[0], &dlen)).
				To(Equal(int32(abi.EncryptionResultBadData)))
			Expect(logBuf.String()).To(ContainSubstring("updated more than once"))

			Expect(t.CryptCtxFinish(unsafe.Pointer(&ctx), &dst[0], &dlen)).To(BeZero())
		})

		It("maps init failures", func() {
			rc := t.CryptCtxInit(unsafe.Pointer(&ctx), nil, 0, &iv[0], uint32(len(iv)), abi.EncryptionFlagEncrypt, 1, 1)
			Expect(rc).To(Equal(int32(abi.EncryptionResultBadKeySize)))
			Expect(ctx.Handle).To(BeZero())
			Expect(bridge.Live()).To(Equal(live))
		})

		It("recovers a panicking cipher", func() {
			Expect(initCtx(abi.EncryptionFlagEncrypt)).To(BeZero())

			src := []byte("!")
			dst := make([]byte, 4)
			dlen := uint32(len(dst))

			Expect(t.CryptCtxUpdate(unsafe.Pointer(&ctx), &src[0], 1, &dst[0], &dlen)).
				To(Equal(int32(abi.EncryptionResultOpenSSLError)))

			Expect(t.CryptCtxFinish(unsafe.Pointer(&ctx), &dst[0], &dlen)).To(BeZero())
		})

		It("aborts on use after finish", func() {
			Expect(initCtx(abi.EncryptionFlagEncrypt)).To(BeZero())

			var dlen uint32
			t.CryptCtxFinish(unsafe.Pointer(&ctx), nil, &dlen)

			Expect(func() { t.CryptCtxFinish(unsafe.Pointer(&ctx), nil, &dlen) }).
				To(PanicWith(Satisfy(bridge.IsABI)))
		})

		It("aborts on a foreign context", func() {
			other := bridge.NewEncryption[xorDecipher, xorDecipher](km)
			Expect(other.Tag).NotTo(Equal(t.Tag))

			Expect(initCtx(abi.EncryptionFlagEncrypt)).To(BeZero())
			DeferCleanup(func() {
				var dlen uint32
				t.CryptCtxFinish(unsafe.Pointer(&ctx), nil, &dlen)
			})

			var dlen uint32
			Expect(func() { other.CryptCtxFinish(unsafe.Pointer(&ctx), nil, &dlen) }).
				To(PanicWith(Satisfy(bridge.IsABI)))
		})

		It("computes the encrypted length", func() {
			Expect(t.EncryptedLength(100, 1, 1)).To(Equal(uint32(116)))
		})
	})
})
