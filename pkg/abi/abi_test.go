package abi_test

import (
	"testing"
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

func TestABI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ABI Suite")
}

var _ = Describe("record layouts", func() {
	It("matches st_maria_plugin", func() {
		var d abi.PluginDescriptor

		Expect(unsafe.Sizeof(d)).To(BeEquivalentTo(104))
		Expect(unsafe.Offsetof(d.Info)).To(BeEquivalentTo(8))
		Expect(unsafe.Offsetof(d.License)).To(BeEquivalentTo(40))
		Expect(unsafe.Offsetof(d.Init)).To(BeEquivalentTo(48))
		Expect(unsafe.Offsetof(d.Version)).To(BeEquivalentTo(64))
		Expect(unsafe.Offsetof(d.SystemVars)).To(BeEquivalentTo(80))
		Expect(unsafe.Offsetof(d.Maturity)).To(BeEquivalentTo(96))
		Expect(abi.SizeofPluginDescriptor).To(BeEquivalentTo(104))
	})

	It("matches st_mariadb_encryption", func() {
		var e abi.EncryptionInfo

		Expect(unsafe.Sizeof(e)).To(BeEquivalentTo(64))
		Expect(unsafe.Offsetof(e.GetLatestKeyVersion)).To(BeEquivalentTo(8))
		Expect(unsafe.Offsetof(e.EncryptedLength)).To(BeEquivalentTo(56))
	})

	It("keeps the sysvar common prefix fixed", func() {
		var h abi.SysVarHeader

		Expect(unsafe.Sizeof(h)).To(BeEquivalentTo(40))
		Expect(unsafe.Offsetof(h.Name)).To(BeEquivalentTo(8))
		Expect(unsafe.Offsetof(h.Update)).To(BeEquivalentTo(32))
	})

	DescribeTable("sysvar suffix sizes",
		func(size uintptr, want int) {
			Expect(size).To(BeEquivalentTo(want))
		},
		Entry("bool", unsafe.Sizeof(abi.SysVarBool{}), 56),
		Entry("str", unsafe.Sizeof(abi.SysVarStr{}), 56),
		Entry("int", unsafe.Sizeof(abi.SysVarInt{}), 64),
		Entry("uint", unsafe.Sizeof(abi.SysVarUInt{}), 64),
		Entry("long", unsafe.Sizeof(abi.SysVarLong{}), 80),
		Entry("ulonglong", unsafe.Sizeof(abi.SysVarULongLong{}), 80),
		Entry("double", unsafe.Sizeof(abi.SysVarDouble{}), 80),
		Entry("enum", unsafe.Sizeof(abi.SysVarEnum{}), 64),
		Entry("set", unsafe.Sizeof(abi.SysVarSet{}), 64),
		Entry("typelib", unsafe.Sizeof(abi.Typelib{}), 32),
	)

	It("has one pointer per handler vtable slot", func() {
		Expect(abi.HandlerBridgeSlots).To(Equal(36))
	})

	It("places the plugin-owned part of the bridge record first", func() {
		var b abi.HandlerBridge

		Expect(unsafe.Offsetof(b.Data)).To(BeEquivalentTo(8))
		Expect(unsafe.Offsetof(b.TypeID)).To(BeEquivalentTo(16))
		Expect(unsafe.Offsetof(b.Stats)).To(BeEquivalentTo(32))
	})

	It("fits a crypt context record into the reported size", func() {
		Expect(abi.SizeofCryptCtx).To(BeEquivalentTo(24))
	})
})

var _ = Describe("PluginDescriptor.IsZero", func() {
	It("is true only for the sentinel", func() {
		var sentinel abi.PluginDescriptor
		Expect(sentinel.IsZero()).To(BeTrue())

		name := []byte("x\x00")
		d := abi.PluginDescriptor{Name: &name[0]}
		Expect(d.IsZero()).To(BeFalse())

		d = abi.PluginDescriptor{Maturity: abi.PluginMaturityStable}
		Expect(d.IsZero()).To(BeFalse())
	})
})
