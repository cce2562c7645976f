package bridge_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/pkg/bridge"
)

var _ = Describe("TagOf", func() {
	It("is stable per type", func() {
		Expect(bridge.TagOf[rowTable]()).To(Equal(bridge.TagOf[rowTable]()))
		Expect(bridge.TagOf[rowTable]().String()).To(MatchRegexp(`^[0-9a-f-]{36}$`))
	})

	It("differs between types with the same shape", func() {
		Expect(bridge.TagOf[xorCipher]()).NotTo(Equal(bridge.TagOf[xorDecipher]()))
	})

	It("is never zero", func() {
		Expect(bridge.TagOf[int]().IsZero()).To(BeFalse())
		Expect(bridge.TypeTag{}.IsZero()).To(BeTrue())
	})
})

var _ = Describe("Box", func() {
	var box *bridge.Box

	BeforeEach(func() {
		box = &bridge.Box{}
	})

	It("never issues handle 0", func() {
		h := box.Put("x")
		Expect(h).NotTo(BeZero())

		_, ok := box.Get(0)
		Expect(ok).To(BeFalse())
	})

	It("releases each handle once", func() {
		h := box.Put(42)
		Expect(box.Live()).To(Equal(1))

		v, ok := box.Release(h)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(42))
		Expect(box.Live()).To(BeZero())

		_, ok = box.Release(h)
		Expect(ok).To(BeFalse())
		Expect(box.Live()).To(BeZero())
	})
})
