package storage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/storage"
)

var (
	_ storage.IndexTyper     = storage.Base{}
	_ storage.TableFlagger   = storage.Base{}
	_ storage.IndexFlagger   = storage.Base{}
	_ storage.LimitsProvider = storage.Base{}
	_ storage.ScanCoster     = storage.Base{}
	_ storage.KeyreadCoster  = storage.Base{}
	_ storage.RndPosCoster   = storage.Base{}
	_ storage.RowDeleter     = storage.Base{}
)

var _ = Describe("Base", func() {
	var (
		stats      abi.Statistics
		costs      abi.OptimizerCosts
		keyLengths []uint32
		share      abi.TableShare
		raw        abi.HandlerBridge
		ctx        *storage.Context
	)

	BeforeEach(func() {
		stats = abi.Statistics{}
		costs = abi.OptimizerCosts{IndexBlockCopyCost: 0.5}
		keyLengths = []uint32{10}
		share = abi.TableShare{Keys: 1, KeyLengths: &keyLengths[0]}
		raw = abi.HandlerBridge{Stats: &stats, Costs: &costs, Share: &share}
		ctx = storage.NewContext(&raw)
	})

	It("reports the host's default limits", func() {
		var b storage.Base

		Expect(b.MaxSupportedRecordLength()).To(BeEquivalentTo(65535))
		Expect(b.MaxSupportedKeys()).To(BeZero())
		Expect(b.MaxSupportedKeyParts()).To(BeEquivalentTo(32))
		Expect(b.MaxSupportedKeyLength()).To(BeEquivalentTo(3072))
		Expect(b.IndexType(0)).To(BeEmpty())
		Expect(b.TableFlags()).To(BeZero())
		Expect(b.IndexFlags(0, 0, true)).To(BeZero())
		Expect(b.DeleteRow(ctx, nil)).To(Succeed())
	})

	Describe("ScanTime", func() {
		It("charges one block copy per engine block", func() {
			stats.DataFileLength = 10000
			stats.BlockSize = 4096

			c := storage.ScanTime(ctx)

			Expect(c.IO).To(Equal(10000.0 / 4096))
			Expect(c.CPU).To(Equal(14095.0/4096 + 0.5))
		})

		It("does not truncate partial IO blocks", func() {
			stats.DataFileLength = 100

			Expect(storage.ScanTime(ctx).IO).To(Equal(100.0 / 4096))
		})

		It("only charges the copy cost without a block size", func() {
			stats.DataFileLength = 10000

			Expect(storage.ScanTime(ctx)).To(Equal(storage.Cost{IO: 10000.0 / 4096, CPU: 0.5}))
		})

		It("clamps negative cpu to zero", func() {
			costs.IndexBlockCopyCost = -10

			Expect(storage.ScanTime(ctx).CPU).To(BeZero())
		})

		It("treats missing costs as zero", func() {
			raw.Costs = nil
			stats.DataFileLength = 4096
			stats.BlockSize = 1024

			Expect(storage.ScanTime(ctx)).To(Equal(storage.Cost{IO: 1, CPU: 5119.0 / 1024}))
		})
	})

	Describe("RndPosTime", func() {
		It("uses the block size rounded to IO_SIZE", func() {
			stats.BlockSize = 4096

			c := storage.RndPosTime(ctx, 3)

			Expect(c.IO).To(Equal(float64(8191) / 4096))
			Expect(c.CPU).To(Equal(3.5))
		})

		It("works for memory engines", func() {
			c := storage.Base{}.RndPosTime(ctx, 0)

			Expect(c.IO).To(Equal(float64(4095) / 4096))
			Expect(c.CPU).To(Equal(0.5))
		})
	})

	Describe("KeyreadTime", func() {
		It("is free without a block size", func() {
			Expect(storage.KeyreadTime(ctx, 0, 1, 100, 0)).To(Equal(storage.Cost{}))
		})

		It("derives blocks from the key length", func() {
			stats.BlockSize = 1024

			// (1000*10 + 1024) / 1024 = 10 blocks of 1024 bytes.
			Expect(storage.KeyreadTime(ctx, 0, 1, 1000, 0).IO).To(Equal(2.5))
		})

		It("uses the given block count", func() {
			stats.BlockSize = 8192

			Expect(storage.KeyreadTime(ctx, 0, 1, 1000, 3).IO).To(Equal(6.0))
		})

		It("scans at least one row for a whole index", func() {
			stats.BlockSize = 4096

			Expect(storage.KeyScanTime(ctx, 0, 0)).To(Equal(storage.KeyreadTime(ctx, 0, 1, 1, 0)))
		})
	})

	Describe("Context", func() {
		It("exposes the position buffer", func() {
			ref := make([]byte, 8)
			raw.Ref = &ref[0]
			raw.RefLength = 8

			copy(ctx.Ref(), []byte{1, 2, 3})

			Expect(ref[:3]).To(Equal([]byte{1, 2, 3}))
		})

		It("returns nil views for missing records", func() {
			raw = abi.HandlerBridge{}

			Expect(ctx.Stats()).To(BeNil())
			Expect(ctx.Table()).To(BeNil())
			Expect(ctx.Ref()).To(BeNil())
		})
	})

	It("copies key ranges", func() {
		key := []byte{9, 8, 7}
		kr := storage.KeyRangeOf(&abi.KeyRange{Key: &key[0], Length: 2, KeypartMap: 1, Flag: abi.HaReadAfterKey})

		Expect(kr.Key).To(Equal([]byte{9, 8}))
		Expect(kr.Flag).To(Equal(storage.ReadAfterKey))
		Expect(storage.KeyRangeOf(nil)).To(BeNil())
	})
})
