package bridge_test

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/storage"
	"github.com/smykla-skalski/mariabridge/pkg/table"
)

const recLength = 4

// rowTable keeps fixed-size rows in memory.
type rowTable struct {
	storage.Base

	name   string
	opened bool
	rows   [][]byte
	cursor int
}

func (t *rowTable) Init(share *table.Share[table.Init], _ table.MemRoot) {
	if share != nil {
		t.name = share.Name()
	}
}

func (t *rowTable) Open(_ *storage.Context, _ string, _ storage.OpenMode, _ uint32) error {
	t.opened = true

	return nil
}

func (t *rowTable) Close(*storage.Context) error {
	t.opened = false

	return nil
}

func (t *rowTable) WriteRow(_ *storage.Context, buf []byte) error {
	if string(buf) == "boom" {
		panic("write failed")
	}

	t.rows = append(t.rows, append([]byte(nil), buf...))

	return nil
}

func (t *rowTable) RndInit(*storage.Context, bool) error {
	t.cursor = 0

	return nil
}

func (t *rowTable) RndNext(_ *storage.Context, buf []byte) error {
	if t.cursor >= len(t.rows) {
		return storage.ErrEndOfFile
	}

	copy(buf, t.rows[t.cursor])
	t.cursor++

	return nil
}

func (t *rowTable) RndEnd(*storage.Context) error { return nil }

func (t *rowTable) IndexType(uint32) string { return "HASH" }

func (t *rowTable) RecordsInRange(*storage.Context, uint32, *storage.KeyRange, *storage.KeyRange, *storage.PageRange) (uint64, error) {
	return 0, errors.New("no statistics")
}

func (t *rowTable) StoreLock(_ *storage.Context, _ table.Thd, lt storage.LockType) storage.LockType {
	return lt
}

// bareTable implements only the required methods.
type bareTable struct{}

func (*bareTable) Init(*table.Share[table.Init], table.MemRoot)                   {}
func (*bareTable) Open(*storage.Context, string, storage.OpenMode, uint32) error { return nil }
func (*bareTable) Close(*storage.Context) error                                  { return nil }

func lex(s string) abi.LexCString {
	b := []byte(s)

	return abi.LexCString{Str: &b[0], Length: uintptr(len(b))}
}

var _ = Describe("HandlerTable", func() {
	var (
		share abi.TableShare
		b     *abi.HandlerBridge
		vt    *bridge.HandlerTable
	)

	BeforeEach(func() {
		share = abi.TableShare{TableName: lex("t1"), RecLength: recLength}
		b = &abi.HandlerBridge{Share: &share}
		vt = bridge.NewHandlerTable[rowTable]()
	})

	Describe("slots", func() {
		It("fills only the required slots for a bare handler", func() {
			bare := bridge.NewHandlerTable[bareTable]()

			Expect(bare.Constructor).NotTo(BeNil())
			Expect(bare.Destructor).NotTo(BeNil())
			Expect(bare.Open).NotTo(BeNil())
			Expect(bare.Close).NotTo(BeNil())
			Expect(bare.WriteRow).To(BeNil())
			Expect(bare.IndexType).To(BeNil())
			Expect(bare.StoreLock).To(BeNil())

			filled := 0
			for _, ok := range bare.Slots() {
				if ok {
					filled++
				}
			}

			Expect(filled).To(Equal(4))
		})

		It("fills the slots of implemented capabilities", func() {
			Expect(vt.Slots()).To(HaveLen(36))
			Expect(vt.WriteRow).NotTo(BeNil())
			Expect(vt.RndInit).NotTo(BeNil())
			Expect(vt.RndNext).NotTo(BeNil())
			Expect(vt.RndEnd).NotTo(BeNil())
			Expect(vt.DeleteRow).NotTo(BeNil(), "from storage.Base")
			Expect(vt.ScanTime).NotTo(BeNil(), "from storage.Base")
			Expect(vt.UpdateRow).To(BeNil())
			Expect(vt.IndexReadMap).To(BeNil())
			Expect(vt.IndexNext).To(BeNil())
			Expect(vt.Position).To(BeNil())
			Expect(vt.RndPos).To(BeNil())
		})

		It("tags tables by handler type", func() {
			Expect(vt.Tag).To(Equal(bridge.TagOf[rowTable]()))
			Expect(vt.Tag).NotTo(Equal(bridge.TagOf[bareTable]()))
			Expect(vt.Tag.IsZero()).To(BeFalse())
		})
	})

	Describe("lifecycle", func() {
		It("boxes the instance and releases it on destroy", func() {
			before := bridge.Live()

			vt.Constructor(b, nil, nil, &share)
			Expect(b.Data).NotTo(BeZero())
			Expect(bridge.TypeTag(b.TypeID)).To(Equal(vt.Tag))
			Expect(bridge.Live()).To(Equal(before + 1))

			vt.Destructor(b)
			Expect(b.Data).To(BeZero())
			Expect(bridge.Live()).To(Equal(before))
		})

		It("ignores a second destroy", func() {
			vt.Constructor(b, nil, nil, &share)
			vt.Destructor(b)

			Expect(func() { vt.Destructor(b) }).NotTo(Panic())
		})

		It("aborts on use after destroy", func() {
			vt.Constructor(b, nil, nil, &share)
			vt.Destructor(b)

			Expect(func() { vt.Close(b) }).To(PanicWith(Satisfy(bridge.IsABI)))
		})

		It("aborts on a tag mismatch", func() {
			bare := bridge.NewHandlerTable[bareTable]()
			bare.Constructor(b, nil, nil, &share)
			DeferCleanup(bare.Destructor, b)

			Expect(func() { vt.Open(b, nil, 0, 0) }).To(PanicWith(Satisfy(bridge.IsABI)))
			Expect(logBuf.String()).To(ContainSubstring("fatal ABI error"))
		})
	})

	Describe("row operations", func() {
		BeforeEach(func() {
			vt.Constructor(b, nil, nil, &share)
			DeferCleanup(vt.Destructor, b)

			Expect(vt.Open(b, nil, int32(storage.OpenReadWrite), 0)).To(BeZero())
		})

		It("passes rows of the record length", func() {
			row := []byte("abcdXXXX")
			Expect(vt.WriteRow(b, &row[0])).To(BeZero())

			out := make([]byte, recLength)
			Expect(vt.RndInit(b, true)).To(BeZero())
			Expect(vt.RndNext(b, &out[0])).To(BeZero())
			Expect(string(out)).To(Equal("abcd"))
		})

		It("reports end of file", func() {
			out := make([]byte, recLength)
			Expect(vt.RndInit(b, true)).To(BeZero())
			Expect(vt.RndNext(b, &out[0])).To(Equal(int32(storage.ErrEndOfFile)))
		})

		It("recovers a panic as an internal error", func() {
			row := []byte("boom")
			Expect(vt.WriteRow(b, &row[0])).To(Equal(int32(storage.ErrInternalError)))
			Expect(logBuf.String()).To(ContainSubstring("recovered panic from plugin code"))
			Expect(logBuf.String()).To(ContainSubstring("write_row"))
		})

		It("returns interned index type names", func() {
			p := vt.IndexType(b, 0)
			Expect(abi.GoString(p)).To(Equal("HASH"))
			Expect(vt.IndexType(b, 1)).To(Equal(p))
		})

		It("reports range estimate failures as HA_POS_ERROR", func() {
			Expect(vt.RecordsInRange(b, 0, nil, nil, nil)).To(Equal(abi.HaPosError))
		})

		It("uses the base cost formulas", func() {
			Expect(vt.ScanTime(b)).To(Equal(abi.IOAndCPUCost{}))
		})
	})

	Describe("store_lock", func() {
		var (
			lockType int32
			lock     abi.ThrLockData
			locks    [2]*abi.ThrLockData
		)

		BeforeEach(func() {
			lockType = abi.TLUnlock
			b.LockType = &lockType
			b.Lock = &lock

			vt.Constructor(b, nil, nil, &share)
			DeferCleanup(vt.Destructor, b)
		})

		It("records the lock and returns the next slot", func() {
			next := vt.StoreLock(b, nil, &locks[0], int32(storage.LockWrite))

			Expect(lockType).To(Equal(int32(storage.LockWrite)))
			Expect(locks[0]).To(Equal(&lock))
			Expect(unsafe.Pointer(next)).To(Equal(unsafe.Pointer(&locks[1])))
		})

		It("keeps an existing lock", func() {
			lockType = abi.TLRead

			vt.StoreLock(b, nil, &locks[0], int32(storage.LockWrite))
			Expect(lockType).To(Equal(int32(abi.TLRead)))
		})
	})
})
