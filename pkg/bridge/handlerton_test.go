package bridge_test

import (
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/storage"
	"github.com/smykla-skalski/mariabridge/pkg/table"
)

// newConn returns a connection pointer distinct from every other live one.
// abi.Thd has no size, so separate variables may share an address.
func newConn() *abi.Thd { return (*abi.Thd)(unsafe.Pointer(new(int64))) }

// txEngine is an engine with savepoints and commit.
type txEngine struct {
	*storage.MockHandlerton
	*storage.MockSavepointer
	*storage.MockCommitter
}

var _ = Describe("Storage", func() {
	var (
		ctrl   *gomock.Controller
		hton   *storage.MockHandlerton
		sp     *storage.MockSavepointer
		commit *storage.MockCommitter
		s      *bridge.Storage
		thd    abi.Thd
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		hton = storage.NewMockHandlerton(ctrl)
		sp = storage.NewMockSavepointer(ctrl)
		commit = storage.NewMockCommitter(ctrl)

		s = bridge.NewStorageWith[rowTable](&txEngine{hton, sp, commit})
	})

	It("fills the host handlerton", func() {
		hton.EXPECT().Flags().Return(storage.HtonCanRecreate | storage.HtonNoPartition)
		hton.EXPECT().TableFileExtensions().Return([]string{".mem", ".idx"})

		var raw abi.Handlerton
		s.Init(&raw)

		Expect(raw.Flags).To(Equal(uint32(storage.HtonCanRecreate | storage.HtonNoPartition)))
		Expect(raw.SavepointOffset).To(Equal(bridge.SavepointSize))
		Expect(raw.TablefileExtensions).NotTo(BeNil())

		exts := unsafe.Slice(raw.TablefileExtensions, 3)
		Expect(abi.GoString(exts[0])).To(Equal(".mem"))
		Expect(abi.GoString(exts[1])).To(Equal(".idx"))
		Expect(exts[2]).To(BeNil())
	})

	It("terminates an empty extension list", func() {
		hton.EXPECT().Flags().Return(storage.HtonCanRecreate)
		hton.EXPECT().TableFileExtensions().Return(nil)

		var raw abi.Handlerton
		s.Init(&raw)

		Expect(raw.TablefileExtensions).NotTo(BeNil())
		Expect(*raw.TablefileExtensions).To(BeNil())
	})

	It("leaves unimplemented engine slots nil", func() {
		Expect(s.Handlerton.SavepointSet).NotTo(BeNil())
		Expect(s.Handlerton.Commit).NotTo(BeNil())
		Expect(s.Handlerton.Rollback).To(BeNil())
		Expect(s.Handlerton.Prepare).To(BeNil())
		Expect(s.Handlerton.KillQuery).To(BeNil())
		Expect(s.Handler.WriteRow).NotTo(BeNil())

		// savepoint set/rollback/can-release/release, then commit
		Expect(s.Handlerton.Slots()).To(Equal([]bool{
			false, false, true, true, true, true, true, false, false, false, false,
		}))
	})

	Describe("savepoints", func() {
		var cell uintptr

		BeforeEach(func() {
			cell = 0
		})

		It("hands the stored value back to rollback and release", func() {
			sp.EXPECT().SavepointSet(gomock.Any()).Return("sp1", nil)
			sp.EXPECT().SavepointRollback(gomock.Any(), "sp1").Return(nil)
			sp.EXPECT().SavepointRelease(gomock.Any(), "sp1").Return(nil)

			Expect(s.Handlerton.SavepointSet(nil, &thd, unsafe.Pointer(&cell))).To(BeZero())
			Expect(cell).NotTo(BeZero())

			Expect(s.Handlerton.SavepointRollback(nil, &thd, unsafe.Pointer(&cell))).To(BeZero())
			Expect(cell).NotTo(BeZero())

			Expect(s.Handlerton.SavepointRelease(nil, &thd, unsafe.Pointer(&cell))).To(BeZero())
			Expect(cell).To(BeZero())
		})

		It("stores no handle for a nil value", func() {
			sp.EXPECT().SavepointSet(gomock.Any()).Return(nil, nil)
			sp.EXPECT().SavepointRelease(gomock.Any(), nil).Return(nil)

			Expect(s.Handlerton.SavepointSet(nil, &thd, unsafe.Pointer(&cell))).To(BeZero())
			Expect(cell).To(BeZero())
			Expect(s.Handlerton.SavepointRelease(nil, &thd, unsafe.Pointer(&cell))).To(BeZero())
		})

		It("maps errors to handler codes", func() {
			sp.EXPECT().SavepointSet(gomock.Any()).Return(nil, storage.ErrNoSavepoint)

			Expect(s.Handlerton.SavepointSet(nil, &thd, unsafe.Pointer(&cell))).
				To(Equal(int32(storage.ErrNoSavepoint)))
		})

		It("releases the value a reused cell held", func() {
			conn := newConn()
			live := bridge.LiveSavepoints()

			sp.EXPECT().SavepointSet(gomock.Any()).Return("sp1", nil)
			sp.EXPECT().SavepointSet(gomock.Any()).Return("sp2", nil)
			sp.EXPECT().SavepointRollback(gomock.Any(), "sp2").Return(nil)

			Expect(s.Handlerton.SavepointSet(nil, conn, unsafe.Pointer(&cell))).To(BeZero())
			first := cell
			Expect(s.Handlerton.SavepointSet(nil, conn, unsafe.Pointer(&cell))).To(BeZero())

			Expect(cell).NotTo(Equal(first))
			Expect(bridge.LiveSavepoints()).To(Equal(live + 1))
			Expect(s.Handlerton.SavepointRollback(nil, conn, unsafe.Pointer(&cell))).To(BeZero())

			commit.EXPECT().Commit(gomock.Any(), true).Return(nil)
			Expect(s.Handlerton.Commit(nil, conn, true)).To(BeZero())
			Expect(bridge.LiveSavepoints()).To(Equal(live))
		})

		It("ignores a stale cell owned by another connection", func() {
			mine, theirs := newConn(), newConn()

			var theirCell uintptr

			sp.EXPECT().SavepointSet(gomock.Any()).Return("theirs", nil)
			sp.EXPECT().SavepointSet(gomock.Any()).Return("mine", nil)
			sp.EXPECT().SavepointRollback(gomock.Any(), "theirs").Return(nil)

			Expect(s.Handlerton.SavepointSet(nil, theirs, unsafe.Pointer(&theirCell))).To(BeZero())

			cell = theirCell
			Expect(s.Handlerton.SavepointSet(nil, mine, unsafe.Pointer(&cell))).To(BeZero())
			Expect(s.Handlerton.SavepointRollback(nil, theirs, unsafe.Pointer(&theirCell))).To(BeZero())

			commit.EXPECT().Commit(gomock.Any(), true).Return(nil).Times(2)
			Expect(s.Handlerton.Commit(nil, mine, true)).To(BeZero())
			Expect(s.Handlerton.Commit(nil, theirs, true)).To(BeZero())
		})

		It("drops open savepoints when the transaction commits", func() {
			conn := newConn()
			live := bridge.LiveSavepoints()

			sp.EXPECT().SavepointSet(gomock.Any()).Return("a", nil)
			sp.EXPECT().SavepointSet(gomock.Any()).Return("b", nil)
			commit.EXPECT().Commit(gomock.Any(), false).Return(nil)
			commit.EXPECT().Commit(gomock.Any(), true).Return(nil)

			var a, b uintptr
			Expect(s.Handlerton.SavepointSet(nil, conn, unsafe.Pointer(&a))).To(BeZero())
			Expect(s.Handlerton.SavepointSet(nil, conn, unsafe.Pointer(&b))).To(BeZero())
			Expect(bridge.LiveSavepoints()).To(Equal(live + 2))

			Expect(s.Handlerton.Commit(nil, conn, false)).To(BeZero())
			Expect(bridge.LiveSavepoints()).To(Equal(live + 2))

			Expect(s.Handlerton.Commit(nil, conn, true)).To(BeZero())
			Expect(bridge.LiveSavepoints()).To(Equal(live))
		})

		It("aborts on a nil savepoint buffer", func() {
			Expect(func() { s.Handlerton.SavepointSet(nil, &thd, nil) }).To(PanicWith(Satisfy(bridge.IsABI)))
		})
	})

	It("recovers engine panics", func() {
		commit.EXPECT().Commit(gomock.Any(), true).DoAndReturn(func(table.Thd, bool) error {
			panic("commit exploded")
		})

		Expect(s.Handlerton.Commit(nil, &thd, true)).To(Equal(int32(storage.ErrInternalError)))
		Expect(logBuf.String()).To(ContainSubstring("commit exploded"))
	})
})
