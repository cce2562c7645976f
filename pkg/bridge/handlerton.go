package bridge

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
	"github.com/smykla-skalski/mariabridge/pkg/storage"
	"github.com/smykla-skalski/mariabridge/pkg/table"
)

// HandlertonTable holds the engine-level slots of struct handlerton. A nil
// slot leaves the host's pointer NULL.
type HandlertonTable struct {
	CloseConnection                func(hton *abi.Handlerton, thd *abi.Thd) int32
	KillQuery                      func(hton *abi.Handlerton, thd *abi.Thd, level int32)
	SavepointSet                   func(hton *abi.Handlerton, thd *abi.Thd, sv unsafe.Pointer) int32
	SavepointRollback              func(hton *abi.Handlerton, thd *abi.Thd, sv unsafe.Pointer) int32
	SavepointRollbackCanReleaseMDL func(hton *abi.Handlerton, thd *abi.Thd) bool
	SavepointRelease               func(hton *abi.Handlerton, thd *abi.Thd, sv unsafe.Pointer) int32
	Commit                         func(hton *abi.Handlerton, thd *abi.Thd, all bool) int32
	CommitOrdered                  func(hton *abi.Handlerton, thd *abi.Thd, all bool)
	Rollback                       func(hton *abi.Handlerton, thd *abi.Thd, all bool) int32
	Prepare                        func(hton *abi.Handlerton, thd *abi.Thd, all bool) int32
	PrepareOrdered                 func(hton *abi.Handlerton, thd *abi.Thd, all bool)
}

// Slots returns whether each slot is populated, in slot order.
func (t *HandlertonTable) Slots() []bool {
	return []bool{
		t.CloseConnection != nil, t.KillQuery != nil, t.SavepointSet != nil,
		t.SavepointRollback != nil, t.SavepointRollbackCanReleaseMDL != nil,
		t.SavepointRelease != nil, t.Commit != nil, t.CommitOrdered != nil,
		t.Rollback != nil, t.Prepare != nil, t.PrepareOrdered != nil,
	}
}

// Storage is everything the host needs from one storage engine plugin.
type Storage struct {
	Handler    *HandlerTable
	Handlerton *HandlertonTable

	engine storage.Handlerton
}

// Engine returns the handlerton singleton.
func (s *Storage) Engine() storage.Handlerton { return s.engine }

// SavepointSize is the per-savepoint space the bridge asks the server for:
// one handle.
const SavepointSize = uint32(unsafe.Sizeof(uintptr(0)))

// Init fills in the data fields of the host handlerton. Function slots are
// set by the caller, which knows their C addresses.
func (s *Storage) Init(hton *abi.Handlerton) {
	hton.Flags = uint32(s.engine.Flags())
	hton.SavepointOffset = SavepointSize
	hton.TablefileExtensions = internCStrings(s.engine.TableFileExtensions())
}

// NewStorage builds the tables for engine type HT and handler type H. The
// engine singleton is created here.
func NewStorage[HT, H any, PHT interface {
	*HT
	storage.Handlerton
}, PH interface {
	*H
	storage.Handler
}]() *Storage {
	return NewStorageWith[H, PH](PHT(new(HT)))
}

// NewStorageWith builds the tables for handler type H around an existing
// engine value.
func NewStorageWith[H any, PH interface {
	*H
	storage.Handler
}](engine storage.Handlerton) *Storage {
	return &Storage{
		Handler:    NewHandlerTable[H, PH](),
		Handlerton: newHandlertonTable(engine),
		engine:     engine,
	}
}

// engineCall runs fn and maps its error like a handler slot does.
func engineCall(slot string, fn func() error) (rc int32) {
	defer recovered(slot, &rc, errInternal)

	return code(slot, fn())
}

func engineDo(slot string, fn func()) {
	var ignored struct{}

	defer recovered(slot, &ignored, struct{}{})

	fn()
}

func savepointCell(slot string, sv unsafe.Pointer) *uintptr {
	if sv == nil {
		Fatal(errors.Newf("%s: nil savepoint", slot))
	}

	return (*uintptr)(sv)
}

// savepointHandles boxes savepoint values and remembers which connection
// owns each one, so a transaction's leftovers can be dropped when it ends.
type savepointHandles struct {
	box Box

	mu    sync.Mutex
	byThd map[uintptr]map[Handle]struct{}
}

var savepoints savepointHandles

// LiveSavepoints returns the number of savepoint values still boxed.
func LiveSavepoints() int { return savepoints.box.Live() }

func (s *savepointHandles) put(thd table.Thd, v any) Handle {
	h := s.box.Put(v)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byThd == nil {
		s.byThd = make(map[uintptr]map[Handle]struct{})
	}

	owned := s.byThd[thd.ID()]
	if owned == nil {
		owned = make(map[Handle]struct{})
		s.byThd[thd.ID()] = owned
	}

	owned[h] = struct{}{}

	return h
}

func (s *savepointHandles) get(h Handle) any {
	v, _ := s.box.Get(h)

	return v
}

// release drops h if thd owns it. The server does not zero savepoint memory
// before a set, so a cell's old content is trusted only when it is one of
// thd's own handles.
func (s *savepointHandles) release(thd table.Thd, h Handle) (any, bool) {
	s.mu.Lock()

	owned := s.byThd[thd.ID()]
	if _, ok := owned[h]; !ok {
		s.mu.Unlock()

		return nil, false
	}

	delete(owned, h)
	if len(owned) == 0 {
		delete(s.byThd, thd.ID())
	}

	s.mu.Unlock()

	return s.box.Release(h)
}

// drain drops every handle thd still holds.
func (s *savepointHandles) drain(thd table.Thd) {
	s.mu.Lock()
	owned := s.byThd[thd.ID()]
	delete(s.byThd, thd.ID())
	s.mu.Unlock()

	for h := range owned {
		s.box.Release(h)
	}
}

func newHandlertonTable(engine storage.Handlerton) *HandlertonTable {
	t := &HandlertonTable{}

	if e, ok := engine.(storage.ConnectionCloser); ok {
		t.CloseConnection = func(_ *abi.Handlerton, thd *abi.Thd) int32 {
			defer savepoints.drain(table.ThdOf(thd))

			return engineCall("close_connection", func() error {
				return e.CloseConnection(table.ThdOf(thd))
			})
		}
	}

	if e, ok := engine.(storage.QueryKiller); ok {
		t.KillQuery = func(_ *abi.Handlerton, thd *abi.Thd, level int32) {
			engineDo("kill_query", func() {
				e.KillQuery(table.ThdOf(thd), storage.KillLevel(level))
			})
		}
	}

	if e, ok := engine.(storage.Savepointer); ok {
		t.SavepointSet = func(_ *abi.Handlerton, thd *abi.Thd, sv unsafe.Pointer) int32 {
			cell := savepointCell("savepoint_set", sv)

			return engineCall("savepoint_set", func() error {
				conn := table.ThdOf(thd)

				v, err := e.SavepointSet(conn)
				if err != nil {
					return err
				}

				savepoints.release(conn, Handle(*cell))

				*cell = 0
				if v != nil {
					*cell = uintptr(savepoints.put(conn, v))
				}

				return nil
			})
		}

		t.SavepointRollback = func(_ *abi.Handlerton, thd *abi.Thd, sv unsafe.Pointer) int32 {
			cell := savepointCell("savepoint_rollback", sv)

			return engineCall("savepoint_rollback", func() error {
				return e.SavepointRollback(table.ThdOf(thd), savepoints.get(Handle(*cell)))
			})
		}

		t.SavepointRollbackCanReleaseMDL = func(_ *abi.Handlerton, thd *abi.Thd) (ok bool) {
			defer recovered("savepoint_rollback_can_release_mdl", &ok, false)

			return e.SavepointRollbackCanReleaseMDL(table.ThdOf(thd))
		}

		t.SavepointRelease = func(_ *abi.Handlerton, thd *abi.Thd, sv unsafe.Pointer) int32 {
			cell := savepointCell("savepoint_release", sv)

			return engineCall("savepoint_release", func() error {
				v, _ := savepoints.release(table.ThdOf(thd), Handle(*cell))
				*cell = 0

				return e.SavepointRelease(table.ThdOf(thd), v)
			})
		}
	}

	if e, ok := engine.(storage.Committer); ok {
		t.Commit = func(_ *abi.Handlerton, thd *abi.Thd, all bool) int32 {
			if all {
				defer savepoints.drain(table.ThdOf(thd))
			}

			return engineCall("commit", func() error { return e.Commit(table.ThdOf(thd), all) })
		}
	}

	if e, ok := engine.(storage.OrderedCommitter); ok {
		t.CommitOrdered = func(_ *abi.Handlerton, thd *abi.Thd, all bool) {
			engineDo("commit_ordered", func() { e.CommitOrdered(table.ThdOf(thd), all) })
		}
	}

	if e, ok := engine.(storage.RollbackHandler); ok {
		t.Rollback = func(_ *abi.Handlerton, thd *abi.Thd, all bool) int32 {
			if all {
				defer savepoints.drain(table.ThdOf(thd))
			}

			return engineCall("rollback", func() error { return e.Rollback(table.ThdOf(thd), all) })
		}
	}

	if e, ok := engine.(storage.Preparer); ok {
		t.Prepare = func(_ *abi.Handlerton, thd *abi.Thd, all bool) int32 {
			return engineCall("prepare", func() error { return e.Prepare(table.ThdOf(thd), all) })
		}
	}

	if e, ok := engine.(storage.OrderedPreparer); ok {
		t.PrepareOrdered = func(_ *abi.Handlerton, thd *abi.Thd, all bool) {
			engineDo("prepare_ordered", func() { e.PrepareOrdered(table.ThdOf(thd), all) })
		}
	}

	logger.Default().Debug("built handlerton table", "engine", qualifiedName(reflect.TypeOf(engine)))

	return t
}
