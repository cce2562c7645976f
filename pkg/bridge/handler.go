package bridge

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/storage"
	"github.com/smykla-skalski/mariabridge/pkg/table"
)

// HandlerTable holds one function per handler_bridge_vt slot, in slot
// order. A nil slot means the handler does not implement the capability;
// the host bridge then falls back to the base handler behaviour.
type HandlerTable struct {
	Constructor                  func(b *abi.HandlerBridge, hton *abi.Handlerton, mem *abi.MemRoot, share *abi.TableShare)
	Destructor                   func(b *abi.HandlerBridge)
	IndexType                    func(b *abi.HandlerBridge, index uint32) *byte
	TableFlags                   func(b *abi.HandlerBridge) uint64
	IndexFlags                   func(b *abi.HandlerBridge, index, part uint32, allParts bool) uint64
	MaxSupportedRecordLength     func(b *abi.HandlerBridge) uint32
	MaxSupportedKeys             func(b *abi.HandlerBridge) uint32
	MaxSupportedKeyParts         func(b *abi.HandlerBridge) uint32
	MaxSupportedKeyLength        func(b *abi.HandlerBridge) uint32
	ScanTime                     func(b *abi.HandlerBridge) abi.IOAndCPUCost
	KeyreadTime                  func(b *abi.HandlerBridge, index uint32, ranges, rows, blocks uint64) abi.IOAndCPUCost
	RndPosTime                   func(b *abi.HandlerBridge, rows uint64) abi.IOAndCPUCost
	Open                         func(b *abi.HandlerBridge, name *byte, mode int32, testIfLocked uint32) int32
	Close                        func(b *abi.HandlerBridge) int32
	WriteRow                     func(b *abi.HandlerBridge, buf *byte) int32
	UpdateRow                    func(b *abi.HandlerBridge, old, updated *byte) int32
	DeleteRow                    func(b *abi.HandlerBridge, buf *byte) int32
	IndexReadMap                 func(b *abi.HandlerBridge, buf, key *byte, keypartMap uint64, find int32) int32
	IndexNext                    func(b *abi.HandlerBridge, buf *byte) int32
	IndexPrev                    func(b *abi.HandlerBridge, buf *byte) int32
	IndexFirst                   func(b *abi.HandlerBridge, buf *byte) int32
	IndexLast                    func(b *abi.HandlerBridge, buf *byte) int32
	RndInit                      func(b *abi.HandlerBridge, scan bool) int32
	RndEnd                       func(b *abi.HandlerBridge) int32
	RndNext                      func(b *abi.HandlerBridge, buf *byte) int32
	RndPos                       func(b *abi.HandlerBridge, buf, pos *byte) int32
	Position                     func(b *abi.HandlerBridge, record *byte)
	Info                         func(b *abi.HandlerBridge, flag uint32) int32
	Extra                        func(b *abi.HandlerBridge, op int32) int32
	ExternalLock                 func(b *abi.HandlerBridge, thd *abi.Thd, lockType int32) int32
	DeleteAllRows                func(b *abi.HandlerBridge) int32
	RecordsInRange               func(b *abi.HandlerBridge, index uint32, lower, upper *abi.KeyRange, pages *abi.PageRange) uint64
	DeleteTable                  func(b *abi.HandlerBridge, name *byte) int32
	Create                       func(b *abi.HandlerBridge, name *byte, form *abi.Table, info *abi.CreateInfo) int32
	CheckIfSupportedInplaceAlter func(b *abi.HandlerBridge, altered *abi.Table, info *abi.AlterInplaceInfo) int32
	StoreLock                    func(b *abi.HandlerBridge, thd *abi.Thd, to **abi.ThrLockData, lockType int32) **abi.ThrLockData

	// Tag is the type tag the constructor writes into every handle.
	Tag TypeTag
}

// Slots returns whether each slot is populated, in slot order.
func (t *HandlerTable) Slots() []bool {
	return []bool{
		t.Constructor != nil, t.Destructor != nil, t.IndexType != nil, t.TableFlags != nil,
		t.IndexFlags != nil, t.MaxSupportedRecordLength != nil, t.MaxSupportedKeys != nil,
		t.MaxSupportedKeyParts != nil, t.MaxSupportedKeyLength != nil, t.ScanTime != nil,
		t.KeyreadTime != nil, t.RndPosTime != nil, t.Open != nil, t.Close != nil,
		t.WriteRow != nil, t.UpdateRow != nil, t.DeleteRow != nil, t.IndexReadMap != nil,
		t.IndexNext != nil, t.IndexPrev != nil, t.IndexFirst != nil, t.IndexLast != nil,
		t.RndInit != nil, t.RndEnd != nil, t.RndNext != nil, t.RndPos != nil,
		t.Position != nil, t.Info != nil, t.Extra != nil, t.ExternalLock != nil,
		t.DeleteAllRows != nil, t.RecordsInRange != nil, t.DeleteTable != nil,
		t.Create != nil, t.CheckIfSupportedInplaceAlter != nil, t.StoreLock != nil,
	}
}

var errInternal = int32(storage.ErrInternalError)

// instance checks b's tag and returns the handler boxed in it.
func instance[H any](slot string, b *abi.HandlerBridge) *H {
	want := TagOf[H]()
	checkTag(slot, TypeTag(b.TypeID), want)

	if b.Data == 0 {
		Fatal(errors.Newf("%s: handler %s used after destroy", slot, want))
	}

	h, ok := unbox[*H](Handle(b.Data))
	if !ok {
		Fatal(errors.Newf("%s: handle %d is not a live %s handler", slot, b.Data, want))
	}

	return h
}

// call runs fn against the handler in b and maps its error to a return code.
func call[H any](slot string, b *abi.HandlerBridge, fn func(h *H, ctx *storage.Context) error) (rc int32) {
	h := instance[H](slot, b)

	defer recovered(slot, &rc, errInternal)

	return code(slot, fn(h, storage.NewContext(b)))
}

// value runs fn against the handler in b and returns its result, or
// fallback when fn panics.
func value[H, T any](slot string, b *abi.HandlerBridge, fallback T, fn func(h *H, ctx *storage.Context) T) (out T) {
	h := instance[H](slot, b)

	defer recovered(slot, &out, fallback)

	return fn(h, storage.NewContext(b))
}

func rowBuffer(b *abi.HandlerBridge, p *byte) []byte {
	if b.Share == nil {
		return nil
	}

	return abi.Bytes(p, int(b.Share.RecLength))
}

func keyBuffer(b *abi.HandlerBridge, p *byte) []byte {
	if b.Share == nil {
		return nil
	}

	n := table.KeyStorageLength(table.ShareOf[table.Open](b.Share), b.ActiveIndex)

	return abi.Bytes(p, int(n))
}

func rawCost(c storage.Cost) abi.IOAndCPUCost {
	return abi.IOAndCPUCost{IO: c.IO, CPU: c.CPU}
}

// NewHandlerTable builds the slot table for handler type H. Slots for
// capabilities *H does not implement are left nil.
func NewHandlerTable[H any, PH interface {
	*H
	storage.Handler
}]() *HandlerTable {
	tag := TagOf[H]()
	probe := any(PH(new(H)))

	t := &HandlerTable{Tag: tag}

	t.Constructor = func(b *abi.HandlerBridge, _ *abi.Handlerton, mem *abi.MemRoot, share *abi.TableShare) {
		h := PH(new(H))

		func() {
			var ignored struct{}

			defer recovered("constructor", &ignored, struct{}{})

			h.Init(table.ShareOf[table.Init](share), table.MemRootOf(mem))
		}()

		b.Data = uintptr(handles.Put((*H)(h)))
		b.TypeID = tag
	}

	t.Destructor = func(b *abi.HandlerBridge) {
		checkTag("destructor", TypeTag(b.TypeID), tag)

		if b.Data == 0 {
			return
		}

		handles.Release(Handle(b.Data))
		b.Data = 0
	}

	t.Open = func(b *abi.HandlerBridge, name *byte, mode int32, testIfLocked uint32) int32 {
		return call("open", b, func(h *H, ctx *storage.Context) error {
			return PH(h).Open(ctx, abi.GoString(name), storage.OpenMode(mode), testIfLocked)
		})
	}

	t.Close = func(b *abi.HandlerBridge) int32 {
		return call("close", b, func(h *H, ctx *storage.Context) error {
			return PH(h).Close(ctx)
		})
	}

	if _, ok := probe.(storage.IndexTyper); ok {
		t.IndexType = func(b *abi.HandlerBridge, index uint32) *byte {
			return value("index_type", b, (*byte)(nil), func(h *H, _ *storage.Context) *byte {
				return internCString(any(h).(storage.IndexTyper).IndexType(index))
			})
		}
	}

	if _, ok := probe.(storage.TableFlagger); ok {
		t.TableFlags = func(b *abi.HandlerBridge) uint64 {
			return value("table_flags", b, 0, func(h *H, _ *storage.Context) uint64 {
				return uint64(any(h).(storage.TableFlagger).TableFlags())
			})
		}
	}

	if _, ok := probe.(storage.IndexFlagger); ok {
		t.IndexFlags = func(b *abi.HandlerBridge, index, part uint32, allParts bool) uint64 {
			return value("index_flags", b, 0, func(h *H, _ *storage.Context) uint64 {
				return uint64(any(h).(storage.IndexFlagger).IndexFlags(index, part, allParts))
			})
		}
	}

	if _, ok := probe.(storage.LimitsProvider); ok {
		limit := func(slot string, fn func(storage.LimitsProvider) uint32) func(*abi.HandlerBridge) uint32 {
			return func(b *abi.HandlerBridge) uint32 {
				return value(slot, b, 0, func(h *H, _ *storage.Context) uint32 {
					return fn(any(h).(storage.LimitsProvider))
				})
			}
		}

		t.MaxSupportedRecordLength = limit("max_supported_record_length", storage.LimitsProvider.MaxSupportedRecordLength)
		t.MaxSupportedKeys = limit("max_supported_keys", storage.LimitsProvider.MaxSupportedKeys)
		t.MaxSupportedKeyParts = limit("max_supported_key_parts", storage.LimitsProvider.MaxSupportedKeyParts)
		t.MaxSupportedKeyLength = limit("max_supported_key_length", storage.LimitsProvider.MaxSupportedKeyLength)
	}

	if _, ok := probe.(storage.ScanCoster); ok {
		t.ScanTime = func(b *abi.HandlerBridge) abi.IOAndCPUCost {
			return value("scan_time", b, abi.IOAndCPUCost{}, func(h *H, ctx *storage.Context) abi.IOAndCPUCost {
				return rawCost(any(h).(storage.ScanCoster).ScanTime(ctx))
			})
		}
	}

	if _, ok := probe.(storage.KeyreadCoster); ok {
		t.KeyreadTime = func(b *abi.HandlerBridge, index uint32, ranges, rows, blocks uint64) abi.IOAndCPUCost {
			return value("keyread_time", b, abi.IOAndCPUCost{}, func(h *H, ctx *storage.Context) abi.IOAndCPUCost {
				return rawCost(any(h).(storage.KeyreadCoster).KeyreadTime(ctx, index, ranges, rows, blocks))
			})
		}
	}

	if _, ok := probe.(storage.RndPosCoster); ok {
		t.RndPosTime = func(b *abi.HandlerBridge, rows uint64) abi.IOAndCPUCost {
			return value("rnd_pos_time", b, abi.IOAndCPUCost{}, func(h *H, ctx *storage.Context) abi.IOAndCPUCost {
				return rawCost(any(h).(storage.RndPosCoster).RndPosTime(ctx, rows))
			})
		}
	}

	if _, ok := probe.(storage.RowWriter); ok {
		t.WriteRow = func(b *abi.HandlerBridge, buf *byte) int32 {
			return call("write_row", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.RowWriter).WriteRow(ctx, rowBuffer(b, buf))
			})
		}
	}

	if _, ok := probe.(storage.RowUpdater); ok {
		t.UpdateRow = func(b *abi.HandlerBridge, old, updated *byte) int32 {
			return call("update_row", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.RowUpdater).UpdateRow(ctx, rowBuffer(b, old), rowBuffer(b, updated))
			})
		}
	}

	if _, ok := probe.(storage.RowDeleter); ok {
		t.DeleteRow = func(b *abi.HandlerBridge, buf *byte) int32 {
			return call("delete_row", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.RowDeleter).DeleteRow(ctx, rowBuffer(b, buf))
			})
		}
	}

	if _, ok := probe.(storage.IndexReader); ok {
		t.IndexReadMap = func(b *abi.HandlerBridge, buf, key *byte, keypartMap uint64, find int32) int32 {
			return call("index_read_map", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.IndexReader).IndexReadMap(
					ctx, rowBuffer(b, buf), keyBuffer(b, key), keypartMap, storage.ReadFunction(find))
			})
		}
	}

	if _, ok := probe.(storage.IndexNavigator); ok {
		nav := func(slot string, fn func(storage.IndexNavigator, *storage.Context, []byte) error) func(*abi.HandlerBridge, *byte) int32 {
			return func(b *abi.HandlerBridge, buf *byte) int32 {
				return call(slot, b, func(h *H, ctx *storage.Context) error {
					return fn(any(h).(storage.IndexNavigator), ctx, rowBuffer(b, buf))
				})
			}
		}

		t.IndexNext = nav("index_next", storage.IndexNavigator.IndexNext)
		t.IndexPrev = nav("index_prev", storage.IndexNavigator.IndexPrev)
		t.IndexFirst = nav("index_first", storage.IndexNavigator.IndexFirst)
		t.IndexLast = nav("index_last", storage.IndexNavigator.IndexLast)
	}

	if _, ok := probe.(storage.RandomScanner); ok {
		t.RndInit = func(b *abi.HandlerBridge, scan bool) int32 {
			return call("rnd_init", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.RandomScanner).RndInit(ctx, scan)
			})
		}

		t.RndNext = func(b *abi.HandlerBridge, buf *byte) int32 {
			return call("rnd_next", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.RandomScanner).RndNext(ctx, rowBuffer(b, buf))
			})
		}

		t.RndEnd = func(b *abi.HandlerBridge) int32 {
			return call("rnd_end", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.RandomScanner).RndEnd(ctx)
			})
		}
	}

	if _, ok := probe.(storage.Positioner); ok {
		t.Position = func(b *abi.HandlerBridge, record *byte) {
			value("position", b, struct{}{}, func(h *H, ctx *storage.Context) struct{} {
				any(h).(storage.Positioner).Position(ctx, rowBuffer(b, record))

				return struct{}{}
			})
		}

		t.RndPos = func(b *abi.HandlerBridge, buf, pos *byte) int32 {
			return call("rnd_pos", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.Positioner).RndPos(ctx, rowBuffer(b, buf), abi.Bytes(pos, int(b.RefLength)))
			})
		}
	}

	if _, ok := probe.(storage.Informer); ok {
		t.Info = func(b *abi.HandlerBridge, flag uint32) int32 {
			return call("info", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.Informer).Info(ctx, storage.InfoFlag(flag))
			})
		}
	}

	if _, ok := probe.(storage.ExtraHinter); ok {
		t.Extra = func(b *abi.HandlerBridge, op int32) int32 {
			return call("extra", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.ExtraHinter).Extra(ctx, storage.ExtraFunction(op))
			})
		}
	}

	if _, ok := probe.(storage.ExternalLocker); ok {
		t.ExternalLock = func(b *abi.HandlerBridge, thd *abi.Thd, lockType int32) int32 {
			return call("external_lock", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.ExternalLocker).ExternalLock(ctx, table.ThdOf(thd), storage.LockType(lockType))
			})
		}
	}

	if _, ok := probe.(storage.Truncater); ok {
		t.DeleteAllRows = func(b *abi.HandlerBridge) int32 {
			return call("delete_all_rows", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.Truncater).DeleteAllRows(ctx)
			})
		}
	}

	if _, ok := probe.(storage.RangeEstimator); ok {
		t.RecordsInRange = func(b *abi.HandlerBridge, index uint32, lower, upper *abi.KeyRange, pages *abi.PageRange) uint64 {
			return value("records_in_range", b, abi.HaPosError, func(h *H, ctx *storage.Context) uint64 {
				n, err := any(h).(storage.RangeEstimator).RecordsInRange(
					ctx, index, storage.KeyRangeOf(lower), storage.KeyRangeOf(upper), pages)
				if err != nil {
					code("records_in_range", err)

					return abi.HaPosError
				}

				return n
			})
		}
	}

	if _, ok := probe.(storage.TableDropper); ok {
		t.DeleteTable = func(b *abi.HandlerBridge, name *byte) int32 {
			return call("delete_table", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.TableDropper).DeleteTable(ctx, abi.GoString(name))
			})
		}
	}

	if _, ok := probe.(storage.TableCreator); ok {
		t.Create = func(b *abi.HandlerBridge, name *byte, form *abi.Table, info *abi.CreateInfo) int32 {
			return call("create", b, func(h *H, ctx *storage.Context) error {
				return any(h).(storage.TableCreator).Create(
					ctx, abi.GoString(name), table.TableOf[table.Create](form), table.CreateInfoOf(info))
			})
		}
	}

	if _, ok := probe.(storage.InplaceAlterChecker); ok {
		t.CheckIfSupportedInplaceAlter = func(b *abi.HandlerBridge, altered *abi.Table, info *abi.AlterInplaceInfo) int32 {
			return value("check_if_supported_inplace_alter", b, int32(abi.HaAlterError), func(h *H, ctx *storage.Context) int32 {
				return int32(any(h).(storage.InplaceAlterChecker).CheckIfSupportedInplaceAlter(
					ctx, table.TableOf[table.Create](altered), info))
			})
		}
	}

	if _, ok := probe.(storage.LockStorer); ok {
		t.StoreLock = func(b *abi.HandlerBridge, thd *abi.Thd, to **abi.ThrLockData, lockType int32) **abi.ThrLockData {
			return value("store_lock", b, to, func(h *H, ctx *storage.Context) **abi.ThrLockData {
				lt := any(h).(storage.LockStorer).StoreLock(ctx, table.ThdOf(thd), storage.LockType(lockType))

				if lt != storage.LockIgnore && b.LockType != nil && *b.LockType == abi.TLUnlock {
					*b.LockType = int32(lt)
				}

				*to = b.Lock

				return (**abi.ThrLockData)(unsafe.Add(unsafe.Pointer(to), unsafe.Sizeof(to)))
			})
		}
	}

	return t
}
