// Package storage defines the interfaces a Go storage engine implements.
//
// A handler is one open instance of a table. Only Handler is required; every
// other interface in this package is optional and maps onto one or a few
// slots of the host's handler vtable. A slot whose interface the handler
// type does not implement is left empty and the host falls back to its own
// behaviour, usually HA_ERR_WRONG_COMMAND.
//
// Embedding Base supplies the host's default limits and cost formulas.
//
// Errors returned from handler methods are converted with Code: return an
// Error for a specific HA_ERR_* code.
package storage

import "github.com/smykla-skalski/mariabridge/pkg/table"

// Handler is the required part of a storage handler.
type Handler interface {
	// Init is called once when the server constructs the handler for share.
	Init(share *table.Share[table.Init], mem table.MemRoot)

	// Open opens the table files under name (a path without extension).
	Open(ctx *Context, name string, mode OpenMode, testIfLocked uint32) error

	// Close releases what Open acquired. The handler may be opened again.
	Close(ctx *Context) error
}

// IndexTyper names the index algorithm shown by SHOW INDEX. An empty
// string shows NULL.
type IndexTyper interface {
	IndexType(index uint32) string
}

// TableFlagger reports table capabilities.
type TableFlagger interface {
	TableFlags() TableFlags
}

// IndexFlagger reports capabilities of one index, or of its first part+1
// key parts when allParts is false.
type IndexFlagger interface {
	IndexFlags(index, part uint32, allParts bool) IndexFlags
}

// LimitsProvider reports the engine's size limits.
type LimitsProvider interface {
	MaxSupportedRecordLength() uint32
	MaxSupportedKeys() uint32
	MaxSupportedKeyParts() uint32
	MaxSupportedKeyLength() uint32
}

// ScanCoster estimates a full table scan.
type ScanCoster interface {
	ScanTime(ctx *Context) Cost
}

// KeyreadCoster estimates an index-only read of rows rows over ranges
// ranges touching blocks blocks (0 when unknown).
type KeyreadCoster interface {
	KeyreadTime(ctx *Context, index uint32, ranges, rows, blocks uint64) Cost
}

// RndPosCoster estimates fetching rows rows by position.
type RndPosCoster interface {
	RndPosTime(ctx *Context, rows uint64) Cost
}

// RowWriter inserts the row in buf.
type RowWriter interface {
	WriteRow(ctx *Context, buf []byte) error
}

// RowUpdater replaces the row image old with updated.
type RowUpdater interface {
	UpdateRow(ctx *Context, old, updated []byte) error
}

// RowDeleter deletes the row last read, whose image is buf.
type RowDeleter interface {
	DeleteRow(ctx *Context, buf []byte) error
}

// IndexReader positions the active index on key and reads the row into
// buf.
type IndexReader interface {
	IndexReadMap(ctx *Context, buf, key []byte, keypartMap uint64, find ReadFunction) error
}

// IndexNavigator moves along the active index, reading each row into buf.
// Return ErrEndOfFile (or io.EOF) past either end.
type IndexNavigator interface {
	IndexNext(ctx *Context, buf []byte) error
	IndexPrev(ctx *Context, buf []byte) error
	IndexFirst(ctx *Context, buf []byte) error
	IndexLast(ctx *Context, buf []byte) error
}

// RandomScanner is a full table scan.
type RandomScanner interface {
	// RndInit starts a scan. scan is false when the server only intends
	// to call RndPos.
	RndInit(ctx *Context, scan bool) error

	// RndNext reads the next row into buf and returns ErrEndOfFile after
	// the last one.
	RndNext(ctx *Context, buf []byte) error

	RndEnd(ctx *Context) error
}

// Positioner saves and restores row positions.
type Positioner interface {
	// Position stores the position of the row last read into ctx.Ref().
	Position(ctx *Context, record []byte)

	// RndPos reads the row at pos into buf.
	RndPos(ctx *Context, buf, pos []byte) error
}

// Informer refreshes ctx.Stats().
type Informer interface {
	Info(ctx *Context, flag InfoFlag) error
}

// ExtraHinter receives optimizer hints.
type ExtraHinter interface {
	Extra(ctx *Context, op ExtraFunction) error
}

// ExternalLocker is told when a statement starts and ends using the table.
type ExternalLocker interface {
	ExternalLock(ctx *Context, thd table.Thd, lockType LockType) error
}

// Truncater deletes every row.
type Truncater interface {
	DeleteAllRows(ctx *Context) error
}

// RangeEstimator estimates the rows between lower and upper on an index. A nil
// bound is open. An error is reported to the server as HA_POS_ERROR.
type RangeEstimator interface {
	RecordsInRange(ctx *Context, index uint32, lower, upper *KeyRange, pages *PageRange) (uint64, error)
}

// TableDropper removes the files of the table at name.
type TableDropper interface {
	DeleteTable(ctx *Context, name string) error
}

// TableCreator creates the files of a new table.
type TableCreator interface {
	Create(ctx *Context, name string, form *table.Table[table.Create], info *table.CreateInfo) error
}

// InplaceAlterChecker reports how an ALTER TABLE to altered can run.
type InplaceAlterChecker interface {
	CheckIfSupportedInplaceAlter(ctx *Context, altered *table.Table[table.Create], info *AlterInplaceInfo) AlterResult
}

// LockStorer picks the lock to take for a statement's requested lock type.
// Returning LockIgnore keeps the current lock.
type LockStorer interface {
	StoreLock(ctx *Context, thd table.Thd, lockType LockType) LockType
}
