// Package table provides read-only views over the server's table records.
//
// Each view has the same memory layout as the host record it wraps and is
// parameterised by the lifecycle phase it was handed out in. Accessors that
// only make sense in one phase take that phase's instantiation, so calling
// them with a view from another phase does not compile:
//
//	func (h *handler) Open(ctx *storage.Context, ...) error {
//		buf := table.RecordBuffer(ctx.Table()) // ok: ctx.Table() is *Table[Open]
//	}
//
//	func (h *handler) Create(ctx *storage.Context, name string, form *table.Table[table.Create], ...) error {
//		table.RecordBuffer(form) // compile error
//	}
//
// Views never own memory; they are valid for the duration of the call that
// produced them.
package table

import (
	"unsafe"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

// Init is the phase of a handler being constructed for a share.
type Init struct{}

// Create is the phase of a table being defined by CREATE TABLE.
type Create struct{}

// Open is the phase between handler open and close.
type Open struct{}

// Phase is the set of lifecycle phases.
type Phase interface {
	Init | Create | Open
}

// Share is a view of TABLE_SHARE, the definition shared by every open
// instance of one table.
type Share[P Phase] struct {
	raw abi.TableShare
}

// ShareOf views p in phase P. It returns nil for a nil p.
func ShareOf[P Phase](p *abi.TableShare) *Share[P] {
	return (*Share[P])(unsafe.Pointer(p))
}

// Database returns the schema the table belongs to.
func (s *Share[P]) Database() string { return s.raw.DB.String() }

// Name returns the table name.
func (s *Share[P]) Name() string { return s.raw.TableName.String() }

// Path returns the path prefix of the table's files, without extension.
func (s *Share[P]) Path() string { return s.raw.Path.String() }

// NormalizedPath returns Path with a normalized case.
func (s *Share[P]) NormalizedPath() string { return s.raw.NormalizedPath.String() }

// Fields returns the number of columns.
func (s *Share[P]) Fields() uint32 { return s.raw.Fields }

// KeyCount returns the number of indexes.
func (s *Share[P]) KeyCount() uint32 { return s.raw.Keys }

// RecordLength returns the length in bytes of one row in the server's
// record format.
func (s *Share[P]) RecordLength() int { return int(s.raw.RecLength) }

// MaxRows returns the MAX_ROWS table option. It is only final once the table
// is open.
func MaxRows(s *Share[Open]) uint64 { return s.raw.MaxRows }

// MinRows returns the MIN_ROWS table option.
func MinRows(s *Share[Open]) uint64 { return s.raw.MinRows }

// KeyStorageLength returns the storage length of the key at index idx, or 0
// when idx is out of range.
func KeyStorageLength(s *Share[Open], idx uint32) uint32 {
	if s == nil || idx >= s.raw.Keys || s.raw.KeyLengths == nil {
		return 0
	}

	return unsafe.Slice(s.raw.KeyLengths, s.raw.Keys)[idx]
}

// Table is a view of TABLE, one opened instance of a share.
type Table[P Phase] struct {
	raw abi.Table
}

// TableOf views p in phase P. It returns nil for a nil p.
func TableOf[P Phase](p *abi.Table) *Table[P] {
	return (*Table[P])(unsafe.Pointer(p))
}

// TableShare returns the share this table was opened from.
func (t *Table[P]) TableShare() *Share[P] {
	return ShareOf[P](t.raw.Share)
}

// Alias returns the name the statement refers to the table by.
func (t *Table[P]) Alias() string { return t.raw.Alias.String() }

// RecordBuffer returns the server's primary row buffer (record[0]).
func RecordBuffer(t *Table[Open]) []byte {
	return recordBuffer(t, 0)
}

// PreviousRecordBuffer returns record[1], the row image before an update.
func PreviousRecordBuffer(t *Table[Open]) []byte {
	return recordBuffer(t, 1)
}

func recordBuffer(t *Table[Open], which int) []byte {
	if t == nil || t.raw.Share == nil {
		return nil
	}

	return abi.Bytes(t.raw.Record[which], int(t.raw.Share.RecLength))
}
