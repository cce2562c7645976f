package storage

import "github.com/smykla-skalski/mariabridge/pkg/abi"

// OpenMode is the mode argument of handler::open.
type OpenMode int32

// Open modes.
const (
	OpenReadOnly  OpenMode = abi.OpenReadOnly
	OpenWriteOnly OpenMode = abi.OpenWriteOnly
	OpenReadWrite OpenMode = abi.OpenReadWrite
)

// ReadFunction is enum ha_rkey_function, the comparison an index lookup
// uses.
type ReadFunction int32

// Index lookup functions.
const (
	ReadKeyExact         ReadFunction = abi.HaReadKeyExact
	ReadKeyOrNext        ReadFunction = abi.HaReadKeyOrNext
	ReadKeyOrPrev        ReadFunction = abi.HaReadKeyOrPrev
	ReadAfterKey         ReadFunction = abi.HaReadAfterKey
	ReadBeforeKey        ReadFunction = abi.HaReadBeforeKey
	ReadPrefix           ReadFunction = abi.HaReadPrefix
	ReadPrefixLast       ReadFunction = abi.HaReadPrefixLast
	ReadPrefixLastOrPrev ReadFunction = abi.HaReadPrefixLastOrPrev
	ReadMbrContain       ReadFunction = abi.HaReadMbrContain
	ReadMbrIntersect     ReadFunction = abi.HaReadMbrIntersect
	ReadMbrWithin        ReadFunction = abi.HaReadMbrWithin
	ReadMbrDisjoint      ReadFunction = abi.HaReadMbrDisjoint
	ReadMbrEqual         ReadFunction = abi.HaReadMbrEqual
	ReadInvalid          ReadFunction = abi.HaReadInvalid
)

// LockType is enum thr_lock_type.
type LockType int32

// Table lock types.
const (
	LockIgnore                 LockType = abi.TLIgnore
	LockUnlock                 LockType = abi.TLUnlock
	LockReadDefault            LockType = abi.TLReadDefault
	LockRead                   LockType = abi.TLRead
	LockReadWithSharedLocks    LockType = abi.TLReadWithSharedLocks
	LockReadHighPriority       LockType = abi.TLReadHighPriority
	LockReadNoInsert           LockType = abi.TLReadNoInsert
	LockReadSkipLocked         LockType = abi.TLReadSkipLocked
	LockWriteAllowWrite        LockType = abi.TLWriteAllowWrite
	LockWriteConcurrentDefault LockType = abi.TLWriteConcurrentDefault
	LockWriteConcurrentInsert  LockType = abi.TLWriteConcurrentInsert
	LockWriteDelayed           LockType = abi.TLWriteDelayed
	LockWriteDefault           LockType = abi.TLWriteDefault
	LockWriteLowPriority       LockType = abi.TLWriteLowPriority
	LockWriteSkipLocked        LockType = abi.TLWriteSkipLocked
	LockWrite                  LockType = abi.TLWrite
	LockWriteOnly              LockType = abi.TLWriteOnly
)

// IsWrite reports whether l takes a write lock.
func (l LockType) IsWrite() bool { return l >= LockWriteAllowWrite }

// AlterResult is enum_alter_inplace_result.
type AlterResult int32

// In-place ALTER support levels.
const (
	AlterError                AlterResult = abi.HaAlterError
	AlterInplaceCopyNoLock    AlterResult = abi.HaAlterInplaceCopyNoLock
	AlterInplaceCopyLock      AlterResult = abi.HaAlterInplaceCopyLock
	AlterInplaceNoCopyLock    AlterResult = abi.HaAlterInplaceNoCopyLock
	AlterInplaceNoCopyNoLock  AlterResult = abi.HaAlterInplaceNoCopyNoLock
	AlterInplaceInstant       AlterResult = abi.HaAlterInplaceInstant
	AlterInplaceNotSupported  AlterResult = abi.HaAlterInplaceNotSupported
	AlterInplaceExclusiveLock AlterResult = abi.HaAlterInplaceExclusiveLock
	AlterInplaceSharedLock    AlterResult = abi.HaAlterInplaceSharedLock
	AlterInplaceNoLock        AlterResult = abi.HaAlterInplaceNoLock
)

// InfoFlag is the HA_STATUS_* bit set passed to info.
type InfoFlag uint32

// Info request bits.
const (
	StatusPosError    InfoFlag = 1 << 0
	StatusNoLock      InfoFlag = 1 << 1
	StatusTime        InfoFlag = 1 << 2
	StatusConst       InfoFlag = 1 << 3
	StatusVariable    InfoFlag = 1 << 4
	StatusErrkey      InfoFlag = 1 << 5
	StatusAuto        InfoFlag = 1 << 6
	StatusVariableExt InfoFlag = 1 << 7
	StatusOpen        InfoFlag = 1 << 8
)

// Has reports whether every bit of want is set.
func (f InfoFlag) Has(want InfoFlag) bool { return f&want == want }

// ExtraFunction is enum ha_extra_function. The engine may ignore any value
// it does not understand.
type ExtraFunction int32

// A few commonly handled hints.
const (
	ExtraNormal         ExtraFunction = 0
	ExtraQuick          ExtraFunction = 1
	ExtraNotUsed        ExtraFunction = 2
	ExtraKeyread        ExtraFunction = 7
	ExtraNoKeyread      ExtraFunction = 8
	ExtraNoUserChange   ExtraFunction = 9
	ExtraResetState     ExtraFunction = 21
	ExtraIgnoreDupKey   ExtraFunction = 22
	ExtraNoIgnoreDupKey ExtraFunction = 23
	ExtraPrepareForDrop ExtraFunction = 24
)

// KillLevel is enum thd_kill_levels, passed to kill_query.
type KillLevel int32

// Kill levels.
const (
	NotKilled   KillLevel = abi.ThdIsNotKilled
	AbortSoftly KillLevel = abi.ThdAbortSoftly
	AbortAsap   KillLevel = abi.ThdAbortAsap
)

// KeyRange is one end of an index range, as passed to records_in_range.
type KeyRange struct {
	Key        []byte
	KeypartMap uint64
	Flag       ReadFunction
}

// KeyRangeOf copies the bounds of p. A nil p means an open end and yields
// nil.
func KeyRangeOf(p *abi.KeyRange) *KeyRange {
	if p == nil {
		return nil
	}

	return &KeyRange{
		Key:        abi.Bytes(p.Key, int(p.Length)),
		KeypartMap: p.KeypartMap,
		Flag:       ReadFunction(p.Flag),
	}
}

// PageRange is page_range, filled in by records_in_range when known.
type PageRange = abi.PageRange

// Cost is IO_AND_CPU_COST.
type Cost struct {
	IO  float64
	CPU float64
}

// AlterInplaceInfo is the host's opaque Alter_inplace_info.
type AlterInplaceInfo = abi.AlterInplaceInfo
