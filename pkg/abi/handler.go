package abi

import "unsafe"

// Sizes and limits from my_base.h and handler.h.
const (
	IOSize               = 4096
	HaMaxRecLength       = 65535
	MaxRefParts          = 32
	MaxDataLengthForKey  = 3072
	HaPosError           = ^uint64(0)
	HaOffsetError        = ^uint64(0)
	HaStatusErrorCode    = -1
	HandlertonTypeUnused = 0
)

// Open modes passed to handler::open.
const (
	OpenReadOnly  = 0
	OpenWriteOnly = 1
	OpenReadWrite = 2
)

// enum ha_rkey_function.
const (
	HaReadKeyExact         = 0
	HaReadKeyOrNext        = 1
	HaReadKeyOrPrev        = 2
	HaReadAfterKey         = 3
	HaReadBeforeKey        = 4
	HaReadPrefix           = 5
	HaReadPrefixLast       = 6
	HaReadPrefixLastOrPrev = 7
	HaReadMbrContain       = 8
	HaReadMbrIntersect     = 9
	HaReadMbrWithin        = 10
	HaReadMbrDisjoint      = 11
	HaReadMbrEqual         = 12
	HaReadInvalid          = -1
)

// enum thr_lock_type.
const (
	TLIgnore                 = -1
	TLUnlock                 = 0
	TLReadDefault            = 1
	TLRead                   = 2
	TLReadWithSharedLocks    = 3
	TLReadHighPriority       = 4
	TLReadNoInsert           = 5
	TLReadSkipLocked         = 6
	TLWriteAllowWrite        = 7
	TLWriteConcurrentDefault = 8
	TLWriteConcurrentInsert  = 9
	TLWriteDelayed           = 10
	TLWriteDefault           = 11
	TLWriteLowPriority       = 12
	TLWriteSkipLocked        = 13
	TLWrite                  = 14
	TLWriteOnly              = 15
)

// enum enum_alter_inplace_result.
const (
	HaAlterError                = 0
	HaAlterInplaceCopyNoLock    = 1
	HaAlterInplaceCopyLock      = 2
	HaAlterInplaceNoCopyLock    = 3
	HaAlterInplaceNoCopyNoLock  = 4
	HaAlterInplaceInstant       = 5
	HaAlterInplaceNotSupported  = 6
	HaAlterInplaceExclusiveLock = 7
	HaAlterInplaceSharedLock    = 8
	HaAlterInplaceNoLock        = 9
)

// enum thd_kill_levels.
const (
	ThdIsNotKilled = 0
	ThdAbortSoftly = 50
	ThdAbortAsap   = 100
)

// Handlerton flags (HTON_*).
const (
	HtonNoFlags               = 0
	HtonCloseCursorsAtCommit  = 1 << 0
	HtonAlterNotSupported     = 1 << 1
	HtonCanRecreate           = 1 << 2
	HtonHidden                = 1 << 3
	HtonNotUserSelectable     = 1 << 5
	HtonTemporaryNotSupported = 1 << 6
	HtonSupportLogTables      = 1 << 7
	HtonNoPartition           = 1 << 8
)

// IOAndCPUCost is IO_AND_CPU_COST, returned by value from the cost slots.
type IOAndCPUCost struct {
	IO  float64
	CPU float64
}

// Statistics is the leading part of class ha_statistics.
type Statistics struct {
	DataFileLength     uint64
	MaxDataFileLength  uint64
	IndexFileLength    uint64
	MaxIndexFileLength uint64
	DeleteLength       uint64
	AutoIncrementValue uint64
	Records            uint64
	Deleted            uint64
	MeanRecLength      uint64
	CreateTime         int64
	CheckTime          int64
	UpdateTime         int64
	BlockSize          uint32
	Checksum           uint32
	MrrLengthPerRec    uint32
}

// OptimizerCosts is the leading part of struct OPTIMIZER_COSTS.
type OptimizerCosts struct {
	DiskReadCost       float64
	IndexBlockCopyCost float64
	KeyCmpCost         float64
	KeyCopyCost        float64
	KeyLookupCost      float64
	KeyNextFindCost    float64
	DiskReadRatio      float64
	RowCopyCost        float64
	RowLookupCost      float64
	RowNextFindCost    float64
	RowidCmpCost       float64
	RowidCopyCost      float64
}

// LexCString is LEX_CSTRING.
type LexCString struct {
	Str    *byte
	Length uintptr
}

// TableShare is the view of TABLE_SHARE exported by the host bridge.
type TableShare struct {
	DB             LexCString
	TableName      LexCString
	Path           LexCString
	NormalizedPath LexCString
	Fields         uint32
	Keys           uint32
	RecLength      uint64
	MaxRows        uint64
	MinRows        uint64
	KeyLengths     *uint32 // Keys entries, key_info[i].key_length
}

// Table is the view of TABLE exported by the host bridge.
type Table struct {
	Share  *TableShare
	Alias  LexCString
	Record [2]*byte
}

// CreateInfo is the view of HA_CREATE_INFO exported by the host bridge.
type CreateInfo struct {
	Comment            LexCString
	DataFileName       *byte
	IndexFileName      *byte
	MaxRows            uint64
	MinRows            uint64
	AutoIncrementValue uint64
	AvgRowLength       uint64
	TableOptions       uint32
}

// KeyRange is key_range.
type KeyRange struct {
	Key        *byte
	Length     uint32
	KeypartMap uint64
	Flag       int32
}

// PageRange is page_range.
type PageRange struct {
	FirstPage uint64
	LastPage  uint64
}

// Opaque host records.
type (
	Thd              struct{}
	MemRoot          struct{}
	AlterInplaceInfo struct{}
	ThrLockData      struct{}
)

// HandlerBridgeVT is struct handler_bridge_vt: one slot per handler method
// the bridge class forwards. A nil slot makes the bridge fall back to the
// base class behaviour or report HA_ERR_WRONG_COMMAND.
type HandlerBridgeVT struct {
	Constructor                  unsafe.Pointer
	Destructor                   unsafe.Pointer
	IndexType                    unsafe.Pointer
	TableFlags                   unsafe.Pointer
	IndexFlags                   unsafe.Pointer
	MaxSupportedRecordLength     unsafe.Pointer
	MaxSupportedKeys             unsafe.Pointer
	MaxSupportedKeyParts         unsafe.Pointer
	MaxSupportedKeyLength        unsafe.Pointer
	ScanTime                     unsafe.Pointer
	KeyreadTime                  unsafe.Pointer
	RndPosTime                   unsafe.Pointer
	Open                         unsafe.Pointer
	Close                        unsafe.Pointer
	WriteRow                     unsafe.Pointer
	UpdateRow                    unsafe.Pointer
	DeleteRow                    unsafe.Pointer
	IndexReadMap                 unsafe.Pointer
	IndexNext                    unsafe.Pointer
	IndexPrev                    unsafe.Pointer
	IndexFirst                   unsafe.Pointer
	IndexLast                    unsafe.Pointer
	RndInit                      unsafe.Pointer
	RndEnd                       unsafe.Pointer
	RndNext                      unsafe.Pointer
	RndPos                       unsafe.Pointer
	Position                     unsafe.Pointer
	Info                         unsafe.Pointer
	Extra                        unsafe.Pointer
	ExternalLock                 unsafe.Pointer
	DeleteAllRows                unsafe.Pointer
	RecordsInRange               unsafe.Pointer
	DeleteTable                  unsafe.Pointer
	Create                       unsafe.Pointer
	CheckIfSupportedInplaceAlter unsafe.Pointer
	StoreLock                    unsafe.Pointer
}

// HandlerBridgeSlots is the number of slots in HandlerBridgeVT.
const HandlerBridgeSlots = int(unsafe.Sizeof(HandlerBridgeVT{}) / unsafe.Sizeof(uintptr(0)))

// HandlerBridge is struct handler_bridge_state, the fixed-layout record the
// host bridge class embeds and passes to every vtable slot.
//
// Data and TypeID belong to the plugin; everything else is maintained by the
// host before each call.
type HandlerBridge struct {
	VT          *HandlerBridgeVT
	Data        uintptr
	TypeID      [16]byte
	Stats       *Statistics
	Share       *TableShare
	Table       *Table
	Costs       *OptimizerCosts
	Lock        *ThrLockData
	LockType    *int32
	Ref         *byte
	RefLength   uint32
	ActiveIndex uint32
}

// Handlerton is the view of struct handlerton the storage init function
// fills in.
type Handlerton struct {
	Slot                           uint32
	SavepointOffset                uint32
	Flags                          uint32
	Create                         unsafe.Pointer
	CloseConnection                unsafe.Pointer
	KillQuery                      unsafe.Pointer
	SavepointSet                   unsafe.Pointer
	SavepointRollback              unsafe.Pointer
	SavepointRollbackCanReleaseMDL unsafe.Pointer
	SavepointRelease               unsafe.Pointer
	Commit                         unsafe.Pointer
	CommitOrdered                  unsafe.Pointer
	Rollback                       unsafe.Pointer
	Prepare                        unsafe.Pointer
	PrepareOrdered                 unsafe.Pointer
	TablefileExtensions            **byte
}
