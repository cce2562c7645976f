package storage

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
)

// Error is a handler error code from my_base.h (HA_ERR_*). Every value the
// engine can report to the server is one of the constants below.
type Error int32

// Handler error codes. 125 and 183 are unassigned.
const (
	ErrKeyNotFound             Error = 120 // did not find key on read or update
	ErrFoundDuppKey            Error = 121 // duplicate key on write
	ErrInternalError           Error = 122 // internal error
	ErrRecordChanged           Error = 123 // record changed since last read
	ErrWrongIndex              Error = 124 // wrong index given to function
	ErrCrashed                 Error = 126 // index file is crashed
	ErrWrongInRecord           Error = 127 // record file is crashed
	ErrOutOfMem                Error = 128 // out of memory
	ErrRetryInit               Error = 129 // initialization failed and should be retried
	ErrNotATable               Error = 130 // not a table file
	ErrWrongCommand            Error = 131 // command not supported
	ErrOldFile                 Error = 132 // old database file
	ErrNoActiveRecord          Error = 133 // no record read before update
	ErrRecordDeleted           Error = 134 // record was deleted
	ErrRecordFileFull          Error = 135 // no more room in record file
	ErrIndexFileFull           Error = 136 // no more room in index file
	ErrEndOfFile               Error = 137 // end of file
	ErrUnsupported             Error = 138 // unsupported extension used
	ErrToBigRow                Error = 139 // row too big
	ErrWrongCreateOption       Error = 140 // wrong create option
	ErrFoundDuppUnique         Error = 141 // duplicate unique on write
	ErrUnknownCharset          Error = 142 // cannot open charset
	ErrWrongMrgTableDef        Error = 143 // conflicting tables in merge
	ErrCrashedOnRepair         Error = 144 // last repair failed
	ErrCrashedOnUsage          Error = 145 // table must be repaired
	ErrLockWaitTimeout         Error = 146 // lock wait timeout
	ErrLockTableFull           Error = 147 // lock table full
	ErrReadOnlyTransaction     Error = 148 // updates not allowed
	ErrLockDeadlock            Error = 149 // deadlock found
	ErrCannotAddForeign        Error = 150 // cannot add foreign key constraint
	ErrNoReferencedRow         Error = 151 // cannot add a child row
	ErrRowIsReferenced         Error = 152 // cannot delete a parent row
	ErrNoSavepoint             Error = 153 // no savepoint with that name
	ErrNonUniqueBlockSize      Error = 154 // non unique key block size
	ErrNoSuchTable             Error = 155 // table does not exist in engine
	ErrTableExist              Error = 156 // table exists in engine
	ErrNoConnection            Error = 157 // could not connect to storage engine
	ErrNullInSpatial           Error = 158 // null in spatial index
	ErrTableDefChanged         Error = 159 // table definition changed
	ErrNoPartitionFound        Error = 160 // no partition matches the given value
	ErrRBRLoggingFailed        Error = 161 // row based binlogging failed
	ErrDropIndexFK             Error = 162 // index needed in foreign key constraint
	ErrForeignDuplicateKey     Error = 163 // duplicate key in foreign key constraint
	ErrTableNeedsUpgrade       Error = 164 // table needs upgrade
	ErrTableReadonly           Error = 165 // table is read only
	ErrAutoincReadFailed       Error = 166 // failed to get next auto increment value
	ErrAutoincERange           Error = 167 // auto increment value out of range
	ErrGeneric                 Error = 168 // generic error
	ErrRecordIsTheSame         Error = 169 // row is not updated
	ErrLoggingImpossible       Error = 170 // impossible to binlog
	ErrCorruptEvent            Error = 171 // corrupted binlog event
	ErrNewFile                 Error = 172 // file is too new
	ErrRowsEventApply          Error = 173 // rows event apply failed
	ErrInitialization          Error = 174 // error during initialization
	ErrFileTooShort            Error = 175 // file too short
	ErrWrongCRC                Error = 176 // wrong CRC on page
	ErrTooManyConcurrentTrxs   Error = 177 // too many active concurrent transactions
	ErrNotInLockPartitions     Error = 178 // row not in locked partitions
	ErrIndexColTooLong         Error = 179 // index column length exceeds limit
	ErrIndexCorrupt            Error = 180 // index corrupted
	ErrUndoRecTooBig           Error = 181 // undo record too big
	ErrFTSInvalidDocID         Error = 182 // invalid full text document id
	ErrTablespaceExists        Error = 184 // tablespace already exists
	ErrTooManyFields           Error = 185 // too many columns
	ErrRowInWrongPartition     Error = 186 // row in wrong partition
	ErrRowNotVisible           Error = 187 // row not visible
	ErrAbortedByUser           Error = 188 // operation aborted by user
	ErrDiskFull                Error = 189 // disk full
	ErrIncompatibleDefinition  Error = 190 // incompatible table definition
	ErrFTSTooManyWordsInPhrase Error = 191 // too many words in a full text phrase
	ErrDecryptionFailed        Error = 192 // table encrypted but decryption failed
	ErrFKDepthExceeded         Error = 193 // foreign key cascade delete or update exceeds depth
	ErrTablespaceMissing       Error = 194 // tablespace is missing
	ErrSequenceInvalidData     Error = 195 // sequence has invalid data
	ErrSequenceRunOut          Error = 196 // sequence has run out
	ErrCommitError             Error = 197 // commit failed
	ErrPartitionList           Error = 198 // invalid partition list
	ErrNoEncryption            Error = 199 // encryption not available
)

const (
	firstError Error = 120
	lastError  Error = 199

	// ErrorCount is HA_ERR_ERRORS, the width of the code range including
	// unassigned codes.
	ErrorCount = int(lastError-firstError) + 1
)

// ErrAllocFailed marks an error as an allocation failure. Code maps
// marked errors to ErrOutOfMem.
var ErrAllocFailed = errors.New("out of memory")

var errorNames = map[Error]string{
	ErrKeyNotFound:             "KEY_NOT_FOUND",
	ErrFoundDuppKey:            "FOUND_DUPP_KEY",
	ErrInternalError:           "INTERNAL_ERROR",
	ErrRecordChanged:           "RECORD_CHANGED",
	ErrWrongIndex:              "WRONG_INDEX",
	ErrCrashed:                 "CRASHED",
	ErrWrongInRecord:           "WRONG_IN_RECORD",
	ErrOutOfMem:                "OUT_OF_MEM",
	ErrRetryInit:               "RETRY_INIT",
	ErrNotATable:               "NOT_A_TABLE",
	ErrWrongCommand:            "WRONG_COMMAND",
	ErrOldFile:                 "OLD_FILE",
	ErrNoActiveRecord:          "NO_ACTIVE_RECORD",
	ErrRecordDeleted:           "RECORD_DELETED",
	ErrRecordFileFull:          "RECORD_FILE_FULL",
	ErrIndexFileFull:           "INDEX_FILE_FULL",
	ErrEndOfFile:               "END_OF_FILE",
	ErrUnsupported:             "UNSUPPORTED",
	ErrToBigRow:                "TO_BIG_ROW",
	ErrWrongCreateOption:       "WRONG_CREATE_OPTION",
	ErrFoundDuppUnique:         "FOUND_DUPP_UNIQUE",
	ErrUnknownCharset:          "UNKNOWN_CHARSET",
	ErrWrongMrgTableDef:        "WRONG_MRG_TABLE_DEF",
	ErrCrashedOnRepair:         "CRASHED_ON_REPAIR",
	ErrCrashedOnUsage:          "CRASHED_ON_USAGE",
	ErrLockWaitTimeout:         "LOCK_WAIT_TIMEOUT",
	ErrLockTableFull:           "LOCK_TABLE_FULL",
	ErrReadOnlyTransaction:     "READ_ONLY_TRANSACTION",
	ErrLockDeadlock:            "LOCK_DEADLOCK",
	ErrCannotAddForeign:        "CANNOT_ADD_FOREIGN",
	ErrNoReferencedRow:         "NO_REFERENCED_ROW",
	ErrRowIsReferenced:         "ROW_IS_REFERENCED",
	ErrNoSavepoint:             "NO_SAVEPOINT",
	ErrNonUniqueBlockSize:      "NON_UNIQUE_BLOCK_SIZE",
	ErrNoSuchTable:             "NO_SUCH_TABLE",
	ErrTableExist:              "TABLE_EXIST",
	ErrNoConnection:            "NO_CONNECTION",
	ErrNullInSpatial:           "NULL_IN_SPATIAL",
	ErrTableDefChanged:         "TABLE_DEF_CHANGED",
	ErrNoPartitionFound:        "NO_PARTITION_FOUND",
	ErrRBRLoggingFailed:        "RBR_LOGGING_FAILED",
	ErrDropIndexFK:             "DROP_INDEX_FK",
	ErrForeignDuplicateKey:     "FOREIGN_DUPLICATE_KEY",
	ErrTableNeedsUpgrade:       "TABLE_NEEDS_UPGRADE",
	ErrTableReadonly:           "TABLE_READONLY",
	ErrAutoincReadFailed:       "AUTOINC_READ_FAILED",
	ErrAutoincERange:           "AUTOINC_ERANGE",
	ErrGeneric:                 "GENERIC",
	ErrRecordIsTheSame:         "RECORD_IS_THE_SAME",
	ErrLoggingImpossible:       "LOGGING_IMPOSSIBLE",
	ErrCorruptEvent:            "CORRUPT_EVENT",
	ErrNewFile:                 "NEW_FILE",
	ErrRowsEventApply:          "ROWS_EVENT_APPLY",
	ErrInitialization:          "INITIALIZATION",
	ErrFileTooShort:            "FILE_TOO_SHORT",
	ErrWrongCRC:                "WRONG_CRC",
	ErrTooManyConcurrentTrxs:   "TOO_MANY_CONCURRENT_TRXS",
	ErrNotInLockPartitions:     "NOT_IN_LOCK_PARTITIONS",
	ErrIndexColTooLong:         "INDEX_COL_TOO_LONG",
	ErrIndexCorrupt:            "INDEX_CORRUPT",
	ErrUndoRecTooBig:           "UNDO_REC_TOO_BIG",
	ErrFTSInvalidDocID:         "FTS_INVALID_DOCID",
	ErrTablespaceExists:        "TABLESPACE_EXISTS",
	ErrTooManyFields:           "TOO_MANY_FIELDS",
	ErrRowInWrongPartition:     "ROW_IN_WRONG_PARTITION",
	ErrRowNotVisible:           "ROW_NOT_VISIBLE",
	ErrAbortedByUser:           "ABORTED_BY_USER",
	ErrDiskFull:                "DISK_FULL",
	ErrIncompatibleDefinition:  "INCOMPATIBLE_DEFINITION",
	ErrFTSTooManyWordsInPhrase: "FTS_TOO_MANY_WORDS_IN_PHRASE",
	ErrDecryptionFailed:        "DECRYPTION_FAILED",
	ErrFKDepthExceeded:         "FK_DEPTH_EXCEEDED",
	ErrTablespaceMissing:       "TABLESPACE_MISSING",
	ErrSequenceInvalidData:     "SEQUENCE_INVALID_DATA",
	ErrSequenceRunOut:          "SEQUENCE_RUN_OUT",
	ErrCommitError:             "COMMIT_ERROR",
	ErrPartitionList:           "PARTITION_LIST",
	ErrNoEncryption:            "NO_ENCRYPTION",
}

var errorText = map[Error]string{
	ErrKeyNotFound:             "did not find key on read or update",
	ErrFoundDuppKey:            "duplicate key on write",
	ErrInternalError:           "internal error",
	ErrRecordChanged:           "record changed since last read",
	ErrWrongIndex:              "wrong index given to function",
	ErrCrashed:                 "index file is crashed",
	ErrWrongInRecord:           "record file is crashed",
	ErrOutOfMem:                "out of memory",
	ErrRetryInit:               "initialization failed and should be retried",
	ErrNotATable:               "not a table file",
	ErrWrongCommand:            "command not supported",
	ErrOldFile:                 "old database file",
	ErrNoActiveRecord:          "no record read before update",
	ErrRecordDeleted:           "record was deleted",
	ErrRecordFileFull:          "no more room in record file",
	ErrIndexFileFull:           "no more room in index file",
	ErrEndOfFile:               "end of file",
	ErrUnsupported:             "unsupported extension used",
	ErrToBigRow:                "row too big",
	ErrWrongCreateOption:       "wrong create option",
	ErrFoundDuppUnique:         "duplicate unique on write",
	ErrUnknownCharset:          "cannot open charset",
	ErrWrongMrgTableDef:        "conflicting tables in merge",
	ErrCrashedOnRepair:         "last repair failed",
	ErrCrashedOnUsage:          "table must be repaired",
	ErrLockWaitTimeout:         "lock wait timeout",
	ErrLockTableFull:           "lock table full",
	ErrReadOnlyTransaction:     "updates not allowed",
	ErrLockDeadlock:            "deadlock found",
	ErrCannotAddForeign:        "cannot add foreign key constraint",
	ErrNoReferencedRow:         "cannot add a child row",
	ErrRowIsReferenced:         "cannot delete a parent row",
	ErrNoSavepoint:             "no savepoint with that name",
	ErrNonUniqueBlockSize:      "non unique key block size",
	ErrNoSuchTable:             "table does not exist in engine",
	ErrTableExist:              "table exists in engine",
	ErrNoConnection:            "could not connect to storage engine",
	ErrNullInSpatial:           "null in spatial index",
	ErrTableDefChanged:         "table definition changed",
	ErrNoPartitionFound:        "no partition matches the given value",
	ErrRBRLoggingFailed:        "row based binlogging failed",
	ErrDropIndexFK:             "index needed in foreign key constraint",
	ErrForeignDuplicateKey:     "duplicate key in foreign key constraint",
	ErrTableNeedsUpgrade:       "table needs upgrade",
	ErrTableReadonly:           "table is read only",
	ErrAutoincReadFailed:       "failed to get next auto increment value",
	ErrAutoincERange:           "auto increment value out of range",
	ErrGeneric:                 "generic error",
	ErrRecordIsTheSame:         "row is not updated",
	ErrLoggingImpossible:       "impossible to binlog",
	ErrCorruptEvent:            "corrupted binlog event",
	ErrNewFile:                 "file is too new",
	ErrRowsEventApply:          "rows event apply failed",
	ErrInitialization:          "error during initialization",
	ErrFileTooShort:            "file too short",
	ErrWrongCRC:                "wrong CRC on page",
	ErrTooManyConcurrentTrxs:   "too many active concurrent transactions",
	ErrNotInLockPartitions:     "row not in locked partitions",
	ErrIndexColTooLong:         "index column length exceeds limit",
	ErrIndexCorrupt:            "index corrupted",
	ErrUndoRecTooBig:           "undo record too big",
	ErrFTSInvalidDocID:         "invalid full text document id",
	ErrTablespaceExists:        "tablespace already exists",
	ErrTooManyFields:           "too many columns",
	ErrRowInWrongPartition:     "row in wrong partition",
	ErrRowNotVisible:           "row not visible",
	ErrAbortedByUser:           "operation aborted by user",
	ErrDiskFull:                "disk full",
	ErrIncompatibleDefinition:  "incompatible table definition",
	ErrFTSTooManyWordsInPhrase: "too many words in a full text phrase",
	ErrDecryptionFailed:        "table encrypted but decryption failed",
	ErrFKDepthExceeded:         "foreign key cascade delete or update exceeds depth",
	ErrTablespaceMissing:       "tablespace is missing",
	ErrSequenceInvalidData:     "sequence has invalid data",
	ErrSequenceRunOut:          "sequence has run out",
	ErrCommitError:             "commit failed",
	ErrPartitionList:           "invalid partition list",
	ErrNoEncryption:            "encryption not available",
}

// Valid reports whether e is an assigned handler error code.
func (e Error) Valid() bool {
	_, ok := errorNames[e]
	return ok
}

// Name returns the HA_ERR_ name of e without the prefix.
func (e Error) Name() string {
	if n, ok := errorNames[e]; ok {
		return n
	}

	return fmt.Sprintf("UNKNOWN_%d", int32(e))
}

func (e Error) Error() string {
	if t, ok := errorText[e]; ok {
		return t
	}

	return fmt.Sprintf("handler error %d", int32(e))
}

// Errors returns every assigned code in ascending order.
func Errors() []Error {
	out := make([]Error, 0, len(errorNames))

	for e := firstError; e <= lastError; e++ {
		if e.Valid() {
			out = append(out, e)
		}
	}

	return out
}

// Code maps err to the integer the server expects. A nil error is 0, an
// Error anywhere in the chain is its own code, io.EOF is end of file,
// allocation failures are out of memory and anything else is an internal
// error.
func Code(err error) int32 {
	if err == nil {
		return 0
	}

	var se Error
	if errors.As(err, &se) && se.Valid() {
		return int32(se)
	}

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return int32(ErrEndOfFile)
	case errors.Is(err, ErrAllocFailed):
		return int32(ErrOutOfMem)
	default:
		return int32(ErrInternalError)
	}
}
