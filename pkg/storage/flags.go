package storage

// TableFlags is the bit set returned from table_flags (HA_* in handler.h).
type TableFlags uint64

// Table capability bits.
const (
	TableNoTransactions                TableFlags = 1 << 0  // transactions are not supported
	TablePartialColumnRead             TableFlags = 1 << 1  // reads may not return every column
	TableScanOnIndex                   TableFlags = 1 << 2  // data and index are in separate files
	TableRecNotInSeq                   TableFlags = 1 << 3  // rows may not come back in position order from a scan
	TableCanGeometry                   TableFlags = 1 << 4
	TableFastKeyRead                   TableFlags = 1 << 5  // random order key reads are as fast as sequential ones
	TableRequiresKeyColumnsForDelete   TableFlags = 1 << 6
	TableNullInKey                     TableFlags = 1 << 7  // keys may contain NULL
	TableDuplicatePos                  TableFlags = 1 << 8  // position returns a duplicate row
	TableNoBlobs                       TableFlags = 1 << 9
	TableCanIndexBlobs                 TableFlags = 1 << 10
	TableAutoPartKey                   TableFlags = 1 << 11 // auto increment in a multi-part key
	TableRequirePrimaryKey             TableFlags = 1 << 12
	TableStatsRecordsIsExact           TableFlags = 1 << 13 // Statistics.Records is exact
	TableCanInsertDelayed              TableFlags = 1 << 14
	TablePrimaryKeyInReadIndex         TableFlags = 1 << 15
	TablePrimaryKeyRequiredForPosition TableFlags = 1 << 16
	TableCanRTreeKeys                  TableFlags = 1 << 17
	TableNotDeleteWithCache            TableFlags = 1 << 18
	TablePrimaryKeyRequiredForDelete   TableFlags = 1 << 19
	TableNoPrefixCharKeys              TableFlags = 1 << 20
	TableCanFulltext                   TableFlags = 1 << 21
	TableCanSQLHandler                 TableFlags = 1 << 22
	TableNoAutoIncrement               TableFlags = 1 << 23
	TableHasOldChecksum                TableFlags = 1 << 24
	TableFileBased                     TableFlags = 1 << 26 // table data is stored in separate files
	TableCanBitField                   TableFlags = 1 << 28
	TableNeedReadRangeBuffer           TableFlags = 1 << 29
	TableAnyIndexMayBeUnique           TableFlags = 1 << 30
	TableNoCopyOnAlter                 TableFlags = 1 << 31
	TableHasRecords                    TableFlags = 1 << 32 // records() gives an exact count
	TableHasOwnBinlogging              TableFlags = 1 << 33
	TableBinlogRowCapable              TableFlags = 1 << 34
	TableBinlogStmtCapable             TableFlags = 1 << 35
	TableDuplicateKeyNotInOrder        TableFlags = 1 << 36
	TableCanRepair                     TableFlags = 1 << 37
	TableHasNewChecksum                TableFlags = 1 << 38
	TableCanVirtualColumns             TableFlags = 1 << 39
	TableMRRCantSort                   TableFlags = 1 << 40
	TableRecordMustBeCleanOnWrite      TableFlags = 1 << 41
	TableCanTableConditionPushdown     TableFlags = 1 << 42
	TableReadBeforeWriteRemoval        TableFlags = 1 << 43
	TableCanFulltextExt                TableFlags = 1 << 44
	TableCanExport                     TableFlags = 1 << 45
	TableConcurrentOptimize            TableFlags = 1 << 46
	TableCanOnlineBackups              TableFlags = 1 << 47
	TableCanForceBulkUpdate            TableFlags = 1 << 48
	TableCanForceBulkDelete            TableFlags = 1 << 49
	TableCanDirectUpdateAndDelete      TableFlags = 1 << 50
	TableCanMultistepMerge             TableFlags = 1 << 51
	TableSlowCmpRef                    TableFlags = 1 << 52
	TableSlowRndPos                    TableFlags = 1 << 53
	TableCanTablesWithoutRollback      TableFlags = 1 << 54
	TablePersistent                    TableFlags = 1 << 55
	TableReusesFileNames               TableFlags = 1 << 56
	TableCanHashKeys                   TableFlags = 1 << 57
	TableCrashSafe                     TableFlags = 1 << 58
	TableOnlineAnalyze                 TableFlags = 1 << 59
	TableNonComparableRowid            TableFlags = 1 << 60
	TableCanSkipLocked                 TableFlags = 1 << 61
	TableNoOnlineAlter                 TableFlags = 1 << 62

	TableBinlogFlags = TableBinlogRowCapable | TableBinlogStmtCapable
)

// Has reports whether every bit of want is set.
func (f TableFlags) Has(want TableFlags) bool { return f&want == want }

// IndexFlags is the bit set returned from index_flags (HA_READ_NEXT and
// friends).
type IndexFlags uint64

// Index capability bits.
const (
	IndexReadNext              IndexFlags = 1 << 0 // next() is supported
	IndexReadPrev              IndexFlags = 1 << 1 // prev() is supported
	IndexReadOrder             IndexFlags = 1 << 2 // rows come back in key order
	IndexReadRange             IndexFlags = 1 << 3 // range scans are supported
	IndexOnlyWholeIndex        IndexFlags = 1 << 4
	IndexTableScanOnNull       IndexFlags = 1 << 5
	IndexKeyreadOnly           IndexFlags = 1 << 6
	IndexKeyScanNotROR         IndexFlags = 1 << 7
	IndexDoIndexCondPushdown   IndexFlags = 1 << 8
	IndexClusteredIndex        IndexFlags = 1 << 9
	IndexDoRangeFilterPushdown IndexFlags = 1 << 10
)

// Has reports whether every bit of want is set.
func (f IndexFlags) Has(want IndexFlags) bool { return f&want == want }
