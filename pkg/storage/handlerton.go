package storage

import (
	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/table"
)

//go:generate mockgen -source=handlerton.go -destination=handlerton_mock.go -package=storage

// HandlertonFlags is the HTON_* bit set.
type HandlertonFlags uint32

// Handlerton flags.
const (
	HtonNoFlags               HandlertonFlags = abi.HtonNoFlags
	HtonCloseCursorsAtCommit  HandlertonFlags = abi.HtonCloseCursorsAtCommit
	HtonAlterNotSupported     HandlertonFlags = abi.HtonAlterNotSupported
	HtonCanRecreate           HandlertonFlags = abi.HtonCanRecreate
	HtonHidden                HandlertonFlags = abi.HtonHidden
	HtonNotUserSelectable     HandlertonFlags = abi.HtonNotUserSelectable
	HtonTemporaryNotSupported HandlertonFlags = abi.HtonTemporaryNotSupported
	HtonSupportLogTables      HandlertonFlags = abi.HtonSupportLogTables
	HtonNoPartition           HandlertonFlags = abi.HtonNoPartition
)

// Handlerton is the engine singleton: one per plugin, created at plugin
// init and shared by every handler.
type Handlerton interface {
	// Flags returns the HTON_* flags stored in the host handlerton.
	Flags() HandlertonFlags

	// TableFileExtensions lists the file extensions one table uses, so the
	// server can rename and drop them. May be empty.
	TableFileExtensions() []string
}

// ConnectionCloser is told when a connection that used the engine ends.
type ConnectionCloser interface {
	CloseConnection(thd table.Thd) error
}

// QueryKiller is told when a query on thd is killed.
type QueryKiller interface {
	KillQuery(thd table.Thd, level KillLevel)
}

// Savepointer implements SAVEPOINT. The value returned from SavepointSet
// is handed back to rollback and release for the same savepoint.
type Savepointer interface {
	SavepointSet(thd table.Thd) (any, error)
	SavepointRollback(thd table.Thd, sv any) error
	SavepointRollbackCanReleaseMDL(thd table.Thd) bool
	SavepointRelease(thd table.Thd, sv any) error
}

// Committer commits the statement or, when all is true, the transaction.
type Committer interface {
	Commit(thd table.Thd, all bool) error
}

// OrderedCommitter is called in binlog order before Commit.
type OrderedCommitter interface {
	CommitOrdered(thd table.Thd, all bool)
}

// RollbackHandler rolls back the statement or, when all is true, the
// transaction.
type RollbackHandler interface {
	Rollback(thd table.Thd, all bool) error
}

// Preparer is the first phase of a two-phase commit.
type Preparer interface {
	Prepare(thd table.Thd, all bool) error
}

// OrderedPreparer is called in binlog order after Prepare.
type OrderedPreparer interface {
	PrepareOrdered(thd table.Thd, all bool)
}
