package bridge

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/mariabridge/pkg/logger"
	"github.com/smykla-skalski/mariabridge/pkg/storage"
)

// ErrABI marks violations of the contract between the server and the
// bridge. They are never recovered; in a cgo build the panic aborts the
// server.
var ErrABI = errors.New("ABI violation")

// Fatal logs err and panics with it marked as ErrABI.
func Fatal(err error) {
	err = errors.Mark(err, ErrABI)
	logger.Default().Error("fatal ABI error, aborting", "error", err)

	panic(err)
}

// IsABI reports whether a recovered panic value is an ABI violation.
func IsABI(r any) bool {
	err, ok := r.(error)

	return ok && errors.Is(err, ErrABI)
}

func checkTag(slot string, got, want TypeTag) {
	if got != want {
		Fatal(errors.Newf("%s: type tag %s does not match %s", slot, got, want))
	}
}

// recovered turns a panic from plugin code into fallback. ABI panics pass
// through.
func recovered[T any](slot string, out *T, fallback T) {
	r := recover()
	if r == nil {
		return
	}

	if IsABI(r) {
		panic(r)
	}

	logger.Default().Error("recovered panic from plugin code",
		"slot", slot,
		"panic", fmt.Sprint(r),
	)

	*out = fallback
}

// code maps err to a handler return code and logs unexpected failures.
// End of file and key-not-found are normal results and are not logged.
func code(slot string, err error) int32 {
	c := storage.Code(err)

	switch storage.Error(c) {
	case 0, storage.ErrEndOfFile, storage.ErrKeyNotFound:
	default:
		logger.Default().Debug("handler call failed", "slot", slot, "code", c, "error", err)
	}

	return c
}
