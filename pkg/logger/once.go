package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync/atomic"
)

// Once emits a message the first time it is used and stays silent after.
// The zero value is ready to use and safe for concurrent callers.
type Once struct {
	done atomic.Bool
}

// Warn logs msg at warning level unless o already fired. It reports whether
// the message was written.
func (o *Once) Warn(l Logger, msg string, keysAndValues ...any) bool {
	if !o.done.CompareAndSwap(false, true) {
		return false
	}

	l.Warn(msg, keysAndValues...)

	return true
}

// Error logs msg at error level unless o already fired.
func (o *Once) Error(l Logger, msg string, keysAndValues ...any) bool {
	if !o.done.CompareAndSwap(false, true) {
		return false
	}

	l.Error(msg, keysAndValues...)

	return true
}

// Fired reports whether o has already logged.
func (o *Once) Fired() bool {
	return o.done.Load()
}

// Redact renders key material for logs: its length and a short fingerprint
// that cannot be reversed.
func Redact(b []byte) string {
	if len(b) == 0 {
		return "<empty>"
	}

	sum := sha256.Sum256(b)

	return "<" + strconv.Itoa(len(b)) + " bytes sha256:" + hex.EncodeToString(sum[:4]) + ">"
}

// LogErr logs err at level with msg and returns it unchanged, so call sites
// can log and propagate in one expression. A nil err is not logged.
func LogErr(l Logger, level Level, err error, msg string, keysAndValues ...any) error {
	if err == nil {
		return nil
	}

	kv := append([]any{"error", err}, keysAndValues...)

	switch level {
	case LevelDebug:
		l.Debug(msg, kv...)
	case LevelInfo:
		l.Info(msg, kv...)
	case LevelWarn:
		l.Warn(msg, kv...)
	default:
		l.Error(msg, kv...)
	}

	return err
}
