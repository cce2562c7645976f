package encryption

import "github.com/smykla-skalski/mariabridge/pkg/logger"

// Actions reported by FitKey.
const (
	ActionZeroExtend = "Zero extending"
	ActionTruncate   = "Truncating"
)

// FitKey returns buf resized to exactly n bytes, zero extending a short
// buffer and truncating a long one. ok is true when buf already had length
// n; otherwise action names what was done. The result never aliases buf.
func FitKey(buf []byte, n int) (out []byte, ok bool, action string) {
	out = make([]byte, n)
	copy(out, buf)

	switch {
	case len(buf) == n:
		return out, true, ""
	case len(buf) < n:
		return out, false, ActionZeroExtend
	default:
		return out, false, ActionTruncate
	}
}

// Fitter adapts the key and IV the server supplies to a cipher's fixed
// sizes, warning once per process for each of the two when they do not
// match. The zero value is ready to use.
type Fitter struct {
	// Cipher names the algorithm in diagnostics.
	Cipher string

	keyOnce logger.Once
	ivOnce  logger.Once
}

// Fit returns key and iv resized to keyLen and ivLen.
func (f *Fitter) Fit(log logger.Logger, key, iv []byte, keyLen, ivLen int) (k, n []byte) {
	k, kOK, kAction := FitKey(key, keyLen)
	if !kOK {
		f.keyOnce.Warn(log, f.Cipher+" expects a different key size; "+kAction+" to meet requirements",
			"want", keyLen, "got", len(key))
	}

	n, nOK, nAction := FitKey(iv, ivLen)
	if !nOK {
		f.ivOnce.Warn(log, f.Cipher+" expects a different nonce size; "+nAction+" to meet requirements",
			"want", ivLen, "got", len(iv))
	}

	return k, n
}
