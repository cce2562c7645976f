package abi

import "unsafe"

// GoString copies the NUL-terminated string at p. A nil p yields "".
func GoString(p *byte) string {
	if p == nil {
		return ""
	}

	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}

	return string(unsafe.Slice(p, n))
}

// String copies the string s points at.
func (s LexCString) String() string {
	if s.Str == nil || s.Length == 0 {
		return ""
	}

	return string(unsafe.Slice(s.Str, s.Length))
}

// CString returns s as a NUL-terminated byte slice. The caller keeps the
// slice alive for as long as the pointer to its first byte is in use.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)

	return b
}

// Bytes views n bytes at p without copying. A nil p yields nil.
func Bytes(p *byte, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}

	return unsafe.Slice(p, n)
}
