package table

import (
	"unsafe"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

// CreateInfo is a view of HA_CREATE_INFO. The server only hands it out
// during CREATE TABLE, so there is no phase parameter.
type CreateInfo struct {
	raw abi.CreateInfo
}

// CreateInfoOf views p.
func CreateInfoOf(p *abi.CreateInfo) *CreateInfo {
	return (*CreateInfo)(unsafe.Pointer(p))
}

// Comment returns the COMMENT table option.
func (c *CreateInfo) Comment() string { return c.raw.Comment.String() }

// DataFileName returns the DATA DIRECTORY option, if any.
func (c *CreateInfo) DataFileName() string { return abi.GoString(c.raw.DataFileName) }

// IndexFileName returns the INDEX DIRECTORY option, if any.
func (c *CreateInfo) IndexFileName() string { return abi.GoString(c.raw.IndexFileName) }

// MaxRows returns the MAX_ROWS option.
func (c *CreateInfo) MaxRows() uint64 { return c.raw.MaxRows }

// MinRows returns the MIN_ROWS option.
func (c *CreateInfo) MinRows() uint64 { return c.raw.MinRows }

// AutoIncrementValue returns the AUTO_INCREMENT start value.
func (c *CreateInfo) AutoIncrementValue() uint64 { return c.raw.AutoIncrementValue }

// AvgRowLength returns the AVG_ROW_LENGTH option.
func (c *CreateInfo) AvgRowLength() uint64 { return c.raw.AvgRowLength }

// Options returns the HA_OPTION_* bits.
func (c *CreateInfo) Options() uint32 { return c.raw.TableOptions }

// Thd identifies the connection a call is made on. It is only meaningful as
// a key; the connection state itself stays inside the server.
type Thd struct {
	raw *abi.Thd
}

// ThdOf wraps p.
func ThdOf(p *abi.Thd) Thd { return Thd{raw: p} }

// ID returns a value unique among live connections.
func (t Thd) ID() uintptr { return uintptr(unsafe.Pointer(t.raw)) }

// IsZero reports whether t refers to no connection.
func (t Thd) IsZero() bool { return t.raw == nil }

// MemRoot is the arena the server constructs a handler in.
type MemRoot struct {
	raw *abi.MemRoot
}

// MemRootOf wraps p.
func MemRootOf(p *abi.MemRoot) MemRoot { return MemRoot{raw: p} }

// IsZero reports whether m refers to no arena.
func (m MemRoot) IsZero() bool { return m.raw == nil }
