package storage

import (
	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/table"
)

// Context is the host state visible to a handler during one call: the
// statistics block, optimizer costs, the opened table and the position
// buffer. It is only valid until the call returns.
type Context struct {
	raw *abi.HandlerBridge
}

// NewContext wraps the bridge record the host passed to a slot.
func NewContext(raw *abi.HandlerBridge) *Context {
	return &Context{raw: raw}
}

// Stats returns the handler's statistics block.
func (c *Context) Stats() *table.Statistics {
	if c.raw.Stats == nil {
		return nil
	}

	return table.StatisticsOf(c.raw.Stats)
}

// Costs returns the optimizer costs for this engine. May be nil before the
// first open.
func (c *Context) Costs() *table.Costs {
	if c.raw.Costs == nil {
		return nil
	}

	return table.CostsOf(c.raw.Costs)
}

// Share returns the table definition.
func (c *Context) Share() *table.Share[table.Open] {
	if c.raw.Share == nil {
		return nil
	}

	return table.ShareOf[table.Open](c.raw.Share)
}

// Table returns the opened table, or nil outside open/close.
func (c *Context) Table() *table.Table[table.Open] {
	if c.raw.Table == nil {
		return nil
	}

	return table.TableOf[table.Open](c.raw.Table)
}

// Ref returns the handler's position buffer (handler::ref). Position
// writes the current row's position here; the server later hands it back
// to RndPos.
func (c *Context) Ref() []byte {
	return abi.Bytes(c.raw.Ref, int(c.raw.RefLength))
}

// ActiveIndex returns the index selected by the last index_init.
func (c *Context) ActiveIndex() uint32 { return c.raw.ActiveIndex }

// blockSize and friends read the statistics the cost formulas use. A
// missing stats block reads as zero.
func (c *Context) blockSize() uint64 {
	if s := c.Stats(); s != nil {
		return uint64(s.BlockSize())
	}

	return 0
}

func (c *Context) dataFileLength() uint64 {
	if s := c.Stats(); s != nil {
		return s.DataFileLength()
	}

	return 0
}
