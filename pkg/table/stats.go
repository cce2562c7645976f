package table

import (
	"unsafe"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
)

// Statistics is a view of the handler's ha_statistics block. Info
// implementations update it in place; the optimizer reads it afterwards.
type Statistics struct {
	raw abi.Statistics
}

// StatisticsOf views p.
func StatisticsOf(p *abi.Statistics) *Statistics {
	return (*Statistics)(unsafe.Pointer(p))
}

// Records returns the estimated row count.
func (s *Statistics) Records() uint64 { return s.raw.Records }

// SetRecords stores the estimated row count.
func (s *Statistics) SetRecords(n uint64) { s.raw.Records = n }

// Deleted returns the number of deleted rows.
func (s *Statistics) Deleted() uint64 { return s.raw.Deleted }

// SetDeleted stores the number of deleted rows.
func (s *Statistics) SetDeleted(n uint64) { s.raw.Deleted = n }

// DataFileLength returns the data file size in bytes.
func (s *Statistics) DataFileLength() uint64 { return s.raw.DataFileLength }

// SetDataFileLength stores the data file size in bytes.
func (s *Statistics) SetDataFileLength(n uint64) { s.raw.DataFileLength = n }

// IndexFileLength returns the index file size in bytes.
func (s *Statistics) IndexFileLength() uint64 { return s.raw.IndexFileLength }

// SetIndexFileLength stores the index file size in bytes.
func (s *Statistics) SetIndexFileLength(n uint64) { s.raw.IndexFileLength = n }

// MeanRecLength returns the average row length.
func (s *Statistics) MeanRecLength() uint64 { return s.raw.MeanRecLength }

// SetMeanRecLength stores the average row length.
func (s *Statistics) SetMeanRecLength(n uint64) { s.raw.MeanRecLength = n }

// BlockSize returns the engine block size; 0 for memory engines.
func (s *Statistics) BlockSize() uint32 { return s.raw.BlockSize }

// SetBlockSize stores the engine block size; 0 for memory engines.
func (s *Statistics) SetBlockSize(n uint32) { s.raw.BlockSize = n }

// AutoIncrementValue returns the next auto-increment value.
func (s *Statistics) AutoIncrementValue() uint64 { return s.raw.AutoIncrementValue }

// SetAutoIncrementValue stores the next auto-increment value.
func (s *Statistics) SetAutoIncrementValue(n uint64) { s.raw.AutoIncrementValue = n }

// Costs is a view of the optimizer cost constants for the handler's engine.
type Costs struct {
	raw abi.OptimizerCosts
}

// CostsOf views p.
func CostsOf(p *abi.OptimizerCosts) *Costs {
	return (*Costs)(unsafe.Pointer(p))
}

// IndexBlockCopyCost returns the cost of copying one index block to the
// key cache.
func (c *Costs) IndexBlockCopyCost() float64 {
	if c == nil {
		return 0
	}

	return c.raw.IndexBlockCopyCost
}

// DiskReadCost returns the cost of reading one IO_SIZE block.
func (c *Costs) DiskReadCost() float64 {
	if c == nil {
		return 0
	}

	return c.raw.DiskReadCost
}

// RowLookupCost returns the cost of fetching a row by position.
func (c *Costs) RowLookupCost() float64 {
	if c == nil {
		return 0
	}

	return c.raw.RowLookupCost
}
