package storage

import (
	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/table"
)

// Default limits, matching the handler base class.
const (
	DefaultMaxRecordLength = abi.HaMaxRecLength
	DefaultMaxKeys         = 0
	DefaultMaxKeyParts     = abi.MaxRefParts
	DefaultMaxKeyLength    = abi.MaxDataLengthForKey
)

// maxCost bounds the scan estimate the way the host does.
const maxCost = 1e200

// Base gives a handler the host's defaults. Embed it and override what the
// engine does differently.
type Base struct{}

// IndexType returns "", which the server shows as NULL.
func (Base) IndexType(uint32) string { return "" }

// TableFlags returns no flags.
func (Base) TableFlags() TableFlags { return 0 }

// IndexFlags returns no flags.
func (Base) IndexFlags(uint32, uint32, bool) IndexFlags { return 0 }

// MaxSupportedRecordLength returns HA_MAX_REC_LENGTH.
func (Base) MaxSupportedRecordLength() uint32 { return DefaultMaxRecordLength }

// MaxSupportedKeys returns 0: no indexes.
func (Base) MaxSupportedKeys() uint32 { return DefaultMaxKeys }

// MaxSupportedKeyParts returns MAX_REF_PARTS.
func (Base) MaxSupportedKeyParts() uint32 { return DefaultMaxKeyParts }

// MaxSupportedKeyLength returns MAX_DATA_LENGTH_FOR_KEY.
func (Base) MaxSupportedKeyLength() uint32 { return DefaultMaxKeyLength }

// ScanTime returns ScanTime(ctx).
func (Base) ScanTime(ctx *Context) Cost { return ScanTime(ctx) }

// KeyreadTime returns KeyreadTime(ctx, ...).
func (Base) KeyreadTime(ctx *Context, index uint32, ranges, rows, blocks uint64) Cost {
	return KeyreadTime(ctx, index, ranges, rows, blocks)
}

// RndPosTime returns RndPosTime(ctx, rows).
func (Base) RndPosTime(ctx *Context, rows uint64) Cost { return RndPosTime(ctx, rows) }

// DeleteRow succeeds without doing anything.
func (Base) DeleteRow(*Context, []byte) error { return nil }

// ScanTime is the handler base class estimate for a full scan: one IO per
// IO_SIZE bytes of data and one block copy per engine block.
func ScanTime(ctx *Context) Cost {
	length := float64(ctx.dataFileLength())
	bs := float64(ctx.blockSize())
	ibcc := ctx.Costs().IndexBlockCopyCost()

	// A zero block size would divide to NaN or an infinity; memory engines
	// only pay the copy cost.
	cpu := ibcc
	if bs != 0 {
		cpu = (length+bs-1)/bs + ibcc
	}

	return Cost{
		IO:  length / abi.IOSize,
		CPU: min(max(cpu, 0), maxCost),
	}
}

// RndPosTime is the base estimate for fetching rows rows by position.
func RndPosTime(ctx *Context, rows uint64) Cost {
	bs := ctx.blockSize()

	return Cost{
		IO:  float64(satSub(bs+abi.IOSize, 1)) / abi.IOSize,
		CPU: float64(rows) + ctx.Costs().IndexBlockCopyCost(),
	}
}

// KeyreadTime is the base estimate for an index-only read. When blocks is 0
// it is derived from the key's storage length.
func KeyreadTime(ctx *Context, index uint32, _, rows, blocks uint64) Cost {
	bs := ctx.blockSize()
	if bs == 0 {
		return Cost{}
	}

	if blocks == 0 {
		keyLen := uint64(table.KeyStorageLength(ctx.Share(), index))
		blocks = (rows*keyLen + bs) / bs
	}

	return Cost{IO: float64(blocks*bs) / abi.IOSize}
}

// KeyScanTime is the estimate for scanning a whole index.
func KeyScanTime(ctx *Context, index uint32, rows uint64) Cost {
	return KeyreadTime(ctx, index, 1, max(rows, 1), 0)
}

func satSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}

	return a - b
}
