package offheap

import (
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var (
	DefaultOffheapDriver OffheapDriver
)

func init() {
	var err error
	err = DefaultOffheapDriver.Init(DefaultBlocksLimit)
	if err != nil {
		panic(err)
	}
}

// OffheapDriver accounts for the control blocks handed out to shared and weak
// pointers. Blocks themselves are owned by their pointers; the driver only
// hands out ids, enforces the limit and keeps counters, so a single driver may
// be shared by goroutines that each own different blocks.
type OffheapDriver struct {
	maxBlockID  atomic.Int64
	blocksLimit atomic.Int32

	activeBlocksNum     atomic.Int32
	allocatedBlocksNum  atomic.Int64
	releasedBlocksNum   atomic.Int64
	destroyedObjectsNum atomic.Int64
	allocFailuresNum    atomic.Int64
}

type DriverStats struct {
	BlocksLimit      int32
	ActiveBlocks     int32
	AllocatedBlocks  int64
	ReleasedBlocks   int64
	DestroyedObjects int64
	AllocFailures    int64
}

// Init resets the driver. blocksLimit of BlocksUnlimited disables the limit.
func (p *OffheapDriver) Init(blocksLimit int32) error {
	if blocksLimit < BlocksUnlimited {
		return errors.Wrapf(ErrInvalidBlocksLimit, "blocks limit %d", blocksLimit)
	}
	if n := p.activeBlocksNum.Load(); n > 0 {
		return errors.Wrapf(ErrDriverBusy, "%d active blocks", n)
	}

	p.blocksLimit.Store(blocksLimit)
	p.maxBlockID.Store(0)
	p.allocatedBlocksNum.Store(0)
	p.releasedBlocksNum.Store(0)
	p.destroyedObjectsNum.Store(0)
	p.allocFailuresNum.Store(0)

	return nil
}

// SetBlocksLimit changes the limit without touching the counters. Blocks
// already allocated above a lowered limit stay valid.
func (p *OffheapDriver) SetBlocksLimit(blocksLimit int32) error {
	if blocksLimit < BlocksUnlimited {
		return errors.Wrapf(ErrInvalidBlocksLimit, "blocks limit %d", blocksLimit)
	}
	p.blocksLimit.Store(blocksLimit)
	return nil
}

func (p *OffheapDriver) AllocBlockID() int64 {
	return p.maxBlockID.Inc()
}

// reserveBlock never lets activeBlocksNum exceed the limit, even transiently,
// so a refused reservation cannot starve a concurrent one.
func (p *OffheapDriver) reserveBlock() (int64, error) {
	var (
		limit  = p.blocksLimit.Load()
		active int32
	)

	for {
		active = p.activeBlocksNum.Load()
		if limit != BlocksUnlimited && active >= limit {
			p.allocFailuresNum.Inc()
			bgLogger().Warn("control block allocation refused",
				zap.Int32("limit", limit),
				zap.Int32("active", active))
			return 0, errors.Wrapf(ErrAllocBlockOutOfLimit, "limit %d", limit)
		}
		if p.activeBlocksNum.CompareAndSwap(active, active+1) {
			break
		}
	}

	p.allocatedBlocksNum.Inc()
	return p.AllocBlockID(), nil
}

func (p *OffheapDriver) releaseBlock(blockID int64) {
	p.activeBlocksNum.Dec()
	p.releasedBlocksNum.Inc()
	bgLogger().Debug("control block released", zap.Int64("block", blockID))
}

func (p *OffheapDriver) noteObjectDestroyed(blockID int64) {
	p.destroyedObjectsNum.Inc()
	bgLogger().Debug("managed object destroyed", zap.Int64("block", blockID))
}

func (p *OffheapDriver) BlocksLimit() int32 {
	return p.blocksLimit.Load()
}

func (p *OffheapDriver) ActiveBlocks() int32 {
	return p.activeBlocksNum.Load()
}

func (p *OffheapDriver) Stats() DriverStats {
	return DriverStats{
		BlocksLimit:      p.blocksLimit.Load(),
		ActiveBlocks:     p.activeBlocksNum.Load(),
		AllocatedBlocks:  p.allocatedBlocksNum.Load(),
		ReleasedBlocks:   p.releasedBlocksNum.Load(),
		DestroyedObjects: p.destroyedObjectsNum.Load(),
		AllocFailures:    p.allocFailuresNum.Load(),
	}
}
