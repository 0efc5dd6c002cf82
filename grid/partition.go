// Package grid provides grid-level algorithms that orchestrate many
// tiles concurrently over an arbitrary-length range, using the
// partile/tile engine inside each tile.
package grid

import (
	"sync/atomic"

	"k8s.io/klog/v2"

	"github.com/exascience/partile"
	"github.com/exascience/partile/device"
	"github.com/exascience/partile/internal"
	"github.com/exascience/partile/tile"
)

// Block lock word values.
const (
	unlocked uint32 = 0
	locked   uint32 = 1
)

// acquireBlocks spin-locks the output blocks from first to last on
// behalf of the whole tile: the origin lane performs the
// compare-and-swaps in ascending block order, and the trailing barrier
// with a global memory fence publishes the lock state to every lane.
//
// The spin is bounded only by scheduler fairness: if the holder of a
// block is never scheduled, acquireBlocks spins forever. This is a
// known, documented risk of the in-place protocol; there is
// deliberately no timeout. See Partition.
func acquireBlocks(blocks []atomic.Uint32, l *device.Lane, first, last int64) {
	if l.IsOrigin() {
		for b := first; b <= last; b++ {
			for !blocks[b].CompareAndSwap(unlocked, locked) {
				// Spin.
			}
		}
	}
	l.GlobalBarrier()
}

// releaseBlocks unlocks the blocks from first to last, origin lane
// only, followed by a barrier with a global memory fence.
func releaseBlocks(blocks []atomic.Uint32, l *device.Lane, first, last int64) {
	if l.IsOrigin() {
		for b := first; b <= last; b++ {
			blocks[b].Swap(unlocked)
		}
	}
	l.GlobalBarrier()
}

// spans records the output ranges one tile has reserved in the two
// buckets; the tile's last lane fills it in, all lanes read it after a
// barrier.
type spans struct {
	trueIdx, trueLen   int64
	falseIdx, falseLen int64
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Partition rearranges data in place so that every element satisfying p
// precedes every element that does not, and returns the index of the
// first non-satisfying element. It launches a full grid on the default
// device and synchronizes before returning. An empty range returns
// len(data) unchanged and launches no grid work.
//
// Within each bucket, an element's final position is determined by its
// index within its tile combined with the order in which tiles reserve
// output spans; the partition is not stable across tile boundaries.
//
// The rearrangement is done in one pass without a second buffer: each
// tile scans its predicate flags with the tile engine, reserves a
// contiguous span in the true bucket from a rising global counter and
// in the false bucket from a falling one, and serializes its writes
// against other tiles with per-block spin locks. Every block starts out
// locked and is released by its owning tile once the tile has read its
// input, so no tile can overwrite data that has not been read yet. The
// locking discipline assumes tiles are scheduled fairly; on a device
// bounded with WithMaxConcurrentTiles a spinning tile can wait forever
// for a tile that is never scheduled. For a variant without these
// synchronization quirks, at the price of a second buffer, see
// PartitionInto.
func Partition[T any](data []T, p partile.Predicate[T]) int {
	return PartitionOn(device.Default(), data, p)
}

// PartitionOn is Partition on an explicit device. The caller is
// responsible for the device scheduling every tile of the launch
// concurrently; see the deadlock discussion on Partition.
func PartitionOn[T any](d *device.Device, data []T, p partile.Predicate[T]) int {
	n := len(data)
	if n == 0 {
		return n
	}

	blocks := make([]atomic.Uint32, internal.TileCount(n, partile.TileWidth))
	for i := range blocks {
		blocks[i].Store(locked)
	}
	var trueCount, falseCount atomic.Int64
	falseCount.Store(int64(n))

	d.Launch(n, func(l *device.Lane) {
		valid := l.Global() < n
		var tmp T
		if valid {
			tmp = data[l.Global()]
		}
		// Once every lane of the tile has read its input, let other
		// tiles write into this tile's block. The barrier before the
		// release orders the sibling lanes' loads ahead of the unlock;
		// without it a writer tile could acquire the block and clobber
		// an element its owner lane has not read yet.
		l.GlobalBarrier()
		releaseBlocks(blocks, l, int64(l.Tile()), int64(l.Tile()))

		pTrue := device.Shared(l, func() []int32 { return make([]int32, partile.TileWidth) })
		pFalse := device.Shared(l, func() []int32 { return make([]int32, partile.TileWidth) })

		flag := valid && p(tmp)
		pTrue[l.Local()] = b2i(flag)
		pFalse[l.Local()] = b2i(valid && !flag)
		l.TileBarrier()

		tile.Scan(pTrue, l)
		tile.Scan(pFalse, l)
		l.TileBarrier()

		sp := device.Shared(l, func() *spans { return new(spans) })
		if l.Local() == partile.TileWidth-1 {
			sp.trueLen = int64(pTrue[l.Local()] + b2i(flag))
			sp.falseLen = int64(pFalse[l.Local()] + b2i(valid && !flag))
			sp.trueIdx = trueCount.Add(sp.trueLen) - sp.trueLen
			sp.falseIdx = falseCount.Add(-sp.falseLen)
		}
		l.TileBarrier()

		if sp.trueLen > 0 {
			first := sp.trueIdx / partile.TileWidth
			last := (sp.trueIdx + sp.trueLen - 1) / partile.TileWidth
			acquireBlocks(blocks, l, first, last)
			if flag {
				data[sp.trueIdx+int64(pTrue[l.Local()])] = tmp
			}
			l.GlobalBarrier()
			releaseBlocks(blocks, l, first, last)
		}

		if sp.falseLen > 0 {
			first := sp.falseIdx / partile.TileWidth
			last := (sp.falseIdx + sp.falseLen - 1) / partile.TileWidth
			acquireBlocks(blocks, l, first, last)
			if valid && !flag {
				data[sp.falseIdx+int64(pFalse[l.Local()])] = tmp
			}
			l.GlobalBarrier()
			releaseBlocks(blocks, l, first, last)
		}
	})

	trues := int(trueCount.Load())
	if klog.V(2).Enabled() {
		klog.Infof("partile: partitioned %d elements into %d true / %d false", n, trues, n-trues)
	}
	return trues
}
