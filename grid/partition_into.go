package grid

import (
	"fmt"
	"sync/atomic"

	"github.com/exascience/partile"
	"github.com/exascience/partile/device"
	"github.com/exascience/partile/tile"
)

// PartitionInto writes the elements of src into dst so that every
// element satisfying p precedes every element that does not, and
// returns the index of the first non-satisfying element. src is left
// untouched; dst must be at least as long as src. An empty src returns
// 0 and launches no grid work.
//
// This is the linear-storage variant of Partition: because each tile
// writes only into its own reserved spans of a separate output buffer,
// no block locking is needed and the scheduling-fairness caveat of
// Partition does not apply. PartitionInto panics if dst is shorter than
// src.
func PartitionInto[T any](dst, src []T, p partile.Predicate[T]) int {
	return PartitionIntoOn(device.Default(), dst, src, p)
}

// PartitionIntoOn is PartitionInto on an explicit device. Unlike
// PartitionOn it is safe on devices with bounded tile concurrency.
func PartitionIntoOn[T any](d *device.Device, dst, src []T, p partile.Predicate[T]) int {
	n := len(src)
	if n == 0 {
		return n
	}
	if len(dst) < n {
		panic(fmt.Sprintf("destination too short: %v < %v", len(dst), n))
	}

	var trueCount, falseCount atomic.Int64
	falseCount.Store(int64(n))

	d.Launch(n, func(l *device.Lane) {
		valid := l.Global() < n
		var tmp T
		if valid {
			tmp = src[l.Global()]
		}

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

		if valid {
			if flag {
				dst[sp.trueIdx+int64(pTrue[l.Local()])] = tmp
			} else {
				dst[sp.falseIdx+int64(pFalse[l.Local()])] = tmp
			}
		}
	})

	return int(trueCount.Load())
}
