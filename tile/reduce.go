package tile

import (
	"github.com/exascience/partile"
	"github.com/exascience/partile/device"
)

// Reduce folds one tile's data with the + operator using a binary tree:
// at each of the log2(n) levels the live lanes add the upper half of
// the remaining range into the lower half, separated by a barrier with
// a tile-scratch fence. The combined value ends up in the last element,
// whose index is returned. The data length must be a power of two; the
// caller pads with the identity where needed.
//
// An empty range returns len(data) unchanged without reaching any
// barrier.
func Reduce[T partile.Number](data []T, l *device.Lane) int {
	last := len(data)
	if last == 0 {
		return last
	}
	m := last / 2
	for m > 0 {
		for i := 0; i < m; i += partile.TileWidth {
			if e := l.Local() + i; e < m {
				data[last-e-1] += data[last-m-e-1]
			}
		}
		l.TileBarrier()
		m /= 2
	}
	return last - 1
}
