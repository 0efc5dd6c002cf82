package device

import "sync/atomic"

// tileState is the per-tile context shared by the tile's lanes: the
// barrier, the tile-scratch slot table, and the countdown used to
// detect when the last lane of the tile has finished.
type tileState struct {
	index     int
	origin    int
	barrier   *Barrier
	slots     []interface{}
	remaining atomic.Int32
}

// A Lane identifies one unit of execution within a tile. A kernel
// receives one Lane per goroutine and uses it to find its position in
// the grid, to synchronize with its tile mates, and to obtain
// tile-scratch allocations via Shared.
type Lane struct {
	tile   *tileState
	local  int
	global int
	slot   int
}

// Local returns the lane's index within its tile, in [0, TileWidth).
func (l *Lane) Local() int { return l.local }

// Global returns the lane's index within the padded grid. It can reach
// past the logical extent of a launch; kernels mask such lanes.
func (l *Lane) Global() int { return l.global }

// Tile returns the index of the lane's tile within the grid.
func (l *Lane) Tile() int { return l.tile.index }

// IsOrigin reports whether this lane is its tile's first lane, the one
// designated for single-lane work such as column scans and lock words.
func (l *Lane) IsOrigin() bool { return l.local == 0 }

// TileBarrier blocks until every lane of the tile has reached it, with
// a tile-scratch memory fence: writes to tile-scratch memory made
// before the barrier are visible to every lane after it.
func (l *Lane) TileBarrier() { l.tile.barrier.wait() }

// GlobalBarrier blocks until every lane of the tile has reached it,
// with a global memory fence: writes to device-global memory made
// before the barrier are visible to every lane after it. On the Go
// memory model both fences establish the same happens-before edges,
// but the two entry points are kept distinct because they guard
// different classes of memory and conflating them hides visibility
// assumptions.
func (l *Lane) GlobalBarrier() { l.tile.barrier.wait() }

// Shared returns a tile-scratch value that is allocated once per tile
// and shared by all of its lanes: lane 0 invokes create, and every lane
// receives the same value.
//
// Shared must be called uniformly: every lane of the tile must reach
// the same Shared call sites in the same order, so that the per-lane
// slot cursors stay aligned. It synchronizes internally and therefore
// also counts as (two) barrier arrivals.
func Shared[T any](l *Lane, create func() T) T {
	t := l.tile
	if l.local == 0 {
		t.slots = append(t.slots, create())
	}
	l.TileBarrier()
	v := t.slots[l.slot].(T)
	l.slot++
	// The trailing barrier keeps lane 0's next slot append from racing
	// the reads above.
	l.TileBarrier()
	return v
}
