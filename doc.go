// Package partile provides data-parallel primitives written against a
// GPU-style execution model emulated on goroutines: a grid of fixed-size
// thread groups (tiles) whose lanes run concurrently and synchronize
// through explicit barriers.
//
// Partile provides the following subpackages:
//
// partile/device provides the execution substrate: devices, grid
// launches over a tiled index space, tile barriers with tile-scratch and
// global memory fences, and tile-scratch allocation shared between the
// lanes of one tile.
//
// partile/sequential provides lane-local serial primitives: exclusive
// scans, accumulation, binary searches, a serial merge, strided copy and
// swap helpers, and integer exponentiation. These run entirely within
// one lane and never synchronize.
//
// partile/tile provides the tile-level engine: an exclusive prefix scan
// over one tile's data using a two-level, bank-conflict-avoiding
// algorithm, and a binary-tree reduction. Both must be called uniformly
// by every lane of a tile.
//
// partile/grid provides grid-level algorithms built on the tile engine,
// currently an in-place data-parallel partition coordinated through a
// pair of global atomic counters and a block-lock table.
//
// The tile scan follows Dotsenko, Y., Govindaraju, N. K., Sloan, P.,
// Boyd, C. & Manferdelli, J. (2008) "Fast Scan Algorithms on Graphics
// Processors". The in-place partition reserves disjoint spans of the
// true and false output buckets from a rising and a falling atomic
// counter, then serializes its writes against other tiles through
// per-block advisory locks.
package partile
