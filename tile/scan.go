// Package tile provides the tile-level scan and reduce engine. Both
// entry points operate on exactly one tile's worth of data (or a
// tile-scratch copy of it) and must be called uniformly by every lane
// of the tile: all lanes pass the same slice and reach the same
// barriers the same number of times.
package tile

import (
	"github.com/exascience/partile"
	"github.com/exascience/partile/device"
	"github.com/exascience/partile/sequential"
)

// Row counts for the two-level scan. maxScanRows bounds the row-sum
// scratch buffer separately from the tile width; sumScanRows is the
// smaller row count used when re-scanning the row-sum array itself.
const (
	maxScanRows = 64
	sumScanRows = 8
)

// paddedCols returns a column count that both covers length with the
// given number of rows and is co-prime with the bank count of
// tile-scratch memory (32 banks, now and for the foreseeable future):
// an even quotient is padded to be odd. The returned count satisfies
// rows*cols >= length.
func paddedCols(length, rows int) int {
	cols := (length + rows - 1) / rows
	if cols%2 == 0 {
		cols++
	}
	return cols
}

// reduceRows accumulates each row of the data matrix into a shared
// row-sum buffer (step I of the two-level scan). Rows that run past the
// logical end of the data are clipped; rows entirely past it contribute
// the identity. Every lane must call reduceRows, the first rows lanes
// do the work.
func reduceRows[T partile.Number](data []T, rows int, l *device.Lane) []T {
	mtx := device.Reshape(data, rows, paddedCols(len(data), rows))
	rowSums := device.Shared(l, func() []T { return make([]T, rows) })
	if l.Local() < rows {
		rowSums[l.Local()] = sequential.Accumulate(mtx.Row(l.Local()), T(0))
	}
	return rowSums
}

// scanRows rewrites each row of the data matrix as an exclusive scan
// seeded with that row's prefix from rowSums (step III of the two-level
// scan).
func scanRows[T partile.Number](data []T, rows int, rowSums []T, l *device.Lane) {
	mtx := device.Reshape(data, rows, paddedCols(len(data), rows))
	if l.Local() < rows {
		res := rowSums[l.Local()]
		row := mtx.Row(l.Local())
		for i := range row {
			tmp := row[i]
			row[i] = res
			res += tmp
		}
	}
}

// scanSums rewrites the row-sum array as its exclusive scan (step II).
// The array is small enough that its own row sums can be scanned in a
// single pass by the tile's origin lane.
func scanSums[T partile.Number](sums []T, l *device.Lane) {
	rowSums := reduceRows(sums, sumScanRows, l)
	l.TileBarrier()

	if l.IsOrigin() {
		sequential.Scan(rowSums)
	}
	l.TileBarrier()

	scanRows(sums, sumScanRows, rowSums, l)
}

// Scan rewrites one tile's data in place as its exclusive prefix sum
// and returns the index of the last element. An empty range returns
// len(data) unchanged without reaching any barrier; every lane makes
// that decision from the same slice length, so barrier participation
// stays uniform.
//
// The three phases (row reduction, column scan of the row sums, row
// re-scan) are separated by barriers with a tile-scratch fence, and the
// matrix views use a padded, odd column count to avoid bank conflicts.
func Scan[T partile.Number](data []T, l *device.Lane) int {
	if len(data) == 0 {
		return len(data)
	}

	rows := min(partile.TileWidth, maxScanRows)

	rowSums := reduceRows(data, rows, l)
	l.TileBarrier()

	scanSums(rowSums, l)
	l.TileBarrier()

	scanRows(data, rows, rowSums, l)
	l.TileBarrier()

	return len(data) - 1
}
