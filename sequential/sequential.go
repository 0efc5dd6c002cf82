// Package sequential provides lane-local serial primitives: scans,
// accumulations, binary searches, a serial merge, strided copy and swap
// helpers, and integer exponentiation.
//
// Nothing in this package synchronizes with other lanes. All functions
// are safe to call concurrently from many lanes as long as each lane
// touches disjoint memory; the tile and grid engines use them on
// per-lane rows of tile-scratch matrices.
package sequential

import "github.com/exascience/partile"

// Scan rewrites data in place as its exclusive prefix sum: data[i]
// becomes the sum of the original data[0:i], with data[0] becoming
// zero. It returns the index of the last element, which holds the sum
// of all original values except the final one. An empty range is a
// no-op and returns len(data) unchanged.
func Scan[T partile.Number](data []T) int {
	if len(data) == 0 {
		return len(data)
	}
	var res T
	for i, tmp := range data {
		data[i] = res
		res += tmp
	}
	return len(data) - 1
}

// ScanFunc rewrites data in place as its exclusive prefix scan under
// op, seeded with the zero value of T. op is assumed to be associative
// with the zero value as identity. It returns the index of the last
// element; an empty range is a no-op and returns len(data) unchanged.
func ScanFunc[T any](data []T, op partile.BinaryOp[T]) int {
	if len(data) == 0 {
		return len(data)
	}
	var res T
	for i := range data {
		tmp := data[i]
		data[i] = res
		res = op(res, tmp)
	}
	return len(data) - 1
}

// Accumulate folds data into init with the + operator and returns the
// result. An empty range returns init unchanged.
func Accumulate[T partile.Number](data []T, init T) T {
	for _, v := range data {
		init += v
	}
	return init
}

// AccumulateFunc folds data into init with op and returns the result.
// An empty range returns init unchanged.
func AccumulateFunc[T any](data []T, init T, op partile.BinaryOp[T]) T {
	for _, v := range data {
		init = op(init, v)
	}
	return init
}
