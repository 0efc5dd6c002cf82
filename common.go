package partile

import "golang.org/x/exp/constraints"

// TileWidth is the number of lanes in one tile. It is a compile-time
// constant: the engines in partile/tile and partile/grid are written
// against a fixed tile width, and ranges are padded up to a multiple of
// it with masked out-of-range lanes.
const TileWidth = 64

type (
	// A Number is an element type the scan and reduce engines can fold
	// with the + operator.
	Number interface {
		constraints.Integer | constraints.Float
	}

	// A Predicate classifies one element, deciding which partition
	// bucket it belongs to.
	Predicate[T any] func(T) bool

	// A BinaryOp combines two values into one. Operations that accept a
	// BinaryOp assume it is associative; scans additionally assume the
	// zero value of T is its identity.
	BinaryOp[T any] func(T, T) T
)
