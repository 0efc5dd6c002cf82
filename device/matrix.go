package device

import "fmt"

// A Matrix reinterprets a flat slice as a row-major rows×cols matrix
// without copying. The backing slice may be shorter than rows*cols:
// rows are clipped at the logical end of the data, and rows that start
// past it are empty. The tile scan engine uses this to walk a padded
// matrix whose column count was chosen against bank conflicts rather
// than to fit the data exactly.
type Matrix[T any] struct {
	data []T
	rows int
	cols int
}

// Reshape returns a rows×cols matrix view over data. It panics if rows
// or cols is not positive.
func Reshape[T any](data []T, rows, cols int) Matrix[T] {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid matrix shape: %vx%v", rows, cols))
	}
	return Matrix[T]{data: data, rows: rows, cols: cols}
}

// Rows returns the number of rows of the view.
func (m Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns of the view.
func (m Matrix[T]) Cols() int { return m.cols }

// Row returns row i of the view, clipped at the end of the backing
// data. Rows that lie entirely past the end are empty.
func (m Matrix[T]) Row(i int) []T {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("row index out of range: %v of %v", i, m.rows))
	}
	f := i * m.cols
	if f >= len(m.data) {
		return nil
	}
	l := f + m.cols
	if l > len(m.data) {
		l = len(m.data)
	}
	return m.data[f:l]
}
