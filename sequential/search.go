package sequential

import "golang.org/x/exp/constraints"

// LowerBound returns the index of the first element in the sorted slice
// data that is not less than val, or len(data) if there is none.
func LowerBound[T constraints.Ordered](data []T, val T) int {
	f, l := 0, len(data)
	for f < l {
		m := f + (l-f)/2
		if data[m] < val {
			f = m + 1
		} else {
			l = m
		}
	}
	return f
}

// UpperBound returns the index of the first element in the sorted slice
// data that is greater than val, or len(data) if there is none.
func UpperBound[T constraints.Ordered](data []T, val T) int {
	f, l := 0, len(data)
	for f < l {
		m := f + (l-f)/2
		if val < data[m] {
			l = m
		} else {
			f = m + 1
		}
	}
	return f
}

// Merge merges the sorted slices a and b into dst, which must have room
// for len(a)+len(b) elements, and returns the number of elements
// written. Elements of a precede equal elements of b.
func Merge[T constraints.Ordered](a, b, dst []T) int {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	k += copy(dst[k:], b[j:])
	return k
}
