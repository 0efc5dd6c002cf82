package sequential

import "fmt"

// CopyStrided copies src[i] into dst[i] for i = 0, stride, 2*stride,
// and so on, stopping at the end of the shorter slice. A tile's lanes
// can divide a copy between them by each calling CopyStrided on slices
// offset by their lane index, with the tile width as the stride. It
// returns the number of elements copied. CopyStrided panics if stride
// is not positive.
func CopyStrided[T any](dst, src []T, stride int) int {
	if stride <= 0 {
		panic(fmt.Sprintf("invalid stride: %v", stride))
	}
	n := 0
	for i := 0; i < len(src) && i < len(dst); i += stride {
		dst[i] = src[i]
		n++
	}
	return n
}

// SwapRangesStrided exchanges a[i] and b[i] for i = 0, stride,
// 2*stride, and so on, stopping at the end of the shorter slice. Like
// CopyStrided it lets all lanes of a tile participate in a swap.
// SwapRangesStrided panics if stride is not positive.
func SwapRangesStrided[T any](a, b []T, stride int) {
	if stride <= 0 {
		panic(fmt.Sprintf("invalid stride: %v", stride))
	}
	for i := 0; i < len(a) && i < len(b); i += stride {
		a[i], b[i] = b[i], a[i]
	}
}
