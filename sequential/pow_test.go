package sequential_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/partile/sequential"
)

func TestPow(t *testing.T) {
	tests := []struct {
		a, n, expected int64
	}{
		{a: 2, n: 0, expected: 1},
		{a: 2, n: 1, expected: 2},
		{a: 2, n: 2, expected: 4},
		{a: 2, n: 10, expected: 1024},
		{a: 3, n: 5, expected: 243},
		{a: 7, n: 3, expected: 343},
		{a: -2, n: 3, expected: -8},
		{a: 10, n: 9, expected: 1000000000},
		{a: 0, n: 5, expected: 0},
		{a: 1, n: 63, expected: 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, sequential.Pow(tt.a, tt.n), "Pow(%d, %d)", tt.a, tt.n)
	}
}

func TestPowNegativeExponent(t *testing.T) {
	require.Panics(t, func() { sequential.Pow(2, -1) })
}

func TestPowFunc(t *testing.T) {
	// Under addition, the n-fold combination of a is a*n.
	add := func(x, y int) int { return x + y }
	for n := 1; n < 40; n++ {
		require.Equal(t, 3*n, sequential.PowFunc(3, n, add), "n = %d", n)
	}
}

func TestStrided(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]int, len(src))
	n := sequential.CopyStrided(dst, src, 3)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 0, 0, 4, 0, 0, 7, 0}, dst)

	a := []int{1, 2, 3, 4}
	b := []int{5, 6, 7, 8}
	sequential.SwapRangesStrided(a, b, 2)
	assert.Equal(t, []int{5, 2, 7, 4}, a)
	assert.Equal(t, []int{1, 6, 3, 8}, b)

	require.Panics(t, func() { sequential.CopyStrided(dst, src, 0) })
	require.Panics(t, func() { sequential.SwapRangesStrided(a, b, -1) })
}
