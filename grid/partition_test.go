package grid

import (
	"fmt"
	"math/rand"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/partile"
	"github.com/exascience/partile/device"
)

func isEven(x int) bool { return x%2 == 0 }

func TestPartitionConcrete(t *testing.T) {
	data := []int{5, 3, 8, 1, 9, 2, 7, 4}
	p := Partition(data, isEven)

	require.Equal(t, 3, p)
	assert.ElementsMatch(t, []int{8, 2, 4}, data[:p])
	assert.ElementsMatch(t, []int{5, 3, 1, 9, 7}, data[p:])
}

// checkPartitioned verifies the partition-point contract: every element
// before p satisfies the predicate, none at or after p does, and p
// equals the number of satisfying elements.
func checkPartitioned(t *testing.T, data []int, p int, pred func(int) bool) {
	t.Helper()
	count := 0
	for _, v := range data {
		if pred(v) {
			count++
		}
	}
	require.Equal(t, count, p, "partition point")
	for i := 0; i < p; i++ {
		require.True(t, pred(data[i]), "element %d before partition point", i)
	}
	for i := p; i < len(data); i++ {
		require.False(t, pred(data[i]), "element %d at/after partition point", i)
	}
}

func TestPartitionContract(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, size := range []int{1, 2, 63, 64, 65, 100, 128, 1000, 4096} {
		t.Run(fmt.Sprintf("size%d", size), func(t *testing.T) {
			orig := make([]int, size)
			for i := range orig {
				orig[i] = r.Intn(1000)
			}
			data := append([]int(nil), orig...)

			p := Partition(data, isEven)
			checkPartitioned(t, data, p, isEven)

			// The rearrangement must preserve the multiset.
			sortedOrig := append([]int(nil), orig...)
			sortedData := append([]int(nil), data...)
			sort.Ints(sortedOrig)
			sort.Ints(sortedData)
			require.Equal(t, sortedOrig, sortedData)
		})
	}
}

// Partition is a fixed point: applying it to an already-partitioned
// range must not move anything.
func TestPartitionFixedPoint(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	data := make([]int, 500)
	for i := range data {
		data[i] = r.Intn(1000)
	}

	p1 := Partition(data, isEven)
	snapshot := append([]int(nil), data...)
	p2 := Partition(data, isEven)

	assert.Equal(t, p1, p2)
	assert.Equal(t, snapshot, data)
}

func TestPartitionEmpty(t *testing.T) {
	var data []int
	assert.Equal(t, 0, Partition(data, isEven))
	assert.Empty(t, data)
}

func TestPartitionUniform(t *testing.T) {
	allEven := []int{2, 4, 6, 8, 10, 12}
	p := Partition(allEven, isEven)
	assert.Equal(t, len(allEven), p)
	checkPartitioned(t, allEven, p, isEven)

	allOdd := []int{1, 3, 5, 7, 9}
	p = Partition(allOdd, isEven)
	assert.Equal(t, 0, p)
	checkPartitioned(t, allOdd, p, isEven)
}

func TestPartitionInto(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for _, size := range []int{1, 64, 100, 1000} {
		t.Run(fmt.Sprintf("size%d", size), func(t *testing.T) {
			src := make([]int, size)
			for i := range src {
				src[i] = r.Intn(1000)
			}
			snapshot := append([]int(nil), src...)
			dst := make([]int, size)

			p := PartitionInto(dst, src, isEven)
			checkPartitioned(t, dst, p, isEven)
			require.Equal(t, snapshot, src, "source must be untouched")

			sortedSrc := append([]int(nil), src...)
			sortedDst := append([]int(nil), dst...)
			sort.Ints(sortedSrc)
			sort.Ints(sortedDst)
			require.Equal(t, sortedSrc, sortedDst)
		})
	}
}

func TestPartitionIntoShortDst(t *testing.T) {
	require.Panics(t, func() {
		PartitionInto(make([]int, 3), []int{1, 2, 3, 4}, isEven)
	})
}

// A writer tile must not overwrite an element of another tile's block
// before the owning lane has read it. With distinct elements, any such
// lost read shows up as a duplicate in the result; repeat the partition
// many times so the scheduling window is actually hit.
func TestPartitionPreservesDistinctElements(t *testing.T) {
	const size = 8 * partile.TileWidth
	r := rand.New(rand.NewSource(11))
	for iter := 0; iter < 300; iter++ {
		data := r.Perm(size)

		p := Partition(data, isEven)
		checkPartitioned(t, data, p, isEven)

		sorted := append([]int(nil), data...)
		sort.Ints(sorted)
		for i, v := range sorted {
			require.Equal(t, i, v, "iter %d: multiset not preserved at %d", iter, i)
		}
	}
}

// Only one tile at a time may observe the unlocked-to-locked transition
// of a block lock word: tiles contending on the same block must enter
// the critical section strictly one by one.
func TestBlockLockExclusive(t *testing.T) {
	const tiles = 8
	blocks := make([]atomic.Uint32, 1)
	var inside atomic.Int32
	var violations atomic.Int32

	device.Default().Launch(tiles*partile.TileWidth, func(l *device.Lane) {
		acquireBlocks(blocks, l, 0, 0)
		if l.IsOrigin() {
			if inside.Add(1) > 1 {
				violations.Add(1)
			}
			inside.Add(-1)
		}
		l.GlobalBarrier()
		releaseBlocks(blocks, l, 0, 0)
	})

	assert.Zero(t, violations.Load())
	assert.Equal(t, unlocked, blocks[0].Load())
}

func BenchmarkPartition(b *testing.B) {
	orig := make([]int, 1<<14)
	r := rand.New(rand.NewSource(10))
	for i := range orig {
		orig[i] = r.Intn(1000)
	}
	data := make([]int, len(orig))
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		copy(data, orig)
		b.StartTimer()
		Partition(data, isEven)
	}
}
