// Package device provides the execution substrate for partile: devices
// that launch kernels uniformly over a tiled index space, with each
// tile's lanes running as goroutines that synchronize through cyclic
// barriers and share tile-scratch allocations.
package device

import (
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/exascience/partile"
	"github.com/exascience/partile/internal"
)

// A Device dispatches grid launches. The zero configuration schedules
// every tile of a launch concurrently, which is what the grid-level
// algorithms assume; see WithMaxConcurrentTiles for the trade-off.
type Device struct {
	maxTiles int
}

// An Option configures a Device.
type Option func(*Device) error

// WithMaxConcurrentTiles bounds the number of tiles of one launch that
// run simultaneously. n must be positive.
//
// Bounding tile concurrency makes tile scheduling non-uniform: a tile
// that spins on a lock held by a not-yet-scheduled tile can block the
// whole launch. Kernels that spin across tiles, such as the in-place
// partition, must therefore run on an unbounded device. There is
// deliberately no timeout around the spin; the risk is documented
// rather than masked.
func WithMaxConcurrentTiles(n int) Option {
	return func(d *Device) error {
		if n <= 0 {
			return errors.Errorf("max concurrent tiles must be positive, got %d", n)
		}
		d.maxTiles = n
		return nil
	}
}

// NewDevice returns a device configured by the given options.
func NewDevice(opts ...Option) (*Device, error) {
	d := &Device{}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

var defaultDevice = &Device{}

// Default returns the shared device with unbounded tile scheduling.
func Default() *Device { return defaultDevice }

// Launch runs kernel uniformly over a tiled index space covering
// extent: the extent is padded up to a multiple of partile.TileWidth,
// and the kernel is invoked once per lane, each lane in its own
// goroutine. Lanes whose Global index reaches past extent still run
// (barrier participation must stay uniform); kernels mask their writes.
//
// Launch returns only when every lane has terminated. A zero extent
// launches no grid work; a negative extent panics.
//
// If one or more lanes panic, the panics are recovered, the affected
// tiles' barriers are broken so that sibling lanes are not stranded,
// and Launch panics with the left-most recovered panic value.
func (d *Device) Launch(extent int, kernel func(*Lane)) {
	if extent == 0 {
		return
	}
	padded := internal.PadExtent(extent, partile.TileWidth)
	tiles := padded / partile.TileWidth
	if klog.V(2).Enabled() {
		klog.Infof("partile: launching %d tiles of %d lanes over extent %d (padded to %d)",
			tiles, partile.TileWidth, extent, padded)
	}
	panics := make([]interface{}, padded)
	var sem chan struct{}
	if d.maxTiles > 0 {
		sem = make(chan struct{}, d.maxTiles)
	}
	var wg sync.WaitGroup
	for t := 0; t < tiles; t++ {
		tl := &tileState{
			index:   t,
			origin:  t * partile.TileWidth,
			barrier: newBarrier(partile.TileWidth),
		}
		tl.remaining.Store(partile.TileWidth)
		if sem != nil {
			sem <- struct{}{}
		}
		for lane := 0; lane < partile.TileWidth; lane++ {
			wg.Add(1)
			go func(tl *tileState, lane int) {
				defer wg.Done()
				l := &Lane{tile: tl, local: lane, global: tl.origin + lane}
				defer func() {
					if p := recover(); p != nil {
						tl.barrier.breakBarrier()
						if p == errBarrierBroken {
							panics[l.global] = p
						} else {
							panics[l.global] = internal.WrapPanic(p)
						}
					}
					if tl.remaining.Add(-1) == 0 && sem != nil {
						<-sem
					}
				}()
				kernel(l)
			}(tl, lane)
		}
	}
	wg.Wait()
	var broken interface{}
	for _, p := range panics {
		if p == nil {
			continue
		}
		if p == errBarrierBroken {
			if broken == nil {
				broken = p
			}
			continue
		}
		panic(p)
	}
	if broken != nil {
		panic(broken)
	}
}
