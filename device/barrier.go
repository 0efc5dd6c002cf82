package device

import "sync"

// A Barrier synchronizes the lanes of one tile. It is cyclic: the same
// barrier is reused for every phase of a kernel, and a new phase begins
// as soon as all lanes have arrived.
//
// Every lane of a tile must arrive at the barrier the same number of
// times. Divergent participation, where a code path makes
// only some lanes of a tile arrive, deadlocks the tile; the engines in
// this module are structured with masking (neutral values, validity
// flags) so that it never occurs.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	phase   uint64
	broken  bool
}

func newBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

type brokenBarrier struct{}

func (brokenBarrier) Error() string { return "partile: tile barrier broken" }

// errBarrierBroken is the panic value raised in lanes released from a
// barrier that was broken because a sibling lane panicked. Launch
// suppresses it in favor of the originating panic.
var errBarrierBroken error = brokenBarrier{}

// wait blocks until all parties have arrived, then releases them into
// the next phase together. The mutex hand-off orders every write made
// before the barrier ahead of every read made after it, on all lanes.
func (b *Barrier) wait() {
	b.mu.Lock()
	if b.broken {
		b.mu.Unlock()
		panic(errBarrierBroken)
	}
	phase := b.phase
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.phase++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for phase == b.phase && !b.broken {
		b.cond.Wait()
	}
	broken := b.broken
	b.mu.Unlock()
	if broken {
		panic(errBarrierBroken)
	}
}

// breakBarrier permanently releases all current and future waiters with
// an errBarrierBroken panic, so a lane panic cannot strand its tile
// mates in a barrier wait.
func (b *Barrier) breakBarrier() {
	b.mu.Lock()
	b.broken = true
	b.cond.Broadcast()
	b.mu.Unlock()
}
