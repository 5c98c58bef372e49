package bucketgo

import "github.com/bits-and-blooms/bitset"

// block is a fixed-capacity array of slots plus per-block bookkeeping.
// A block is never resized or relocated after creation, which is what
// keeps element addresses stable across insertions into other blocks.
type block[T any] struct {
	seq   uint32 // creation sequence number, orders blocks in the chain
	elems []T    // fixed length == block capacity

	occupied *bitset.BitSet // live slots
	free     []uint32       // LIFO stack of released slot indices
	used     uint32         // high-water mark of never-used slots
	live     uint32

	prev, next *block[T]
}

func newBlock[T any](seq uint32, capacity int) *block[T] {
	return &block[T]{
		seq:      seq,
		elems:    make([]T, capacity),
		occupied: bitset.New(uint(capacity)),
	}
}

func (b *block[T]) capacity() uint32 { return uint32(len(b.elems)) }

func (b *block[T]) full() bool { return b.live == b.capacity() }

func (b *block[T]) empty() bool { return b.live == 0 }

func (b *block[T]) isLive(idx uint32) bool { return b.occupied.Test(uint(idx)) }

// acquire reserves a slot, preferring the most recently released one.
// Reports false when the block is full.
func (b *block[T]) acquire() (uint32, bool) {
	var idx uint32
	switch {
	case len(b.free) > 0:
		idx = b.free[len(b.free)-1]
		b.free = b.free[:len(b.free)-1]
	case b.used < b.capacity():
		idx = b.used
		b.used++
	default:
		return 0, false
	}
	b.occupied.Set(uint(idx))
	b.live++
	return idx, true
}

// release frees an occupied slot. The element is zeroed so the container
// drops any references it held; the slot memory itself is retained for
// reuse until the block is destroyed.
func (b *block[T]) release(idx uint32) {
	var zero T
	b.elems[idx] = zero
	b.occupied.Clear(uint(idx))
	b.free = append(b.free, idx)
	b.live--
}

// firstLive returns the lowest occupied slot index.
func (b *block[T]) firstLive() (uint32, bool) {
	i, ok := b.occupied.NextSet(0)
	return uint32(i), ok
}

// lastLive returns the highest occupied slot index.
func (b *block[T]) lastLive() (uint32, bool) {
	if b.live == 0 {
		return 0, false
	}
	i, ok := b.occupied.PreviousSet(uint(b.capacity() - 1))
	return uint32(i), ok
}

// nextLive returns the lowest occupied slot index strictly after idx.
func (b *block[T]) nextLive(idx uint32) (uint32, bool) {
	i, ok := b.occupied.NextSet(uint(idx) + 1)
	return uint32(i), ok
}

// prevLive returns the highest occupied slot index strictly before idx.
func (b *block[T]) prevLive(idx uint32) (uint32, bool) {
	if idx == 0 {
		return 0, false
	}
	i, ok := b.occupied.PreviousSet(uint(idx) - 1)
	return uint32(i), ok
}
