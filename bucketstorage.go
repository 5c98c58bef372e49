package bucketgo

import (
	"fmt"
	"iter"
	"log/slog"
)

// BucketStorage is a generic, order-preserving container backed by a chain
// of fixed-size blocks. Elements keep their address for their entire
// lifetime; erasing one element never invalidates iterators to others.
//
// The zero value is not usable; construct with New.
type BucketStorage[T any] struct {
	head, tail *block[T]
	cursor     *block[T] // first block that may still have a free slot

	blockCap  int
	maxBlocks int
	size      int
	blocks    int
	nextSeq   uint32

	logger *slog.Logger

	inserts         uint64
	erases          uint64
	blocksAllocated uint64
	blocksReleased  uint64
}

// Stats is a point-in-time snapshot of container bookkeeping.
type Stats struct {
	Size      int // live elements
	Capacity  int // total slots across all blocks
	Blocks    int // blocks currently allocated
	FreeSlots int // Capacity - Size

	// Cumulative counters for the lifetime of the container.
	Inserts         uint64
	Erases          uint64
	BlocksAllocated uint64
	BlocksReleased  uint64
}

// New creates an empty BucketStorage.
//
// Without options the block capacity is DefaultBlockCapacity. Configuring
// a block capacity below 1 fails with ErrZeroBlockCapacity.
func New[T any](opts ...Option) (*BucketStorage[T], error) {
	o := options{
		blockCapacity: DefaultBlockCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.blockCapacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrZeroBlockCapacity, o.blockCapacity)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return &BucketStorage[T]{
		blockCap:  o.blockCapacity,
		maxBlocks: o.maxBlocks,
		logger:    o.logger,
	}, nil
}

// Size returns the number of live elements.
func (bs *BucketStorage[T]) Size() int { return bs.size }

// Capacity returns the total slot count across all allocated blocks. It
// is always a multiple of BlockCapacity and drops to zero after Clear.
func (bs *BucketStorage[T]) Capacity() int { return bs.blocks * bs.blockCap }

// BlockCapacity returns the configured number of slots per block.
func (bs *BucketStorage[T]) BlockCapacity() int { return bs.blockCap }

// Empty reports whether the container holds no live elements.
func (bs *BucketStorage[T]) Empty() bool { return bs.size == 0 }

// Insert stores value in the first free slot in position order from the
// insert cursor, allocating a new block only when no slot is free. It
// returns an iterator to the new element.
//
// Insert fails only when a WithMaxBlocks limit prevents allocating the
// block the value would need; the container is left unchanged in that
// case.
func (bs *BucketStorage[T]) Insert(value T) (Iterator[T], error) {
	blk := bs.findSpace()
	if blk == nil {
		if bs.maxBlocks > 0 && bs.blocks >= bs.maxBlocks {
			return Iterator[T]{}, fmt.Errorf("%w: limit %d", ErrTooManyBlocks, bs.maxBlocks)
		}
		blk = bs.appendBlock()
	}

	idx, _ := blk.acquire()
	blk.elems[idx] = value
	bs.size++
	bs.inserts++

	// The next insert resumes scanning here instead of at the head. The
	// cursor only moves back when an erase frees a slot in an earlier
	// block, which is what keeps insert O(1) amortized.
	bs.cursor = blk

	return Iterator[T]{bs: bs, blk: blk, slot: idx}, nil
}

// findSpace returns the first block at or after the cursor with a free
// slot, or nil if every block is full.
func (bs *BucketStorage[T]) findSpace() *block[T] {
	blk := bs.cursor
	if blk == nil {
		blk = bs.head
	}
	for blk != nil && blk.full() {
		blk = blk.next
	}
	return blk
}

func (bs *BucketStorage[T]) appendBlock() *block[T] {
	blk := newBlock[T](bs.nextSeq, bs.blockCap)
	bs.nextSeq++

	if bs.tail == nil {
		bs.head = blk
	} else {
		blk.prev = bs.tail
		bs.tail.next = blk
	}
	bs.tail = blk
	bs.blocks++
	bs.blocksAllocated++

	bs.logger.Debug("block allocated", "seq", blk.seq, "capacity", bs.blockCap)

	return blk
}

// Erase removes the element it references and returns an iterator to the
// next live element in position order, or End if none remains. No other
// element moves and no other iterator is invalidated.
//
// Erase panics if it does not reference a live element. The iterator must
// belong to this container (after Swap, iterators belong to the instance
// that now owns their element); passing a live iterator of a different
// container corrupts the bookkeeping of both.
func (bs *BucketStorage[T]) Erase(it Iterator[T]) Iterator[T] {
	if it.blk == nil || !it.blk.isLive(it.slot) {
		panic("bucketgo: Erase: iterator does not reference a live element")
	}

	next := it.Next()

	it.blk.release(it.slot)
	bs.size--
	bs.erases++

	// Pull the cursor back so the freed slot is found by a later insert.
	if bs.cursor == nil || it.blk.seq < bs.cursor.seq {
		bs.cursor = it.blk
	}

	return next
}

// Begin returns an iterator to the first live element in position order,
// or End if the container is empty.
func (bs *BucketStorage[T]) Begin() Iterator[T] {
	return bs.firstLiveFrom(bs.head)
}

// End returns the past-the-end iterator. It compares greater than every
// live position and must not be dereferenced.
func (bs *BucketStorage[T]) End() Iterator[T] {
	return Iterator[T]{bs: bs}
}

// ConstBegin returns a read-only iterator to the first live element.
func (bs *BucketStorage[T]) ConstBegin() ConstIterator[T] {
	return bs.Begin().Const()
}

// ConstEnd returns the read-only past-the-end iterator.
func (bs *BucketStorage[T]) ConstEnd() ConstIterator[T] {
	return bs.End().Const()
}

// firstLiveFrom returns an iterator to the first live slot in blk or any
// later block, or End.
func (bs *BucketStorage[T]) firstLiveFrom(blk *block[T]) Iterator[T] {
	for ; blk != nil; blk = blk.next {
		if idx, ok := blk.firstLive(); ok {
			return Iterator[T]{bs: bs, blk: blk, slot: idx}
		}
	}
	return bs.End()
}

// lastLiveUpTo returns an iterator to the last live slot in blk or any
// earlier block, or End.
func (bs *BucketStorage[T]) lastLiveUpTo(blk *block[T]) Iterator[T] {
	for ; blk != nil; blk = blk.prev {
		if idx, ok := blk.lastLive(); ok {
			return Iterator[T]{bs: bs, blk: blk, slot: idx}
		}
	}
	return bs.End()
}

// Clear destroys every live element and releases every block. Afterwards
// Size and Capacity are both zero; all previously obtained iterators are
// invalid.
func (bs *BucketStorage[T]) Clear() {
	released := bs.blocks

	bs.head, bs.tail, bs.cursor = nil, nil, nil
	bs.size = 0
	bs.blocks = 0
	bs.blocksReleased += uint64(released)

	if released > 0 {
		bs.logger.Debug("cleared", "blocks", released)
	}
}

// ShrinkToFit releases every block whose live count is zero. Surviving
// elements, their order and their iterators are untouched; Capacity
// remains a multiple of BlockCapacity.
func (bs *BucketStorage[T]) ShrinkToFit() {
	for blk := bs.head; blk != nil; {
		next := blk.next
		if blk.empty() {
			bs.unlink(blk)
		}
		blk = next
	}
}

func (bs *BucketStorage[T]) unlink(blk *block[T]) {
	if blk.prev != nil {
		blk.prev.next = blk.next
	} else {
		bs.head = blk.next
	}
	if blk.next != nil {
		blk.next.prev = blk.prev
	} else {
		bs.tail = blk.prev
	}
	if bs.cursor == blk {
		bs.cursor = blk.next
	}
	blk.prev, blk.next = nil, nil

	bs.blocks--
	bs.blocksReleased++

	bs.logger.Debug("block released", "seq", blk.seq)
}

// Swap exchanges the contents of bs and other in O(1). No element storage
// moves, so iterators obtained from either container stay valid and
// follow their elements to the other instance.
func (bs *BucketStorage[T]) Swap(other *BucketStorage[T]) {
	if bs == other {
		return
	}
	*bs, *other = *other, *bs

	bs.logger.Debug("swapped", "size", bs.size, "otherSize", other.size)
}

// Clone returns a deep copy with the same configuration.
//
// Live elements are re-inserted in position order into a fresh block
// chain, so the copy is compacted: holes left by erases in the source are
// not reproduced and the copy's Capacity may be smaller. Size, iteration
// order and the element multiset are preserved.
func (bs *BucketStorage[T]) Clone() *BucketStorage[T] {
	c := &BucketStorage[T]{
		blockCap:  bs.blockCap,
		maxBlocks: bs.maxBlocks,
		logger:    bs.logger,
	}

	for it := bs.Begin(); it != bs.End(); it = it.Next() {
		blk := c.findSpace()
		if blk == nil {
			// Compaction never needs more blocks than the source holds,
			// so a WithMaxBlocks limit cannot be hit here.
			blk = c.appendBlock()
		}
		idx, _ := blk.acquire()
		blk.elems[idx] = it.Value()
		c.size++
		c.inserts++
		c.cursor = blk
	}

	return c
}

// GetToDistance returns it advanced by exactly n positions, equivalent to
// calling Next n times. Fully packed blocks are crossed in O(1) each; the
// final, partially walked block is stepped slot by slot.
//
// GetToDistance panics if n is negative or if advancing would move past
// End. The iterator must belong to this container.
func (bs *BucketStorage[T]) GetToDistance(it Iterator[T], n int) Iterator[T] {
	if n < 0 {
		panic("bucketgo: GetToDistance: negative distance")
	}

	for n > 0 {
		blk := it.blk
		if blk == nil {
			panic("bucketgo: GetToDistance: advanced past End")
		}

		if blk.full() {
			remaining := int(blk.capacity() - it.slot) // steps to leave this block
			if n >= remaining {
				n -= remaining
				it = bs.firstLiveFrom(blk.next)
				continue
			}
			// Packed block: the target slot is occupied, index directly.
			it.slot += uint32(n)
			return it
		}

		it = it.Next()
		n--
	}

	return it
}

// Values returns a position-order sequence of the live elements for use
// with range. Erasing the yielded element during iteration is allowed;
// erasing other elements is not.
func (bs *BucketStorage[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := bs.Begin(); it != bs.End(); {
			next := it.Next()
			if !yield(it.Value()) {
				return
			}
			it = next
		}
	}
}

// All returns a position-order sequence of (iterator, element) pairs for
// use with range. The same erase rules as Values apply.
func (bs *BucketStorage[T]) All() iter.Seq2[Iterator[T], T] {
	return func(yield func(Iterator[T], T) bool) {
		for it := bs.Begin(); it != bs.End(); {
			next := it.Next()
			if !yield(it, it.Value()) {
				return
			}
			it = next
		}
	}
}

// Stats returns a snapshot of the container's bookkeeping.
func (bs *BucketStorage[T]) Stats() Stats {
	return Stats{
		Size:            bs.size,
		Capacity:        bs.Capacity(),
		Blocks:          bs.blocks,
		FreeSlots:       bs.Capacity() - bs.size,
		Inserts:         bs.inserts,
		Erases:          bs.erases,
		BlocksAllocated: bs.blocksAllocated,
		BlocksReleased:  bs.blocksReleased,
	}
}

// String returns a short human-readable summary of the container state.
func (bs *BucketStorage[T]) String() string {
	return fmt.Sprintf("BucketStorage{size: %d, capacity: %d, blocks: %d, blockCapacity: %d}",
		bs.size, bs.Capacity(), bs.blocks, bs.blockCap)
}
